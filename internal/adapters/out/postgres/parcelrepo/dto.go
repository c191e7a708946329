// Package parcelrepo provides data transfer objects and mapping functions for
// parcel persistence. It implements the repository pattern for the parcel
// aggregate, including its status history and proof-of-delivery records.
package parcelrepo

import (
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// The tracking number carries a unique index; status and driver are indexed
// for dispatch queries.
type ParcelDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingNumber string    `gorm:"uniqueIndex"`

	SenderID    *uuid.UUID `gorm:"type:uuid"`
	RecipientID *uuid.UUID `gorm:"type:uuid"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index"`

	Status int `gorm:"index"`

	CreatedAt           time.Time
	AssignedAt          *time.Time
	PickedUpAt          *time.Time
	DeliveredAt         *time.Time
	DeliveryConfirmedAt *time.Time
	ConfirmedByID       *uuid.UUID `gorm:"type:uuid"`

	DeliveredToRecipient bool
	DeliveryAttempts     int
	DeliveryDuration     int64 // nanoseconds
	IsDeleted            bool
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// StatusHistoryEntryDTO represents one immutable status history row.
// Rows are only ever inserted, never updated or deleted.
type StatusHistoryEntryDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID uuid.UUID `gorm:"type:uuid;index"`
	Status   int
	ActorID  uuid.UUID `gorm:"type:uuid"`
	Note     string

	Latitude  *float64
	Longitude *float64

	CreatedAt time.Time
}

// TableName specifies the database table name for status history entries.
func (StatusHistoryEntryDTO) TableName() string {
	return "parcel_status_history"
}

// ProofOfDeliveryDTO represents a persisted proof-of-delivery record.
type ProofOfDeliveryDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID    uuid.UUID `gorm:"type:uuid;index"`
	RecipientID uuid.UUID `gorm:"type:uuid"`
	Signature   string
	Note        string
	ConfirmedAt time.Time
}

// TableName specifies the database table name for proof-of-delivery records.
func (ProofOfDeliveryDTO) TableName() string {
	return "proofs_of_delivery"
}

// fromDomain converts a parcel aggregate to its database representation,
// excluding the history which is mapped separately.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:                   aggregate.ID().Bytes(),
		TrackingNumber:       aggregate.TrackingNumber(),
		SenderID:             optionalUUID(aggregate.Sender()),
		RecipientID:          optionalUUID(aggregate.Recipient()),
		DriverID:             optionalUUID(aggregate.Driver()),
		Status:               int(aggregate.Status()),
		CreatedAt:            aggregate.CreatedAt(),
		AssignedAt:           aggregate.AssignedAt(),
		PickedUpAt:           aggregate.PickedUpAt(),
		DeliveredAt:          aggregate.DeliveredAt(),
		DeliveryConfirmedAt:  aggregate.DeliveryConfirmedAt(),
		ConfirmedByID:        optionalUUID(aggregate.ConfirmedBy()),
		DeliveredToRecipient: aggregate.IsDeliveredToRecipient(),
		DeliveryAttempts:     aggregate.DeliveryAttempts(),
		DeliveryDuration:     int64(aggregate.DeliveryDuration()),
	}
}

// historyFromDomain converts the aggregate's status history entries to rows.
func historyFromDomain(aggregate *parcel.Parcel) []StatusHistoryEntryDTO {
	entries := aggregate.History()
	dtos := make([]StatusHistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, entryFromDomain(entry))
	}
	return dtos
}

func entryFromDomain(entry parcel.StatusHistoryEntry) StatusHistoryEntryDTO {
	var latitude, longitude *float64
	if loc := entry.Location(); loc != nil {
		lat := loc.Latitude()
		lon := loc.Longitude()
		latitude = &lat
		longitude = &lon
	}

	return StatusHistoryEntryDTO{
		ID:        entry.ID().Bytes(),
		ParcelID:  entry.ParcelID().Bytes(),
		Status:    int(entry.Status()),
		ActorID:   entry.Actor().Bytes(),
		Note:      entry.Note(),
		Latitude:  latitude,
		Longitude: longitude,
		CreatedAt: entry.CreatedAt(),
	}
}

// proofFromDomain converts a proof-of-delivery record to its database representation.
func proofFromDomain(proof parcel.ProofOfDelivery) ProofOfDeliveryDTO {
	return ProofOfDeliveryDTO{
		ID:          proof.ID().Bytes(),
		ParcelID:    proof.ParcelID().Bytes(),
		RecipientID: proof.Recipient().Bytes(),
		Signature:   proof.Signature(),
		Note:        proof.Note(),
		ConfirmedAt: proof.ConfirmedAt(),
	}
}

// toDomain converts a parcel DTO plus its history rows back into an aggregate.
func toDomain(dto ParcelDTO, historyDTOs []StatusHistoryEntryDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	senderID, err := optionalDomainUUID(dto.SenderID)
	if err != nil {
		return nil, err
	}

	recipientID, err := optionalDomainUUID(dto.RecipientID)
	if err != nil {
		return nil, err
	}

	driverID, err := optionalDomainUUID(dto.DriverID)
	if err != nil {
		return nil, err
	}

	confirmedByID, err := optionalDomainUUID(dto.ConfirmedByID)
	if err != nil {
		return nil, err
	}

	history := make([]parcel.StatusHistoryEntry, 0, len(historyDTOs))
	for _, entryDTO := range historyDTOs {
		entry, entryErr := entryToDomain(entryDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return parcel.RestoreParcel(
		id,
		dto.TrackingNumber,
		senderID,
		recipientID,
		driverID,
		parcel.Status(dto.Status),
		dto.CreatedAt,
		dto.AssignedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		dto.DeliveryConfirmedAt,
		confirmedByID,
		dto.DeliveredToRecipient,
		dto.DeliveryAttempts,
		time.Duration(dto.DeliveryDuration),
		history,
	)
}

// entryToDomain converts a history row back into a domain entry.
func entryToDomain(dto StatusHistoryEntryDTO) (parcel.StatusHistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return parcel.StatusHistoryEntry{}, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return parcel.StatusHistoryEntry{}, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return parcel.StatusHistoryEntry{}, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, locErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if locErr != nil {
			return parcel.StatusHistoryEntry{}, locErr
		}
		location = &point
	}

	return parcel.RestoreStatusHistoryEntry(
		id,
		parcelID,
		parcel.Status(dto.Status),
		actorID,
		dto.Note,
		location,
		dto.CreatedAt,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalDomainUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	domainID, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &domainID, nil
}
