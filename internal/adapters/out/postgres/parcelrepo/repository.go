package parcelrepo

import (
	"context"
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new parcel to the database together with any history entries
// already present on the aggregate.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.insertHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateConditional writes the aggregate back only if the stored row still
// matches the expected status and driver binding.
//
// The precondition lives in the UPDATE's WHERE clause, so it is evaluated
// atomically with the write. A concurrent request that changed the row in
// the meantime makes this write match zero rows, which is reported as
// errs.ErrConcurrencyConflict. History entries are inserted in the same
// transaction as the row update; entry IDs are unique, so re-inserting
// already persisted entries is a no-op.
func (r *GormParcelRepository) UpdateConditional(
	ctx context.Context,
	aggregate *parcel.Parcel,
	expectedStatus parcel.Status,
	expectedDriverID *kernel.UUID,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	tx := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Where("status = ?", int(expectedStatus))

	if expectedDriverID != nil {
		tx = tx.Where("driver_id = ?", expectedDriverID.Bytes())
	} else {
		tx = tx.Where("driver_id IS NULL")
	}

	// Select("*") forces zero-valued columns through as well; cancellation
	// must be able to null out driver_id and assigned_at.
	result := tx.Select("*").Omit("id", "created_at").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("parcel", aggregate.ID().String())
	}

	if err := r.insertHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a parcel and its status history by ID.
// Soft-deleted parcels are treated as absent.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND is_deleted = false", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return r.loadAggregate(ctx, dto)
}

// GetByTrackingNumber retrieves a parcel and its status history by tracking number.
func (r *GormParcelRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*parcel.Parcel, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tracking_number = ? AND is_deleted = false", trackingNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingNumber", trackingNumber)
		}
		return nil, err
	}

	return r.loadAggregate(ctx, dto)
}

// TrackingNumberExists reports whether a tracking number is already in use.
// Soft-deleted parcels still count; tracking numbers are never recycled.
func (r *GormParcelRepository) TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("tracking_number = ?", trackingNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetHistory retrieves the status history of a parcel ordered by creation
// time, oldest first, with the entry ID as a stable tiebreaker.
func (r *GormParcelRepository) GetHistory(ctx context.Context, parcelID kernel.UUID) ([]parcel.StatusHistoryEntry, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	dtos, err := r.loadHistory(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	entries := make([]parcel.StatusHistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := entryToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// AddProofOfDelivery persists a proof-of-delivery record.
func (r *GormParcelRepository) AddProofOfDelivery(ctx context.Context, proof parcel.ProofOfDelivery) error {
	if err := proof.Validate(); err != nil {
		return err
	}

	dto := proofFromDomain(proof)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormParcelRepository) loadAggregate(ctx context.Context, dto ParcelDTO) (*parcel.Parcel, error) {
	parcelID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	historyDTOs, err := r.loadHistory(ctx, parcelID)
	if err != nil {
		return nil, err
	}

	aggregate, err := toDomain(dto, historyDTOs)
	if err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (r *GormParcelRepository) loadHistory(ctx context.Context, parcelID kernel.UUID) ([]StatusHistoryEntryDTO, error) {
	var dtos []StatusHistoryEntryDTO
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return dtos, nil
}

func (r *GormParcelRepository) insertHistory(ctx context.Context, aggregate *parcel.Parcel) error {
	dtos := historyFromDomain(aggregate)
	if len(dtos) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos).Error
}
