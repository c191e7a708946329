// Package http exposes the parcel lifecycle operations over an Echo HTTP API.
// Handlers translate requests into commands and queries, and map application
// errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/services"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// actorHeader carries the identity of the caller, resolved by the auth layer
// in front of this service.
const actorHeader = "X-Actor-Id"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createParcelHandler       commands.CreateParcelCommandHandler
	assignDriverHandler       commands.AssignDriverCommandHandler
	reassignDriverHandler     commands.ReassignDriverCommandHandler
	bulkAssignDriversHandler  commands.BulkAssignDriversCommandHandler
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler
	confirmDeliveryHandler    commands.ConfirmDeliveryCommandHandler
	cancelParcelHandler       commands.CancelParcelCommandHandler

	// Query handlers
	getStatusHistoryHandler          queries.GetStatusHistoryQueryHandler
	getParcelByTrackingNumberHandler queries.GetParcelByTrackingNumberQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	reassignDriverHandler commands.ReassignDriverCommandHandler,
	bulkAssignDriversHandler commands.BulkAssignDriversCommandHandler,
	updateParcelStatusHandler commands.UpdateParcelStatusCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	cancelParcelHandler commands.CancelParcelCommandHandler,
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler,
	getParcelByTrackingNumberHandler queries.GetParcelByTrackingNumberQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:              createParcelHandler,
		assignDriverHandler:              assignDriverHandler,
		reassignDriverHandler:            reassignDriverHandler,
		bulkAssignDriversHandler:         bulkAssignDriversHandler,
		updateParcelStatusHandler:        updateParcelStatusHandler,
		confirmDeliveryHandler:           confirmDeliveryHandler,
		cancelParcelHandler:              cancelParcelHandler,
		getStatusHistoryHandler:          getStatusHistoryHandler,
		getParcelByTrackingNumberHandler: getParcelByTrackingNumberHandler,
	}
}

// RegisterRoutes attaches all parcel API routes to the Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/parcels", s.CreateParcel)
	v1.POST("/parcels/bulk-assign", s.BulkAssignDrivers)
	v1.POST("/parcels/:parcelId/assign", s.AssignDriver)
	v1.POST("/parcels/:parcelId/reassign", s.ReassignDriver)
	v1.POST("/parcels/:parcelId/status", s.UpdateParcelStatus)
	v1.POST("/parcels/:parcelId/confirm", s.ConfirmDelivery)
	v1.POST("/parcels/:parcelId/cancel", s.CancelParcel)
	v1.GET("/parcels/:parcelId/history", s.GetStatusHistory)
	v1.GET("/track/:trackingNumber", s.GetParcelByTrackingNumber)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateParcel handles POST /api/v1/parcels - registers a new parcel.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var request CreateParcelRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var senderID, recipientID *kernel.UUID
	if request.SenderID != nil {
		id, err := kernel.UUIDFromBytes(request.SenderID[:])
		if err != nil {
			return badRequest(ctx, "Invalid sender id")
		}
		senderID = &id
	}
	if request.RecipientID != nil {
		id, err := kernel.UUIDFromBytes(request.RecipientID[:])
		if err != nil {
			return badRequest(ctx, "Invalid recipient id")
		}
		recipientID = &id
	}

	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), senderID, recipientID)
	if err != nil {
		return badRequest(ctx, "Invalid parcel data: "+err.Error())
	}

	created, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, parcelToResponse(created))
}

// AssignDriver handles POST /api/v1/parcels/:parcelId/assign.
func (s *Server) AssignDriver(ctx echo.Context) error {
	parcelID, err := parseParcelID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	actorID, err := parseActor(ctx)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+actorHeader+" header")
	}

	var request AssignDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(request.DriverID[:])
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewAssignDriverCommand(parcelID, driverID, actorID, request.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	assigned, err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(assigned))
}

// ReassignDriver handles POST /api/v1/parcels/:parcelId/reassign.
func (s *Server) ReassignDriver(ctx echo.Context) error {
	parcelID, err := parseParcelID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var request ReassignDriverRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(request.DriverID[:])
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewReassignDriverCommand(parcelID, driverID)
	if err != nil {
		return badRequest(ctx, "Invalid reassignment data: "+err.Error())
	}

	reassigned, err := s.reassignDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(reassigned))
}

// BulkAssignDrivers handles POST /api/v1/parcels/bulk-assign.
func (s *Server) BulkAssignDrivers(ctx echo.Context) error {
	actorID, err := parseActor(ctx)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+actorHeader+" header")
	}

	var request BulkAssignRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.BulkAssignItem, 0, len(request.Assignments))
	for _, assignment := range request.Assignments {
		parcelID, err := kernel.UUIDFromBytes(assignment.ParcelID[:])
		if err != nil {
			return badRequest(ctx, "Invalid parcel id")
		}
		driverID, err := kernel.UUIDFromBytes(assignment.DriverID[:])
		if err != nil {
			return badRequest(ctx, "Invalid driver id")
		}
		items = append(items, commands.BulkAssignItem{
			ParcelID: parcelID,
			DriverID: driverID,
			Notes:    assignment.Notes,
		})
	}

	cmd, err := commands.NewBulkAssignDriversCommand(items, actorID)
	if err != nil {
		return badRequest(ctx, "Invalid bulk assignment data: "+err.Error())
	}

	result, err := s.bulkAssignDriversHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, bulkResultToResponse(result))
}

// UpdateParcelStatus handles POST /api/v1/parcels/:parcelId/status.
func (s *Server) UpdateParcelStatus(ctx echo.Context) error {
	parcelID, err := parseParcelID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	actorID, err := parseActor(ctx)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+actorHeader+" header")
	}

	var request UpdateStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := parcel.ParseStatus(request.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+request.Status)
	}

	var location *kernel.GeoPoint
	if request.Latitude != nil && request.Longitude != nil {
		point, err := kernel.NewGeoPoint(*request.Latitude, *request.Longitude)
		if err != nil {
			return badRequest(ctx, "Invalid location: "+err.Error())
		}
		location = &point
	}

	cmd, err := commands.NewUpdateParcelStatusCommand(parcelID, target, actorID, location, request.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	updated, err := s.updateParcelStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(updated))
}

// ConfirmDelivery handles POST /api/v1/parcels/:parcelId/confirm.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	parcelID, err := parseParcelID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	actorID, err := parseActor(ctx)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+actorHeader+" header")
	}

	var request ConfirmDeliveryRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(parcelID, actorID, request.Signature, request.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid confirmation data: "+err.Error())
	}

	confirmed, err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(confirmed))
}

// CancelParcel handles POST /api/v1/parcels/:parcelId/cancel.
func (s *Server) CancelParcel(ctx echo.Context) error {
	parcelID, err := parseParcelID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	actorID, err := parseActor(ctx)
	if err != nil {
		return badRequest(ctx, "Missing or invalid "+actorHeader+" header")
	}

	var request CancelParcelRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelParcelCommand(parcelID, actorID, request.Notes)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	cancelled, err := s.cancelParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelToResponse(cancelled))
}

// GetStatusHistory handles GET /api/v1/parcels/:parcelId/history.
func (s *Server) GetStatusHistory(ctx echo.Context) error {
	parcelID, err := parseParcelID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	query, err := queries.NewGetStatusHistoryQuery(parcelID)
	if err != nil {
		return badRequest(ctx, "Invalid history request: "+err.Error())
	}

	entries, err := s.getStatusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, historyToResponse(entries))
}

// GetParcelByTrackingNumber handles GET /api/v1/track/:trackingNumber.
func (s *Server) GetParcelByTrackingNumber(ctx echo.Context) error {
	query, err := queries.NewGetParcelByTrackingNumberQuery(ctx.Param("trackingNumber"))
	if err != nil {
		return badRequest(ctx, "Invalid tracking number: "+err.Error())
	}

	view, err := s.getParcelByTrackingNumberHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackingToResponse(view))
}

// parseParcelID extracts the parcel identifier from the route.
func parseParcelID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("parcelId"))
}

// parseActor resolves the acting user from the identity header.
func parseActor(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Request().Header.Get(actorHeader))
}

// badRequest writes a 400 response with the standard error body.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates application and domain errors into HTTP responses.
func mapError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, commands.ErrActorIsNotRecipient):
		code = http.StatusForbidden
	case errors.Is(err, commands.ErrParcelNotAssignable),
		errors.Is(err, commands.ErrDriverNotAvailable),
		errors.Is(err, commands.ErrParcelNotCancellable),
		errors.Is(err, parcel.ErrInvalidTransition),
		errors.Is(err, errs.ErrConcurrencyConflict):
		code = http.StatusConflict
	case errors.Is(err, services.ErrTrackingNumberGenerationExhausted):
		code = http.StatusServiceUnavailable
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}
