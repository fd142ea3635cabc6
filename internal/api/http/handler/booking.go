package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/truckhire/truckhire-server/internal/api/http/httpctx"
	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
	"github.com/truckhire/truckhire-server/internal/service"
)

// BookingService is the part of the booking service the HTTP layer calls.
type BookingService interface {
	Book(ctx context.Context, params service.BookTruckParams) (model.Booking, error)
	Confirm(ctx context.Context, providerID, bookingID uuid.UUID, accept bool) (model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
}

type Booking struct {
	service BookingService
	logger  *logger.Logger
}

func NewBooking(service BookingService, logger *logger.Logger) *Booking {
	return &Booking{
		service: service,
		logger:  logger,
	}
}

type bookRequest struct {
	TruckID   string `json:"truck_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *Booking) Book(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpctx.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apierrors.NewErrInternal())
		return
	}

	var req bookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	truckID, err := uuid.Parse(req.TruckID)
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("invalid truck id"))
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("start_date must be RFC 3339"))
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("end_date must be RFC 3339"))
		return
	}

	booking, err := h.service.Book(r.Context(), service.BookTruckParams{
		CustomerID: principal.ID,
		TruckID:    truckID,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"data":   map[string]any{"booking": booking},
	})
}

type confirmRequest struct {
	Accept bool `json:"accept"`
}

func (h *Booking) Confirm(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpctx.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apierrors.NewErrInternal())
		return
	}

	bookingID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("invalid booking id"))
		return
	}

	var req confirmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	booking, err := h.service.Confirm(r.Context(), principal.ID, bookingID, req.Accept)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"booking": booking},
	})
}

func (h *Booking) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"results": len(bookings),
		"data":    map[string]any{"bookings": bookings},
	})
}
