package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
)

const confirmationCodeDigits = 6

// Booking manages truck reservations.
type Booking struct {
	bookingStore model.BookingStore
	truckStore   model.TruckStore
	logger       *logger.Logger
}

func NewBooking(bookingStore model.BookingStore, truckStore model.TruckStore, logger *logger.Logger) *Booking {
	return &Booking{
		bookingStore: bookingStore,
		truckStore:   truckStore,
		logger:       logger,
	}
}

// BookTruckParams carries the fields of a booking request.
type BookTruckParams struct {
	CustomerID uuid.UUID
	TruckID    uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
}

// Book reserves a truck for a customer. The booking starts pending until
// the truck's provider confirms it.
func (s *Booking) Book(ctx context.Context, params BookTruckParams) (model.Booking, error) {
	if !params.EndDate.After(params.StartDate) {
		return model.Booking{}, apierrors.NewErrInvalidRequest("end date must be after start date")
	}

	truck, err := s.truckStore.GetByID(ctx, params.TruckID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Booking{}, apierrors.NewErrNotFound(fmt.Sprintf("there is no truck with id %s", params.TruckID))
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to get truck by id: %w", err)
	}
	if !truck.Available {
		return model.Booking{}, apierrors.NewErrInvalidRequest("truck is not available for booking")
	}

	now := time.Now()
	booking := model.Booking{
		ID:         uuid.New(),
		TruckID:    params.TruckID,
		CustomerID: params.CustomerID,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		Status:     model.BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	booking, err = s.bookingStore.Create(ctx, booking)
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info("Booking service: truck booked",
		"booking_id", booking.ID,
		"truck_id", booking.TruckID,
		"customer_id", booking.CustomerID)

	return booking, nil
}

// Confirm lets the truck's provider accept or decline a pending booking.
// Acceptance attaches a random numeric confirmation code.
func (s *Booking) Confirm(ctx context.Context, providerID, bookingID uuid.UUID, accept bool) (model.Booking, error) {
	booking, err := s.bookingStore.GetByID(ctx, bookingID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Booking{}, apierrors.NewErrNotFound(fmt.Sprintf("there is no booking with id %s", bookingID))
	}
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to get booking by id: %w", err)
	}
	if booking.Status != model.BookingPending {
		return model.Booking{}, apierrors.NewErrInvalidRequest("booking has already been resolved")
	}

	truck, err := s.truckStore.GetByID(ctx, booking.TruckID)
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to get truck by id: %w", err)
	}
	if truck.OwnerID != providerID {
		return model.Booking{}, apierrors.NewErrForbidden()
	}

	status := model.BookingDeclined
	var code *string
	if accept {
		status = model.BookingConfirmed
		generated, err := generateConfirmationCode()
		if err != nil {
			return model.Booking{}, fmt.Errorf("failed to generate confirmation code: %w", err)
		}
		code = &generated
	}

	booking, err = s.bookingStore.SetStatus(ctx, bookingID, status, code)
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to update booking status: %w", err)
	}

	s.logger.Info("Booking service: booking resolved",
		"booking_id", booking.ID,
		"status", booking.Status)

	return booking, nil
}

func (s *Booking) List(ctx context.Context) ([]model.Booking, error) {
	bookings, err := s.bookingStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func generateConfirmationCode() (string, error) {
	var code string
	for range confirmationCodeDigits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code += n.String()
	}
	return code, nil
}
