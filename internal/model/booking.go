package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingStatus tracks the lifecycle of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingDeclined  BookingStatus = "declined"
)

// BookingStore defines persistence operations for bookings.
type BookingStore interface {
	Create(ctx context.Context, booking Booking) (Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (Booking, error)
	List(ctx context.Context) ([]Booking, error)
	SetStatus(ctx context.Context, id uuid.UUID, status BookingStatus, confirmationCode *string) (Booking, error)
}

// Booking represents a customer's reservation of a truck.
type Booking struct {
	ID               uuid.UUID     `json:"id"`
	TruckID          uuid.UUID     `json:"truck_id"`
	CustomerID       uuid.UUID     `json:"customer_id"`
	StartDate        time.Time     `json:"start_date"`
	EndDate          time.Time     `json:"end_date"`
	Status           BookingStatus `json:"status"`
	ConfirmationCode *string       `json:"confirmation_code,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
