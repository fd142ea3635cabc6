package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/truckhire/truckhire-server/internal/model"
)

// BookingStore is a testify mock for model.BookingStore.
type BookingStore struct {
	mock.Mock
}

func (m *BookingStore) Create(ctx context.Context, booking model.Booking) (model.Booking, error) {
	args := m.Called(ctx, booking)
	return args.Get(0).(model.Booking), args.Error(1)
}

func (m *BookingStore) GetByID(ctx context.Context, id uuid.UUID) (model.Booking, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Booking), args.Error(1)
}

func (m *BookingStore) List(ctx context.Context) ([]model.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *BookingStore) SetStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, confirmationCode *string) (model.Booking, error) {
	args := m.Called(ctx, id, status, confirmationCode)
	return args.Get(0).(model.Booking), args.Error(1)
}
