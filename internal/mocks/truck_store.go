package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/truckhire/truckhire-server/internal/model"
)

// TruckStore is a testify mock for model.TruckStore.
type TruckStore struct {
	mock.Mock
}

func (m *TruckStore) Create(ctx context.Context, truck model.Truck) (model.Truck, error) {
	args := m.Called(ctx, truck)
	return args.Get(0).(model.Truck), args.Error(1)
}

func (m *TruckStore) GetByID(ctx context.Context, id uuid.UUID) (model.Truck, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Truck), args.Error(1)
}

func (m *TruckStore) List(ctx context.Context, params model.TruckListParams) ([]model.Truck, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Truck), args.Error(1)
}

func (m *TruckStore) Update(ctx context.Context, params model.UpdateTruckParams) (model.Truck, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Truck), args.Error(1)
}

func (m *TruckStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
