package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
)

// Truck manages the truck catalogue service providers offer for booking.
type Truck struct {
	truckStore model.TruckStore
	storage    model.Storage
	logger     *logger.Logger
}

func NewTruck(truckStore model.TruckStore, storage model.Storage, logger *logger.Logger) *Truck {
	return &Truck{
		truckStore: truckStore,
		storage:    storage,
		logger:     logger,
	}
}

// CreateTruckParams carries the fields accepted when listing a new truck.
type CreateTruckParams struct {
	OwnerID     uuid.UUID
	Name        string
	Type        string
	Location    string
	PricePerDay float64

	Cover            io.Reader
	CoverSize        int64
	CoverContentType string
}

func (s *Truck) Create(ctx context.Context, params CreateTruckParams) (model.Truck, error) {
	if params.Name == "" {
		return model.Truck{}, apierrors.NewErrInvalidRequest("truck name is required")
	}

	now := time.Now()
	truck := model.Truck{
		ID:          uuid.New(),
		OwnerID:     params.OwnerID,
		Name:        params.Name,
		Slug:        slugify(params.Name),
		Type:        params.Type,
		Location:    params.Location,
		PricePerDay: params.PricePerDay,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if params.Cover != nil {
		key := fmt.Sprintf("trucks/%s/cover", truck.ID)
		if err := s.storage.Upload(ctx, key, params.Cover, params.CoverSize, params.CoverContentType); err != nil {
			s.logger.Error("Truck service: cover upload failed",
				"truck_id", truck.ID,
				"error", err.Error())
			return model.Truck{}, fmt.Errorf("failed to upload cover image: %w", err)
		}
		url, err := s.storage.URL(ctx, key, uploadURLExpiry)
		if err != nil {
			return model.Truck{}, fmt.Errorf("failed to resolve cover url: %w", err)
		}
		truck.ImageCover = url
	}

	truck, err := s.truckStore.Create(ctx, truck)
	if err != nil {
		return model.Truck{}, fmt.Errorf("failed to create truck: %w", err)
	}

	s.logger.Info("Truck service: truck created",
		"truck_id", truck.ID,
		"owner_id", truck.OwnerID)

	return truck, nil
}

func (s *Truck) List(ctx context.Context, params model.TruckListParams) ([]model.Truck, error) {
	trucks, err := s.truckStore.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list trucks: %w", err)
	}
	return trucks, nil
}

func (s *Truck) Get(ctx context.Context, id uuid.UUID) (model.Truck, error) {
	truck, err := s.truckStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Truck{}, apierrors.NewErrNotFound(fmt.Sprintf("there is no truck with id %s", id))
	}
	if err != nil {
		return model.Truck{}, fmt.Errorf("failed to get truck by id: %w", err)
	}
	return truck, nil
}

// UpdateTruckServiceParams carries truck updates plus an optional
// replacement cover image.
type UpdateTruckServiceParams struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        *string
	Type        *string
	Location    *string
	PricePerDay *float64
	Available   *bool

	Cover            io.Reader
	CoverSize        int64
	CoverContentType string
}

func (s *Truck) Update(ctx context.Context, params UpdateTruckServiceParams) (model.Truck, error) {
	existing, err := s.truckStore.GetByID(ctx, params.ID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Truck{}, apierrors.NewErrNotFound(fmt.Sprintf("there is no truck with id %s", params.ID))
	}
	if err != nil {
		return model.Truck{}, fmt.Errorf("failed to get truck by id: %w", err)
	}
	if existing.OwnerID != params.OwnerID {
		return model.Truck{}, apierrors.NewErrForbidden()
	}

	update := model.UpdateTruckParams{
		ID:          params.ID,
		Name:        params.Name,
		Type:        params.Type,
		Location:    params.Location,
		PricePerDay: params.PricePerDay,
		Available:   params.Available,
	}
	if params.Name != nil {
		slug := slugify(*params.Name)
		update.Slug = &slug
	}

	if params.Cover != nil {
		key := fmt.Sprintf("trucks/%s/cover", params.ID)
		if err := s.storage.Upload(ctx, key, params.Cover, params.CoverSize, params.CoverContentType); err != nil {
			return model.Truck{}, fmt.Errorf("failed to upload cover image: %w", err)
		}
		url, err := s.storage.URL(ctx, key, uploadURLExpiry)
		if err != nil {
			return model.Truck{}, fmt.Errorf("failed to resolve cover url: %w", err)
		}
		update.ImageCover = &url
	}

	truck, err := s.truckStore.Update(ctx, update)
	if errors.Is(err, model.ErrNotFound) {
		return model.Truck{}, apierrors.NewErrNotFound(fmt.Sprintf("there is no truck with id %s", params.ID))
	}
	if err != nil {
		return model.Truck{}, fmt.Errorf("failed to update truck: %w", err)
	}

	return truck, nil
}

func (s *Truck) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	existing, err := s.truckStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrNotFound(fmt.Sprintf("there is no truck with id %s", id))
	}
	if err != nil {
		return fmt.Errorf("failed to get truck by id: %w", err)
	}
	if existing.OwnerID != ownerID {
		return apierrors.NewErrForbidden()
	}

	if err := s.truckStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete truck: %w", err)
	}

	// Best effort: the record is gone, an orphaned cover is not worth
	// failing the request over.
	if existing.ImageCover != "" {
		key := fmt.Sprintf("trucks/%s/cover", id)
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Error("Truck service: cover cleanup failed",
				"truck_id", id,
				"error", err.Error())
		}
	}

	s.logger.Info("Truck service: truck deleted", "truck_id", id)

	return nil
}

// slugify lowercases the name and collapses anything that is not a letter
// or digit into single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
