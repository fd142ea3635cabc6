package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TruckStore defines persistence operations for trucks.
type TruckStore interface {
	Create(ctx context.Context, truck Truck) (Truck, error)
	GetByID(ctx context.Context, id uuid.UUID) (Truck, error)
	List(ctx context.Context, params TruckListParams) ([]Truck, error)
	Update(ctx context.Context, params UpdateTruckParams) (Truck, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Truck represents a truck offered for booking by a service provider.
type Truck struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Type        string    `json:"type,omitempty"`
	Location    string    `json:"location,omitempty"`
	PricePerDay float64   `json:"price_per_day"`
	ImageCover  string    `json:"image_cover,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TruckListParams selects, orders and pages a truck listing. Zero values
// mean no filter, default order, first page.
type TruckListParams struct {
	Type      string
	Location  string
	Available *bool
	Search    string
	SortBy    string
	SortDesc  bool
	Page      int
	Limit     int
}

// UpdateTruckParams carries truck fields for a partial update.
type UpdateTruckParams struct {
	ID          uuid.UUID
	Name        *string
	Slug        *string
	Type        *string
	Location    *string
	PricePerDay *float64
	ImageCover  *string
	Available   *bool
}
