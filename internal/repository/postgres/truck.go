package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/truckhire/truckhire-server/internal/model"
)

var _ model.TruckStore = (*TruckRepository)(nil)

const truckColumns = `id, owner_id, name, slug, type, location, price_per_day, image_cover, available, created_at, updated_at`

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// sortableTruckColumns whitelists ORDER BY targets; anything else falls
// back to created_at.
var sortableTruckColumns = map[string]string{
	"name":          "name",
	"price_per_day": "price_per_day",
	"location":      "location",
	"created_at":    "created_at",
}

type TruckRepository struct {
	db DB
}

func NewTruckRepository(db DB) *TruckRepository {
	return &TruckRepository{
		db: db,
	}
}

func (r *TruckRepository) Create(ctx context.Context, truck model.Truck) (model.Truck, error) {
	query := `INSERT INTO trucks (id, owner_id, name, slug, type, location, price_per_day, image_cover, available, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING ` + truckColumns

	saved, err := r.scanTruck(r.db.QueryRow(ctx, query,
		truck.ID, truck.OwnerID, truck.Name, truck.Slug, truck.Type, truck.Location,
		truck.PricePerDay, truck.ImageCover, truck.Available, truck.CreatedAt, truck.UpdatedAt,
	))
	if err != nil {
		return model.Truck{}, fmt.Errorf("failed to create truck: %w", err)
	}

	return saved, nil
}

func (r *TruckRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Truck, error) {
	query := `SELECT ` + truckColumns + ` FROM trucks WHERE id = $1`

	truck, err := r.scanTruck(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Truck{}, model.ErrNotFound
		}
		return model.Truck{}, fmt.Errorf("failed to get truck by id: %w", err)
	}

	return truck, nil
}

func (r *TruckRepository) List(ctx context.Context, params model.TruckListParams) ([]model.Truck, error) {
	var (
		conds []string
		args  []any
	)

	addArg := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if params.Type != "" {
		addArg("type = $%d", params.Type)
	}
	if params.Location != "" {
		addArg("location = $%d", params.Location)
	}
	if params.Available != nil {
		addArg("available = $%d", *params.Available)
	}
	if params.Search != "" {
		addArg("name ILIKE $%d", "%"+params.Search+"%")
	}

	query := `SELECT ` + truckColumns + ` FROM trucks`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	sortCol, ok := sortableTruckColumns[params.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	query += " ORDER BY " + sortCol
	if params.SortDesc {
		query += " DESC"
	}

	limit := params.Limit
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, (page-1)*limit)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trucks: %w", err)
	}
	defer rows.Close()

	var trucks []model.Truck
	for rows.Next() {
		truck, err := r.scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan truck: %w", err)
		}
		trucks = append(trucks, truck)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trucks: %w", err)
	}

	return trucks, nil
}

func (r *TruckRepository) Update(ctx context.Context, params model.UpdateTruckParams) (model.Truck, error) {
	query := `UPDATE trucks SET
				name = COALESCE($2, name),
				slug = COALESCE($3, slug),
				type = COALESCE($4, type),
				location = COALESCE($5, location),
				price_per_day = COALESCE($6, price_per_day),
				image_cover = COALESCE($7, image_cover),
				available = COALESCE($8, available),
				updated_at = now()
			  WHERE id = $1
			  RETURNING ` + truckColumns

	truck, err := r.scanTruck(r.db.QueryRow(ctx, query,
		params.ID, params.Name, params.Slug, params.Type, params.Location,
		params.PricePerDay, params.ImageCover, params.Available,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Truck{}, model.ErrNotFound
		}
		return model.Truck{}, fmt.Errorf("failed to update truck: %w", err)
	}

	return truck, nil
}

func (r *TruckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trucks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete truck: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *TruckRepository) scanTruck(row pgx.Row) (model.Truck, error) {
	var truck model.Truck
	err := row.Scan(
		&truck.ID, &truck.OwnerID, &truck.Name, &truck.Slug, &truck.Type, &truck.Location,
		&truck.PricePerDay, &truck.ImageCover, &truck.Available, &truck.CreatedAt, &truck.UpdatedAt,
	)
	if err != nil {
		return model.Truck{}, err
	}
	return truck, nil
}
