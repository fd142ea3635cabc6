package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/truckhire/truckhire-server/internal/model"
)

var _ model.BookingStore = (*BookingRepository)(nil)

const bookingColumns = `id, truck_id, customer_id, start_date, end_date, status, confirmation_code, created_at, updated_at`

type BookingRepository struct {
	db DB
}

func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{
		db: db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking model.Booking) (model.Booking, error) {
	query := `INSERT INTO bookings (id, truck_id, customer_id, start_date, end_date, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + bookingColumns

	saved, err := r.scanBooking(r.db.QueryRow(ctx, query,
		booking.ID, booking.TruckID, booking.CustomerID, booking.StartDate, booking.EndDate,
		booking.Status, booking.CreatedAt, booking.UpdatedAt,
	))
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	return saved, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, model.ErrNotFound
		}
		return model.Booking{}, fmt.Errorf("failed to get booking by id: %w", err)
	}

	return booking, nil
}

func (r *BookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}

	return bookings, nil
}

func (r *BookingRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus, confirmationCode *string) (model.Booking, error) {
	query := `UPDATE bookings SET status = $2, confirmation_code = $3, updated_at = now()
			  WHERE id = $1
			  RETURNING ` + bookingColumns

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id, status, confirmationCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Booking{}, model.ErrNotFound
		}
		return model.Booking{}, fmt.Errorf("failed to update booking status: %w", err)
	}

	return booking, nil
}

func (r *BookingRepository) scanBooking(row pgx.Row) (model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID, &booking.TruckID, &booking.CustomerID, &booking.StartDate, &booking.EndDate,
		&booking.Status, &booking.ConfirmationCode, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	return booking, nil
}
