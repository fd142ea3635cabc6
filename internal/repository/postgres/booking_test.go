package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truckhire/truckhire-server/internal/model"
)

var bookingTestColumns = []string{
	"id", "truck_id", "customer_id", "start_date", "end_date",
	"status", "confirmation_code", "created_at", "updated_at",
}

func bookingRow(b model.Booking) *pgxmock.Rows {
	return pgxmock.NewRows(bookingTestColumns).AddRow(
		b.ID, b.TruckID, b.CustomerID, b.StartDate, b.EndDate,
		b.Status, b.ConfirmationCode, b.CreatedAt, b.UpdatedAt,
	)
}

func testBooking() model.Booking {
	now := time.Now().UTC().Truncate(time.Second)
	return model.Booking{
		ID:         uuid.New(),
		TruckID:    uuid.New(),
		CustomerID: uuid.New(),
		StartDate:  now.AddDate(0, 0, 1),
		EndDate:    now.AddDate(0, 0, 4),
		Status:     model.BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestBookingRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	booking := testBooking()

	mock.ExpectQuery(`INSERT INTO bookings`).
		WithArgs(booking.ID, booking.TruckID, booking.CustomerID, booking.StartDate, booking.EndDate,
			booking.Status, booking.CreatedAt, booking.UpdatedAt).
		WillReturnRows(bookingRow(booking))

	repo := NewBookingRepository(mock)
	got, err := repo.Create(context.Background(), booking)

	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, got.Status)
	assert.Nil(t, got.ConfirmationCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(bookingTestColumns))

	repo := NewBookingRepository(mock)
	_, err = repo.GetByID(context.Background(), id)

	require.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_SetStatus(t *testing.T) {
	booking := testBooking()
	code := "493021"

	tests := []struct {
		name     string
		status   model.BookingStatus
		code     *string
		wantCode *string
	}{
		{
			name:     "confirm attaches code",
			status:   model.BookingConfirmed,
			code:     &code,
			wantCode: &code,
		},
		{
			name:   "decline leaves code empty",
			status: model.BookingDeclined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			updated := booking
			updated.Status = tt.status
			updated.ConfirmationCode = tt.wantCode

			mock.ExpectQuery(`UPDATE bookings SET status`).
				WithArgs(booking.ID, tt.status, tt.code).
				WillReturnRows(bookingRow(updated))

			repo := NewBookingRepository(mock)
			got, err := repo.SetStatus(context.Background(), booking.ID, tt.status, tt.code)

			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			if tt.wantCode != nil {
				require.NotNil(t, got.ConfirmationCode)
				assert.Equal(t, *tt.wantCode, *got.ConfirmationCode)
			} else {
				assert.Nil(t, got.ConfirmationCode)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	first := testBooking()
	second := testBooking()

	rows := pgxmock.NewRows(bookingTestColumns).
		AddRow(first.ID, first.TruckID, first.CustomerID, first.StartDate, first.EndDate,
			first.Status, first.ConfirmationCode, first.CreatedAt, first.UpdatedAt).
		AddRow(second.ID, second.TruckID, second.CustomerID, second.StartDate, second.EndDate,
			second.Status, second.ConfirmationCode, second.CreatedAt, second.UpdatedAt)

	mock.ExpectQuery(`SELECT .+ FROM bookings ORDER BY created_at DESC`).
		WillReturnRows(rows)

	repo := NewBookingRepository(mock)
	got, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
