package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/model"
	"github.com/truckhire/truckhire-server/internal/service"
	"github.com/truckhire/truckhire-server/internal/testutil"
)

type stubBookingService struct {
	booking model.Booking
	err     error

	bookParams service.BookTruckParams
	providerID uuid.UUID
	bookingID  uuid.UUID
	accepted   bool
}

func (s *stubBookingService) Book(_ context.Context, params service.BookTruckParams) (model.Booking, error) {
	s.bookParams = params
	return s.booking, s.err
}

func (s *stubBookingService) Confirm(_ context.Context, providerID, bookingID uuid.UUID, accept bool) (model.Booking, error) {
	s.providerID = providerID
	s.bookingID = bookingID
	s.accepted = accept
	return s.booking, s.err
}

func (s *stubBookingService) List(_ context.Context) ([]model.Booking, error) {
	return []model.Booking{s.booking}, s.err
}

func TestBookingHandler_Book(t *testing.T) {
	customer := model.User{ID: uuid.New(), Role: model.RoleCustomer}
	truckID := uuid.New()
	svc := &stubBookingService{booking: model.Booking{ID: uuid.New(), Status: model.BookingPending}}
	h := NewBooking(svc, testutil.MakeNoopLogger())

	start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	end := start.Add(72 * time.Hour)

	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/v1/bookings", jsonBody(t, map[string]string{
		"truck_id":   truckID.String(),
		"start_date": start.Format(time.RFC3339),
		"end_date":   end.Format(time.RFC3339),
	})), customer)
	rec := httptest.NewRecorder()

	h.Book(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, customer.ID, svc.bookParams.CustomerID)
	assert.Equal(t, truckID, svc.bookParams.TruckID)
	assert.True(t, svc.bookParams.EndDate.Equal(end))
}

func TestBookingHandler_Book_BadDates(t *testing.T) {
	customer := model.User{ID: uuid.New(), Role: model.RoleCustomer}
	h := NewBooking(&stubBookingService{}, testutil.MakeNoopLogger())

	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/v1/bookings", jsonBody(t, map[string]string{
		"truck_id":   uuid.New().String(),
		"start_date": "tomorrow",
		"end_date":   "later",
	})), customer)
	rec := httptest.NewRecorder()

	h.Book(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingHandler_Confirm(t *testing.T) {
	provider := model.User{ID: uuid.New(), Role: model.RoleServiceProvider}
	bookingID := uuid.New()
	code := "123456"
	svc := &stubBookingService{booking: model.Booking{ID: bookingID, Status: model.BookingConfirmed, ConfirmationCode: &code}}
	h := NewBooking(svc, testutil.MakeNoopLogger())

	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID.String()+"/confirm", jsonBody(t, map[string]bool{
		"accept": true,
	})), provider)
	req = mux.SetURLVars(req, map[string]string{"id": bookingID.String()})
	rec := httptest.NewRecorder()

	h.Confirm(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, provider.ID, svc.providerID)
	assert.Equal(t, bookingID, svc.bookingID)
	assert.True(t, svc.accepted)
}

func TestBookingHandler_Confirm_NotOwner(t *testing.T) {
	provider := model.User{ID: uuid.New(), Role: model.RoleServiceProvider}
	bookingID := uuid.New()
	svc := &stubBookingService{err: apierrors.NewErrForbidden()}
	h := NewBooking(svc, testutil.MakeNoopLogger())

	req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/v1/bookings/"+bookingID.String()+"/confirm", jsonBody(t, map[string]bool{
		"accept": true,
	})), provider)
	req = mux.SetURLVars(req, map[string]string{"id": bookingID.String()})
	rec := httptest.NewRecorder()

	h.Confirm(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBookingHandler_List(t *testing.T) {
	svc := &stubBookingService{booking: model.Booking{ID: uuid.New()}}
	h := NewBooking(svc, testutil.MakeNoopLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["results"])
}
