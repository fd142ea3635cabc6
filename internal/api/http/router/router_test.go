package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truckhire/truckhire-server/internal/api/http/handler"
	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/model"
	"github.com/truckhire/truckhire-server/internal/service"
	"github.com/truckhire/truckhire-server/internal/testutil"
)

// tokenAuth resolves fixed tokens to fixed users.
type tokenAuth struct {
	users map[string]model.User
}

func (a *tokenAuth) Authenticate(_ context.Context, token string) (model.User, error) {
	user, ok := a.users[token]
	if !ok {
		return model.User{}, apierrors.NewErrInvalidToken()
	}
	return user, nil
}

type fakeAuthService struct{}

func (fakeAuthService) SignUp(context.Context, service.SignUpParams) (model.User, string, error) {
	return model.User{}, "t", nil
}
func (fakeAuthService) Login(context.Context, string, string) (model.User, string, error) {
	return model.User{}, "t", nil
}
func (fakeAuthService) ForgotPassword(context.Context, string) error { return nil }
func (fakeAuthService) ResetPassword(_ context.Context, rawSecret, _ string) (string, error) {
	return "reset-jwt-" + rawSecret, nil
}

type fakeUserService struct{}

func (fakeUserService) List(context.Context) ([]model.User, error) { return nil, nil }
func (fakeUserService) Get(context.Context, uuid.UUID) (model.User, error) {
	return model.User{}, nil
}
func (fakeUserService) UpdateMe(context.Context, uuid.UUID, service.UpdateMeParams) (model.User, error) {
	return model.User{}, nil
}
func (fakeUserService) DeleteMe(context.Context, uuid.UUID) error { return nil }

type fakeTruckService struct{}

func (fakeTruckService) Create(context.Context, service.CreateTruckParams) (model.Truck, error) {
	return model.Truck{}, nil
}
func (fakeTruckService) List(context.Context, model.TruckListParams) ([]model.Truck, error) {
	return nil, nil
}
func (fakeTruckService) Get(context.Context, uuid.UUID) (model.Truck, error) {
	return model.Truck{}, nil
}
func (fakeTruckService) Update(context.Context, service.UpdateTruckServiceParams) (model.Truck, error) {
	return model.Truck{}, nil
}
func (fakeTruckService) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

type fakeBookingService struct{}

func (fakeBookingService) Book(context.Context, service.BookTruckParams) (model.Booking, error) {
	return model.Booking{}, nil
}
func (fakeBookingService) Confirm(context.Context, uuid.UUID, uuid.UUID, bool) (model.Booking, error) {
	return model.Booking{}, nil
}
func (fakeBookingService) List(context.Context) ([]model.Booking, error) { return nil, nil }

type fakeLicenseService struct{}

func (fakeLicenseService) Read(context.Context, uuid.UUID, io.Reader, int64, string) (service.LicenseScan, error) {
	return service.LicenseScan{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	l := testutil.MakeNoopLogger()
	auth := &tokenAuth{users: map[string]model.User{
		"admin-token":    {ID: uuid.New(), Role: model.RoleAdmin},
		"customer-token": {ID: uuid.New(), Role: model.RoleCustomer},
		"provider-token": {ID: uuid.New(), Role: model.RoleServiceProvider},
	}}

	return New(Handlers{
		Auth:    handler.NewAuth(fakeAuthService{}, l),
		User:    handler.NewUser(fakeUserService{}, l),
		Truck:   handler.NewTruck(fakeTruckService{}, l),
		Booking: handler.NewBooking(fakeBookingService{}, l),
		License: handler.NewLicense(fakeLicenseService{}, l),
	}, auth, l)
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RoleGating(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       string
		wantStatus int
	}{
		{"truck list is public", http.MethodGet, "/api/v1/trucks", "", "", http.StatusOK},
		{"truck get is public", http.MethodGet, "/api/v1/trucks/" + uuid.NewString(), "", "", http.StatusOK},
		{"booking list is public", http.MethodGet, "/api/v1/bookings", "", "", http.StatusOK},
		{"signup is public", http.MethodPost, "/api/v1/users/signup", "", `{"name":"a","email":"a@b","password":"p"}`, http.StatusCreated},
		{"login is public", http.MethodPost, "/api/v1/users/login", "", `{"email":"a@b","password":"p"}`, http.StatusOK},
		{"user list needs auth", http.MethodGet, "/api/v1/users", "", "", http.StatusUnauthorized},
		{"user list rejects customers", http.MethodGet, "/api/v1/users", "customer-token", "", http.StatusForbidden},
		{"user list allows admins", http.MethodGet, "/api/v1/users", "admin-token", "", http.StatusOK},
		{"user get rejects providers", http.MethodGet, "/api/v1/users/" + uuid.NewString(), "provider-token", "", http.StatusForbidden},
		{"me needs auth", http.MethodGet, "/api/v1/users/me", "", "", http.StatusUnauthorized},
		{"me works for any role", http.MethodGet, "/api/v1/users/me", "customer-token", "", http.StatusOK},
		{"me rejects unknown token", http.MethodGet, "/api/v1/users/me", "who-dis", "", http.StatusUnauthorized},
		{"truck create needs provider", http.MethodPost, "/api/v1/trucks", "customer-token", "", http.StatusForbidden},
		{"truck delete needs provider", http.MethodDelete, "/api/v1/trucks/" + uuid.NewString(), "customer-token", "", http.StatusForbidden},
		{"booking needs customer", http.MethodPost, "/api/v1/bookings", "provider-token", "", http.StatusForbidden},
		{"confirm needs provider", http.MethodPost, "/api/v1/bookings/" + uuid.NewString() + "/confirm", "customer-token", "", http.StatusForbidden},
		{"booking truck view needs auth", http.MethodGet, "/api/v1/bookings/trucks/" + uuid.NewString(), "", "", http.StatusUnauthorized},
		{"booking truck view rejects providers", http.MethodGet, "/api/v1/bookings/trucks/" + uuid.NewString(), "provider-token", "", http.StatusForbidden},
		{"booking truck view allows customers", http.MethodGet, "/api/v1/bookings/trucks/" + uuid.NewString(), "customer-token", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouter_ResetPasswordTokenVar(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPatch, "/api/v1/users/resetPassword/raw-secret", "", `{"password":"new"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reset-jwt-raw-secret")
}

func TestRouter_MeNotShadowedByID(t *testing.T) {
	router := newTestRouter(t)

	// "me" must hit the own-profile route, not the admin {id} route.
	rec := doRequest(t, router, http.MethodGet, "/api/v1/users/me", "customer-token", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
