// Package router wires handlers and middleware into the HTTP route table.
package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/truckhire/truckhire-server/internal/api/http/handler"
	"github.com/truckhire/truckhire-server/internal/api/http/middleware"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
)

type Handlers struct {
	Auth    *handler.Auth
	User    *handler.User
	Truck   *handler.Truck
	Booking *handler.Booking
	License *handler.License
}

// New builds the route table. authService backs the authentication
// middleware on protected routes; public routes never touch it.
func New(h Handlers, authService middleware.AuthService, l *logger.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Logging(l))

	api := r.PathPrefix("/api/v1").Subrouter()

	authn := middleware.Authenticate(authService, l)
	adminOnly := middleware.RequireRoles(l, model.RoleAdmin)
	customerOnly := middleware.RequireRoles(l, model.RoleCustomer)
	providerOnly := middleware.RequireRoles(l, model.RoleServiceProvider)

	// Auth surface, public.
	api.HandleFunc("/users/signup", h.Auth.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/users/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/users/forgotPassword", h.Auth.ForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/users/resetPassword/{token}", h.Auth.ResetPassword).Methods(http.MethodPatch)

	// Own-profile surface, any authenticated user.
	api.Handle("/users/me", chain(http.HandlerFunc(h.User.Me), authn)).Methods(http.MethodGet)
	api.Handle("/users/me", chain(http.HandlerFunc(h.User.UpdateMe), authn)).Methods(http.MethodPatch)
	api.Handle("/users/me", chain(http.HandlerFunc(h.User.DeleteMe), authn)).Methods(http.MethodDelete)
	api.Handle("/users/me/license", chain(http.HandlerFunc(h.License.Read), authn)).Methods(http.MethodPost)

	// Admin-gated user collection. /users/me is registered first so the
	// {id} route never shadows it.
	api.Handle("/users", chain(http.HandlerFunc(h.User.List), authn, adminOnly)).Methods(http.MethodGet)
	api.Handle("/users/{id}", chain(http.HandlerFunc(h.User.Get), authn, adminOnly)).Methods(http.MethodGet)

	// Truck catalogue: reads are public, writes are provider-only.
	api.HandleFunc("/trucks", h.Truck.List).Methods(http.MethodGet)
	api.HandleFunc("/trucks/{id}", h.Truck.Get).Methods(http.MethodGet)
	api.Handle("/trucks", chain(http.HandlerFunc(h.Truck.Create), authn, providerOnly)).Methods(http.MethodPost)
	api.Handle("/trucks/{id}", chain(http.HandlerFunc(h.Truck.Update), authn, providerOnly)).Methods(http.MethodPatch)
	api.Handle("/trucks/{id}", chain(http.HandlerFunc(h.Truck.Delete), authn, providerOnly)).Methods(http.MethodDelete)

	// Bookings: customers book, providers confirm. The truck view on the
	// booking surface is customer-gated, unlike the public catalogue read.
	api.HandleFunc("/bookings", h.Booking.List).Methods(http.MethodGet)
	api.Handle("/bookings", chain(http.HandlerFunc(h.Booking.Book), authn, customerOnly)).Methods(http.MethodPost)
	api.Handle("/bookings/trucks/{id}", chain(http.HandlerFunc(h.Truck.Get), authn, customerOnly)).Methods(http.MethodGet)
	api.Handle("/bookings/{id}/confirm", chain(http.HandlerFunc(h.Booking.Confirm), authn, providerOnly)).Methods(http.MethodPost)

	return r
}

// chain applies middleware left to right: the first listed runs first.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
