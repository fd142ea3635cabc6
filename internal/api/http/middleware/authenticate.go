// Package middleware contains the HTTP middleware chain: request logging,
// bearer authentication and role authorization.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/truckhire/truckhire-server/internal/api/http/httpctx"
	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
)

// AuthService resolves a bearer token to its user.
type AuthService interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// Authenticate extracts the bearer token, resolves it to a user and
// attaches the user to the request context. Requests without a
// well-formed "Bearer <token>" header are rejected before any token
// parsing happens.
func Authenticate(auth AuthService, l *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, apierrors.NewErrMissingToken())
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				var apiErr *apierrors.APIError
				if !errors.As(err, &apiErr) {
					l.Error("authentication failed", "error", err)
					apiErr = apierrors.FromError(err)
				}
				writeError(w, apiErr)
				return
			}

			ctx := httpctx.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func writeError(w http.ResponseWriter, apiErr *apierrors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "fail",
		"error":  apiErr,
	})
}
