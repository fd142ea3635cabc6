// Package httpctx carries the authenticated user through request contexts.
package httpctx

import (
	"context"

	"github.com/truckhire/truckhire-server/internal/model"
)

type contextKey struct{}

var userKey contextKey

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext extracts the authenticated user set by the
// authentication middleware. ok is false on routes that never passed
// through it.
func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}
