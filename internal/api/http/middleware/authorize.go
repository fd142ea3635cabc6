package middleware

import (
	"net/http"

	"github.com/truckhire/truckhire-server/internal/api/http/httpctx"
	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
)

// RequireRoles allows only callers holding one of the given roles. It
// must run after Authenticate; a route reaching it without a principal
// in context is a wiring bug and fails closed with a 500.
func RequireRoles(l *logger.Logger, roles ...model.Role) func(http.Handler) http.Handler {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := httpctx.UserFromContext(r.Context())
			if !ok {
				l.Error("misconfigured route: authorization without authentication", "path", r.URL.Path)
				writeError(w, apierrors.NewErrInternal())
				return
			}

			if _, ok := allowed[user.Role]; !ok {
				writeError(w, apierrors.NewErrForbidden())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
