// Package handler contains the HTTP handlers binding routes to services.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
)

// maxMultipartMemory bounds the in-memory part of multipart uploads;
// larger files spill to disk.
const maxMultipartMemory = 32 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError renders an APIError. Store timeouts and connection failures
// map to 503; anything else unclassified is logged and collapsed to a
// generic internal error so internals never leak to clients.
func writeError(w http.ResponseWriter, l *logger.Logger, err error) {
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		l.Error("unhandled error", "error", err)
		apiErr = apierrors.FromError(err)
	}

	writeJSON(w, apiErr.Status, map[string]any{
		"status": "fail",
		"error":  apiErr,
	})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierrors.NewErrInvalidRequest("malformed request body")
	}
	return nil
}
