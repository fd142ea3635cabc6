package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/truckhire/truckhire-server/internal/api/http/httpctx"
	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/service"
)

// LicenseService reads driver license images.
type LicenseService interface {
	Read(ctx context.Context, userID uuid.UUID, image io.Reader, size int64, contentType string) (service.LicenseScan, error)
}

type License struct {
	service LicenseService
	logger  *logger.Logger
}

func NewLicense(service LicenseService, logger *logger.Logger) *License {
	return &License{
		service: service,
		logger:  logger,
	}
}

// Read accepts a multipart license image upload and returns the
// recognized text.
func (h *License) Read(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpctx.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apierrors.NewErrInternal())
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("expected multipart form data"))
		return
	}

	file, header, err := r.FormFile("license")
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("license image is required"))
		return
	}
	defer file.Close()

	scan, err := h.service.Read(r.Context(), principal.ID, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"scan": scan},
	})
}
