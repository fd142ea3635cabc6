package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/truckhire/truckhire-server/internal/api/http/httpctx"
	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
	"github.com/truckhire/truckhire-server/internal/service"
)

// UserService is the part of the user service the HTTP layer calls.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, params service.UpdateMeParams) (model.User, error)
	DeleteMe(ctx context.Context, userID uuid.UUID) error
}

type User struct {
	service UserService
	logger  *logger.Logger
}

func NewUser(service UserService, logger *logger.Logger) *User {
	return &User{
		service: service,
		logger:  logger,
	}
}

func (h *User) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"users": users},
	})
}

func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("invalid user id"))
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"user": user},
	})
}

func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := httpctx.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apierrors.NewErrInternal())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"user": user},
	})
}

// UpdateMe accepts multipart form data so the avatar can ride along with
// profile fields. Absent fields stay untouched.
func (h *User) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpctx.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apierrors.NewErrInternal())
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("expected multipart form data"))
		return
	}

	params := service.UpdateMeParams{
		Name:  formValue(r, "name"),
		Email: formValue(r, "email"),
		Phone: formValue(r, "phone"),
	}

	if file, header, err := r.FormFile("avatar"); err == nil {
		defer file.Close()
		params.Avatar = file
		params.AvatarSize = header.Size
		params.AvatarContentType = header.Header.Get("Content-Type")
	}

	user, err := h.service.UpdateMe(r.Context(), principal.ID, params)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"user": user},
	})
}

func (h *User) DeleteMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := httpctx.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apierrors.NewErrInternal())
		return
	}

	if err := h.service.DeleteMe(r.Context(), principal.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// formValue returns a pointer to the form field, or nil when absent so
// partial updates leave the field alone.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
