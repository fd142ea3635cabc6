package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
	"github.com/truckhire/truckhire-server/internal/service"
)

// AuthService is the part of the auth core the HTTP layer calls.
type AuthService interface {
	SignUp(ctx context.Context, params service.SignUpParams) (model.User, string, error)
	Login(ctx context.Context, email, password string) (model.User, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawSecret, newPassword string) (string, error)
}

type Auth struct {
	service AuthService
	logger  *logger.Logger
}

func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		service: service,
		logger:  logger,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Avatar   string `json:"avatar"`
}

func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("name, email and password are required"))
		return
	}

	user, token, err := h.service.SignUp(r.Context(), service.SignUpParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
		Avatar:   req.Avatar,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": "success",
		"token":  token,
		"data":   map[string]any{"user": user},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("email and password are required"))
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"token":  token,
		"data":   map[string]any{"user": user},
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.Email == "" {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("email is required"))
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "token sent to email",
	})
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	rawSecret := mux.Vars(r)["token"]

	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.Password == "" {
		writeError(w, h.logger, apierrors.NewErrInvalidRequest("password is required"))
		return
	}

	token, err := h.service.ResetPassword(r.Context(), rawSecret, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"token":  token,
	})
}
