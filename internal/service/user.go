package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/truckhire/truckhire-server/internal/apierrors"
	"github.com/truckhire/truckhire-server/internal/logger"
	"github.com/truckhire/truckhire-server/internal/model"
)

const uploadURLExpiry = 7 * 24 * time.Hour

// User manages user profiles. Credential changes never go through here;
// those belong to the Auth service.
type User struct {
	userStore model.UserStore
	storage   model.Storage
	logger    *logger.Logger
}

func NewUser(userStore model.UserStore, storage model.Storage, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		storage:   storage,
		logger:    logger,
	}
}

func (s *User) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *User) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrNotFound(fmt.Sprintf("there is no user with id %s", id))
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// UpdateMeParams carries the profile fields a user may change about
// themselves. Avatar, when set, is uploaded to object storage first.
type UpdateMeParams struct {
	Name   *string
	Email  *string
	Phone  *string
	Active *bool

	Avatar            io.Reader
	AvatarSize        int64
	AvatarContentType string
}

// UpdateMe updates the calling user's own profile.
func (s *User) UpdateMe(ctx context.Context, userID uuid.UUID, params UpdateMeParams) (model.User, error) {
	update := model.UpdateUserParams{
		ID:     userID,
		Name:   params.Name,
		Email:  params.Email,
		Phone:  params.Phone,
		Active: params.Active,
	}

	if params.Avatar != nil {
		key := fmt.Sprintf("users/%s/avatar", userID)
		if err := s.storage.Upload(ctx, key, params.Avatar, params.AvatarSize, params.AvatarContentType); err != nil {
			s.logger.Error("User service: avatar upload failed",
				"user_id", userID,
				"error", err.Error())
			return model.User{}, fmt.Errorf("failed to upload avatar: %w", err)
		}
		url, err := s.storage.URL(ctx, key, uploadURLExpiry)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to resolve avatar url: %w", err)
		}
		update.Avatar = &url
	}

	user, err := s.userStore.Update(ctx, update)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierrors.NewErrUnknownSubject()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User service: profile updated", "user_id", userID)

	return user, nil
}

// DeleteMe removes the calling user's account and their stored avatar.
func (s *User) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUnknownSubject()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	err = s.userStore.Delete(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUnknownSubject()
	}
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	// Best effort: the account is gone, an orphaned avatar is not worth
	// failing the request over.
	if user.Avatar != "" {
		key := fmt.Sprintf("users/%s/avatar", userID)
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Error("User service: avatar cleanup failed",
				"user_id", userID,
				"error", err.Error())
		}
	}

	s.logger.Info("User service: account deleted", "user_id", userID)

	return nil
}
