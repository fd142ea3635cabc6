package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleServiceProvider Role = "service_provider"
	RoleAdmin           Role = "admin"
)

// ParseRole validates a role string against the closed set.
// Unknown roles are rejected, never silently accepted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCustomer, RoleServiceProvider, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// UserStore defines persistence operations for users.
// GetByEmailWithPassword is the only read that exposes the password hash.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, params UpdateUserParams) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// SetResetToken stores the digest of an outstanding reset secret and
	// its expiry, both in the same update.
	SetResetToken(ctx context.Context, id uuid.UUID, digest string, expiry time.Time) error

	// ClearResetToken removes the outstanding reset digest and expiry.
	ClearResetToken(ctx context.Context, id uuid.UUID) error

	// ConsumeResetToken atomically matches an unconsumed, unexpired reset
	// digest, clears it, and installs the new password hash. Returns
	// ErrNotFound when no row matches, which covers wrong, expired and
	// already-consumed secrets alike.
	ConsumeResetToken(ctx context.Context, digest string, now time.Time, newHash string, changedAt time.Time) (User, error)
}

// User represents a stored user with credential material.
// PasswordHash is populated only by GetByEmailWithPassword.
type User struct {
	ID                uuid.UUID  `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone,omitempty"`
	Avatar            string     `json:"avatar,omitempty"`
	Role              Role       `json:"role"`
	Active            bool       `json:"active"`
	PasswordHash      string     `json:"-"`
	PasswordChangedAt *time.Time `json:"-"`
	ResetTokenDigest  *string    `json:"-"`
	ResetTokenExpiry  *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PasswordChangedAfter reports whether the password was changed after the
// given instant. Comparison is at whole-second granularity to match JWT
// issued-at claims.
func (u User) PasswordChangedAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > t.Unix()
}

// UpdateUserParams carries profile fields for a partial update.
// Nil pointers leave the stored value untouched. Credential and reset
// fields are deliberately absent; those mutate through dedicated store
// operations only.
type UpdateUserParams struct {
	ID     uuid.UUID
	Name   *string
	Email  *string
	Phone  *string
	Avatar *string
	Active *bool
}
