package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager issues and verifies stateless session tokens.
type TokenManager interface {
	Generate(userID uuid.UUID) (string, error)
	Parse(token string) (TokenClaims, error)
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	UserID   uuid.UUID
	IssuedAt time.Time
}
