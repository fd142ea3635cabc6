package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/truckhire/truckhire-server/internal/model"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	u := uuid.New()

	tok, err := j.Generate(u)
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	require.Equal(t, u, claims.UserID)
	require.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", -time.Minute)
	u := uuid.New()

	tok, err := j.Generate(u)
	require.NoError(t, err)

	_, err = j.Parse(tok)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	u := uuid.New()

	tok, err := NewJWT("secret", time.Hour).Generate(u)
	require.NoError(t, err)

	_, err = NewJWT("other", time.Hour).Parse(tok)
	require.ErrorIs(t, err, model.ErrTokenInvalid)
}

func TestJWT_Malformed(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	_, err := j.Parse("not.a.token")
	require.ErrorIs(t, err, model.ErrTokenInvalid)
}
