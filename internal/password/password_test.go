package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_Roundtrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("NewPass123")
	require.NoError(t, err)
	require.NotEqual(t, "NewPass123", hash)

	assert.True(t, h.Verify("NewPass123", hash))
	assert.False(t, h.Verify("WrongPass", hash))
}

func TestHasher_EmptyPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHasher_UniqueSalts(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("NewPass123")
	require.NoError(t, err)
	second, err := h.Hash("NewPass123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	h := NewHasher(100)

	hash, err := h.Hash("NewPass123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
