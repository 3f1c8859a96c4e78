package auth_test

import (
	"strings"
	"testing"

	"github.com/pontetech/mission-control/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("Secure123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secure123", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, hasher.Verify("Secure123", hash))
	assert.False(t, hasher.Verify("Secure124", hash))
	assert.False(t, hasher.Verify("Secure123", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("Secure123", ""))

	second, err := hasher.Hash("Secure123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, second, "hashes should be salted")
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	hasher := auth.NewBcryptHasher(1)

	hash, err := hasher.Hash("Secure123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_TooLong(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	_, err := hasher.Hash(strings.Repeat("A1a", 25))
	assert.Error(t, err)
}
