package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pontetech/mission-control/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAll(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	var out bytes.Buffer

	failed := hashAll(&out, hasher, []string{"PonteTech123", "weak"}, true)

	assert.Equal(t, 1, failed)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	hash := strings.TrimPrefix(lines[0], "#1: ")
	assert.True(t, hasher.Verify("PonteTech123", hash))
	assert.True(t, strings.HasPrefix(lines[1], "#2: Password must be at least 8"))
}

func TestHashAll_SkipPolicy(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	var out bytes.Buffer

	failed := hashAll(&out, hasher, []string{"weak"}, false)

	assert.Zero(t, failed)
	assert.True(t, hasher.Verify("weak", strings.TrimSpace(strings.TrimPrefix(out.String(), "#1: "))))
}
