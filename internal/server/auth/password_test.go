package auth

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	d1, err := h.Hash("pw")
	require.NoError(t, err)
	d2, err := h.Hash("pw")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2, "each hash must use a fresh salt")
	assert.NotContains(t, d1, "pw")
	assert.True(t, h.Verify("pw", d1))
	assert.True(t, h.Verify("pw", d2))
	assert.False(t, h.Verify("PW", d1))
	assert.False(t, h.Verify("pw", "not-a-digest"))
	assert.False(t, h.Verify("pw", ""))
}

func TestBcryptHasher_PasswordLength(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 72))
	require.NoError(t, err)

	_, err = h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, common.ErrValidation)
}
