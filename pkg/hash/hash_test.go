package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h := New(4)

	hashed, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)

	assert.True(t, h.Verify("s3cret", hashed))
	assert.False(t, h.Verify("wrong", hashed))
}

func TestHashEmptySecret(t *testing.T) {
	h := New(4)

	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestHashFreshSaltPerCall(t *testing.T) {
	h := New(4)

	first, err := h.Hash("s3cret")
	require.NoError(t, err)
	second, err := h.Hash("s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("s3cret", first))
	assert.True(t, h.Verify("s3cret", second))
}
