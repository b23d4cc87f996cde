package password

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestHashAndCheck(t *testing.T) {
	t.Parallel()

	hash, err := Hash("secret123")
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, Check(hash, "secret123"))
	assert.False(t, Check(hash, "wrong"))
}

func TestHashIsSalted(t *testing.T) {
	t.Parallel()

	first, err := Hash("same-password")
	require.NoError(t, err)
	second, err := Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckEmptyHash(t *testing.T) {
	t.Parallel()

	assert.False(t, Check("", "anything"))
	assert.False(t, Check("not-a-bcrypt-hash", "anything"))
}

func TestHashRejectsLongPassword(t *testing.T) {
	t.Parallel()

	_, err := Hash(strings.Repeat("é", 40))
	require.ErrorIs(t, err, ErrTooLong)

	hash, err := Hash(strings.Repeat("a", MaxBytes))
	require.NoError(t, err)
	assert.True(t, Check(hash, strings.Repeat("a", MaxBytes)))
}
