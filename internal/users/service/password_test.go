package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	// The stored credential never equals the plaintext.
	assert.NotEqual(t, "secret-password", hash)

	assert.NoError(t, CheckPassword(hash, "secret-password"))
	assert.Error(t, CheckPassword(hash, "wrong-password"))
}
