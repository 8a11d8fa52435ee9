package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifelink-health/donation-backend/internal/auth/domain"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", "donation-backend")

	token, err := codec.Issue("user-1", "donor@example.com", domain.RoleDonor, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	p, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, "donor@example.com", p.Email)
	assert.Equal(t, domain.RoleDonor, p.Role)
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := NewTokenCodec("test-secret", "donation-backend")

	token, err := codec.Issue("user-1", "donor@example.com", domain.RoleDonor, -time.Minute)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := NewTokenCodec("secret-a", "donation-backend")
	verifier := NewTokenCodec("secret-b", "donation-backend")

	token, err := issuer.Issue("user-1", "donor@example.com", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_Garbage(t *testing.T) {
	codec := NewTokenCodec("test-secret", "donation-backend")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestTokenCodec_UnknownRoleRejected(t *testing.T) {
	codec := NewTokenCodec("test-secret", "donation-backend")

	token, err := codec.Issue("user-1", "donor@example.com", domain.Role("SUPERUSER"), time.Hour)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
