package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lifelink-health/donation-backend/internal/apperr"
	"github.com/lifelink-health/donation-backend/internal/auth/domain"
)

func TestAuthorize(t *testing.T) {
	donor := &domain.Principal{ID: "u1", Role: domain.RoleDonor}
	admin := &domain.Principal{ID: "u2", Role: domain.RoleAdmin}

	t.Run("empty required set allows anyone", func(t *testing.T) {
		assert.NoError(t, Authorize(nil, nil))
		assert.NoError(t, Authorize(nil, donor))
	})

	t.Run("anonymous is denied when roles are required", func(t *testing.T) {
		err := Authorize([]domain.Role{domain.RoleAdmin}, nil)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		err := Authorize([]domain.Role{domain.RoleAdmin}, donor)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("matching role is allowed", func(t *testing.T) {
		assert.NoError(t, Authorize([]domain.Role{domain.RoleAdmin}, admin))
		assert.NoError(t, Authorize([]domain.Role{domain.RoleAdmin, domain.RoleCenterManager}, admin))
	})

	t.Run("no role hierarchy", func(t *testing.T) {
		// ADMIN does not implicitly satisfy a CENTER_MANAGER-only requirement.
		err := Authorize([]domain.Role{domain.RoleCenterManager}, admin)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
}

func TestPolicyTable(t *testing.T) {
	assert.ElementsMatch(t, []domain.Role{domain.RoleAdmin, domain.RoleCenterManager}, RolesFor(OpCenterCreate))
	assert.ElementsMatch(t, []domain.Role{domain.RoleAdmin}, RolesFor(OpCenterDelete))
	assert.ElementsMatch(t, []domain.Role{domain.RoleAdmin}, RolesFor(OpUserPromote))
	assert.Empty(t, RolesFor("unknown.operation"))
}
