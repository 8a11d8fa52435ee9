package auth

import (
	"github.com/lifelink-health/donation-backend/internal/apperr"
	"github.com/lifelink-health/donation-backend/internal/auth/domain"
)

// Operation identifiers gated by the policy table below.
const (
	OpCenterCreate  = "centers.create"
	OpCenterUpdate  = "centers.update"
	OpCenterDelete  = "centers.delete"
	OpSlotCreate    = "slots.create"
	OpUserPromote   = "users.promote"
	OpAssignManager = "users.assign_manager"
)

// Policy maps operations to the role sets allowed to perform them. Matching
// is exact set membership: ADMIN does not implicitly satisfy a
// CENTER_MANAGER requirement, every accepted role is listed.
var Policy = map[string][]domain.Role{
	OpCenterCreate:  {domain.RoleAdmin, domain.RoleCenterManager},
	OpCenterUpdate:  {domain.RoleAdmin, domain.RoleCenterManager},
	OpCenterDelete:  {domain.RoleAdmin},
	OpSlotCreate:    {domain.RoleAdmin, domain.RoleCenterManager},
	OpUserPromote:   {domain.RoleAdmin},
	OpAssignManager: {domain.RoleAdmin},
}

// Authorize evaluates a required-role set against the principal. An empty set
// allows unconditionally; a nil principal is the anonymous state.
func Authorize(required []domain.Role, p *domain.Principal) error {
	if len(required) == 0 {
		return nil
	}
	if p == nil {
		return apperr.Unauthenticated("authentication required")
	}
	for _, role := range required {
		if p.Role == role {
			return nil
		}
	}
	return apperr.Forbidden("insufficient permissions")
}

// RolesFor looks up the policy table. Unknown operations get an empty set,
// which Authorize treats as role-agnostic.
func RolesFor(op string) []domain.Role {
	return Policy[op]
}
