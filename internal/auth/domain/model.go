package domain

// Role is the access level carried by a user record and by every issued token.
type Role string

const (
	RoleDonor         Role = "DONOR"
	RoleCenterManager Role = "CENTER_MANAGER"
	RoleAdmin         Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleCenterManager, RoleAdmin:
		return true
	}
	return false
}

// Principal is the verified identity attached to a request for its duration.
// It is derived from a token, never persisted, and discarded with the request.
type Principal struct {
	ID    string
	Email string
	Role  Role
}
