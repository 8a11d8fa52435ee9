package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/lifelink-health/donation-backend/internal/auth/domain"
)

const ctxPrincipal = "auth_principal"

// SetPrincipal attaches the verified identity to the request context.
// Called by the cookie middleware only.
func SetPrincipal(c *gin.Context, p *domain.Principal) {
	c.Set(ctxPrincipal, p)
}

// PrincipalFrom returns the request principal, or nil for anonymous requests.
func PrincipalFrom(c *gin.Context) *domain.Principal {
	v, ok := c.Get(ctxPrincipal)
	if !ok {
		return nil
	}
	p, ok := v.(*domain.Principal)
	if !ok {
		return nil
	}
	return p
}
