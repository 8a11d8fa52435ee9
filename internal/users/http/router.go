package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lifelink-health/donation-backend/internal/auth"
	authmw "github.com/lifelink-health/donation-backend/internal/auth/middleware"
)

// Register attaches user routes to the given router group. Signup and signin
// are public; the administrative operations are gated by the policy table.
func (h *Handler) Register(rg *gin.RouterGroup, signinLimiter gin.HandlerFunc) {
	rg.POST("/signup", h.signup)
	rg.POST("/signin", signinLimiter, h.signin)

	rg.POST("/:userId/assign-center/:centerId", authmw.RequireRoles(auth.OpAssignManager), h.assignCenterManager)
	rg.PATCH("/:userId/promote-to-admin", authmw.RequireRoles(auth.OpUserPromote), h.promoteToAdmin)
}
