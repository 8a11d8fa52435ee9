package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lifelink-health/donation-backend/internal/auth"
	authmw "github.com/lifelink-health/donation-backend/internal/auth/middleware"
)

// Register attaches center routes to the given router group. Reads require
// an authenticated principal; mutations are additionally gated by the policy
// table. /nearby must be registered before /:id so gin does not shadow it.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", authmw.RequireRoles(auth.OpCenterCreate), h.create)
	rg.GET("", authmw.RequireAuth(), h.list)
	rg.GET("/nearby", authmw.RequireAuth(), h.findNearby)
	rg.GET("/:id", authmw.RequireAuth(), h.getByID)
	rg.PUT("/:id", authmw.RequireRoles(auth.OpCenterUpdate), h.update)
	rg.DELETE("/:id", authmw.RequireRoles(auth.OpCenterDelete), h.delete)
}
