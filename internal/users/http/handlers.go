package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/lifelink-health/donation-backend/internal/api/http"
	authdomain "github.com/lifelink-health/donation-backend/internal/auth/domain"
	authmw "github.com/lifelink-health/donation-backend/internal/auth/middleware"
	"github.com/lifelink-health/donation-backend/internal/users/service"
)

func (h *Handler) signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	user, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        authdomain.Role(req.Role),
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "user": user})
}

func (h *Handler) signin(c *gin.Context) {
	var req signinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	ttl := h.cookieTTL
	token, user, err := h.svc.SignIn(c.Request.Context(), req.Email, req.Password, ttl)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authmw.CookieName, token, int(ttl.Seconds()), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Sign-in successful", "user": user})
}

func (h *Handler) assignCenterManager(c *gin.Context) {
	userID := c.Param("userId")
	centerID := c.Param("centerId")

	user, err := h.svc.AssignCenterManager(c.Request.Context(), userID, centerID)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}

func (h *Handler) promoteToAdmin(c *gin.Context) {
	userID := c.Param("userId")

	user, err := h.svc.PromoteToAdmin(c.Request.Context(), userID)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": user})
}
