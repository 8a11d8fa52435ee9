package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpapi "github.com/lifelink-health/donation-backend/internal/api/http"
	"github.com/lifelink-health/donation-backend/internal/auth"
	"github.com/lifelink-health/donation-backend/internal/centers/domain"
)

func toTypes(in []string) []domain.DonationType {
	if in == nil {
		return nil
	}
	out := make([]domain.DonationType, 0, len(in))
	for _, t := range in {
		out = append(out, domain.DonationType(t))
	}
	return out
}

func typeFilter(c *gin.Context) *domain.DonationType {
	raw := c.Query("donationType")
	if raw == "" {
		return nil
	}
	t := domain.DonationType(raw)
	return &t
}

func (h *Handler) create(c *gin.Context) {
	var req createCenterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	center, err := h.svc.Create(c.Request.Context(), auth.PrincipalFrom(c), domain.CreateCenterRequest{
		Name:           req.Name,
		Address:        req.Address,
		ContactNumber:  req.ContactNumber,
		Email:          req.Email,
		Description:    req.Description,
		OperatingHours: req.OperatingHours,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		SpecializedIn:  toTypes(req.SpecializedIn),
	})
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "center": center})
}

func (h *Handler) list(c *gin.Context) {
	page, limit, err := httpapi.Pagination(c)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	result, err := h.svc.List(c.Request.Context(), page, limit, typeFilter(c))
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) findNearby(c *gin.Context) {
	lat, err := httpapi.FloatQuery(c, "latitude")
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	lon, err := httpapi.FloatQuery(c, "longitude")
	if err != nil {
		httpapi.Error(c, err)
		return
	}
	radius, err := httpapi.FloatQueryDefault(c, "radius", 50)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	principal := auth.PrincipalFrom(c)
	centers, err := h.svc.FindNearby(c.Request.Context(), principal.ID, lat, lon, radius)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "centers": centers})
}

func (h *Handler) getByID(c *gin.Context) {
	center, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "center": center})
}

func (h *Handler) update(c *gin.Context) {
	var req updateCenterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	center, err := h.svc.Update(c.Request.Context(), auth.PrincipalFrom(c), c.Param("id"), domain.UpdateCenterRequest{
		Name:           req.Name,
		Address:        req.Address,
		ContactNumber:  req.ContactNumber,
		Email:          req.Email,
		Description:    req.Description,
		OperatingHours: req.OperatingHours,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		SpecializedIn:  toTypes(req.SpecializedIn),
	})
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "center": center})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.PrincipalFrom(c), c.Param("id")); err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
