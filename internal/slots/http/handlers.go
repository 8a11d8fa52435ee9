package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	httpapi "github.com/lifelink-health/donation-backend/internal/api/http"
	"github.com/lifelink-health/donation-backend/internal/auth"
	authmw "github.com/lifelink-health/donation-backend/internal/auth/middleware"
	centersdomain "github.com/lifelink-health/donation-backend/internal/centers/domain"
	"github.com/lifelink-health/donation-backend/internal/slots/domain"
	"github.com/lifelink-health/donation-backend/internal/slots/service"
)

// Handler bundles the dependencies for slot HTTP endpoints.
type Handler struct {
	svc *service.SlotService
}

func New(svc *service.SlotService) *Handler {
	return &Handler{svc: svc}
}

type createSlotReq struct {
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	DonationType []string  `json:"donationType"`
	TotalSlots   int       `json:"totalSlots"`
}

func (h *Handler) createSlot(c *gin.Context) {
	var req createSlotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	types := make([]centersdomain.DonationType, 0, len(req.DonationType))
	for _, t := range req.DonationType {
		types = append(types, centersdomain.DonationType(t))
	}

	slot, err := h.svc.CreateSlot(c.Request.Context(), auth.PrincipalFrom(c), c.Param("id"), domain.CreateSlotRequest{
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DonationTypes: types,
		TotalSlots:    req.TotalSlots,
	})
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "slot": slot})
}

func (h *Handler) listSlots(c *gin.Context) {
	page, limit, err := httpapi.Pagination(c)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	var donationType *centersdomain.DonationType
	if raw := c.Query("donationType"); raw != "" {
		t := centersdomain.DonationType(raw)
		donationType = &t
	}

	result, err := h.svc.ListSlots(c.Request.Context(), c.Param("id"), page, limit, donationType)
	if err != nil {
		httpapi.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterCenterSubroutes attaches the slot routes under a center route
// group, mirroring the /:id/slots nesting.
func (h *Handler) RegisterCenterSubroutes(rg *gin.RouterGroup) {
	rg.POST("/:id/slots", authmw.RequireRoles(auth.OpSlotCreate), h.createSlot)
	rg.GET("/:id/slots", authmw.RequireAuth(), h.listSlots)
}
