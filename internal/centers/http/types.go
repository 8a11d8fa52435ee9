package http

import (
	"github.com/lifelink-health/donation-backend/internal/centers/service"
)

// Handler bundles the dependencies for donation center HTTP endpoints.
type Handler struct {
	svc *service.CenterService
}

func New(svc *service.CenterService) *Handler {
	return &Handler{svc: svc}
}

type createCenterReq struct {
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	ContactNumber  string   `json:"contactNumber"`
	Email          *string  `json:"email"`
	Description    *string  `json:"description"`
	OperatingHours *string  `json:"operatingHours"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	SpecializedIn  []string `json:"specializedIn"`
}

type updateCenterReq struct {
	Name           *string  `json:"name"`
	Address        *string  `json:"address"`
	ContactNumber  *string  `json:"contactNumber"`
	Email          *string  `json:"email"`
	Description    *string  `json:"description"`
	OperatingHours *string  `json:"operatingHours"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	SpecializedIn  []string `json:"specializedIn"`
}
