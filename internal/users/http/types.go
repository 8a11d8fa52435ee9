package http

import (
	"time"

	"github.com/lifelink-health/donation-backend/internal/users/service"
)

// Handler bundles the dependencies for user HTTP endpoints.
type Handler struct {
	svc          *service.UserService
	secureCookie bool
	cookieTTL    time.Duration
}

func New(svc *service.UserService, secureCookie bool, cookieTTL time.Duration) *Handler {
	return &Handler{svc: svc, secureCookie: secureCookie, cookieTTL: cookieTTL}
}

type signupReq struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Role        string   `json:"role"`
	PhoneNumber *string  `json:"phoneNumber"`
	Address     *string  `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type signinReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
