package domain

import (
	"time"

	authdomain "github.com/lifelink-health/donation-backend/internal/auth/domain"
)

// User is a registered account. PasswordHash never leaves the repository
// layer except for sign-in verification.
type User struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	PasswordHash string               `json:"-"`
	FirstName    string               `json:"firstName"`
	LastName     string               `json:"lastName"`
	Role         authdomain.Role      `json:"role"`
	PhoneNumber  *string              `json:"phoneNumber,omitempty"`
	Address      *string              `json:"address,omitempty"`
	Latitude     *float64             `json:"latitude,omitempty"`
	Longitude    *float64             `json:"longitude,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// CreateUserRequest is the validated signup payload handed to the repository.
type CreateUserRequest struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         authdomain.Role
	PhoneNumber  *string
	Address      *string
	Latitude     *float64
	Longitude    *float64
}

// PublicUser is the credential-free projection returned by the API.
type PublicUser struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Role      authdomain.Role `json:"role"`
}

// Public strips everything a client must not see.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
