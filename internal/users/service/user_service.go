package service

import (
	"context"
	"strings"
	"time"

	"github.com/lifelink-health/donation-backend/internal/apperr"
	"github.com/lifelink-health/donation-backend/internal/auth"
	authdomain "github.com/lifelink-health/donation-backend/internal/auth/domain"
	"github.com/lifelink-health/donation-backend/internal/users/domain"
)

// Store is the persistence surface the service needs. Implemented by
// repository.UserRepository.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error)
	UpdateRole(ctx context.Context, userID string, role authdomain.Role) (*domain.User, error)
	AssignCenterManager(ctx context.Context, userID, centerID string) (*domain.User, error)
}

// UserService handles signup, sign-in and administrative role changes.
type UserService struct {
	store Store
	codec *auth.TokenCodec
}

func NewUserService(store Store, codec *auth.TokenCodec) *UserService {
	return &UserService{store: store, codec: codec}
}

// SignupInput carries validated signup fields. Role defaults to DONOR.
type SignupInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        authdomain.Role
	PhoneNumber *string
	Address     *string
	Latitude    *float64
	Longitude   *float64
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (domain.PublicUser, error) {
	if strings.TrimSpace(in.Email) == "" || !strings.Contains(in.Email, "@") {
		return domain.PublicUser{}, apperr.Validation("a valid email is required")
	}
	if len(in.Password) < 6 {
		return domain.PublicUser{}, apperr.Validation("password must be at least 6 characters")
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return domain.PublicUser{}, apperr.Validation("first and last name are required")
	}

	role := in.Role
	if role == "" {
		role = authdomain.RoleDonor
	}
	if !role.Valid() {
		return domain.PublicUser{}, apperr.Validation("unknown role")
	}

	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		return domain.PublicUser{}, apperr.Validation("latitude out of range")
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		return domain.PublicUser{}, apperr.Validation("longitude out of range")
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return domain.PublicUser{}, apperr.Infra("hash password", err)
	}

	user, err := s.store.Create(ctx, domain.CreateUserRequest{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
	})
	if err != nil {
		return domain.PublicUser{}, err
	}

	return user.Public(), nil
}

// SignIn verifies credentials and issues a token for the given TTL. Unknown
// email and wrong password produce the same error so the response does not
// leak which accounts exist.
func (s *UserService) SignIn(ctx context.Context, email, password string, ttl time.Duration) (string, domain.PublicUser, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return "", domain.PublicUser{}, apperr.Unauthenticated("invalid credentials")
		}
		return "", domain.PublicUser{}, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", domain.PublicUser{}, apperr.Unauthenticated("invalid credentials")
	}

	token, err := s.codec.Issue(user.ID, user.Email, user.Role, ttl)
	if err != nil {
		return "", domain.PublicUser{}, apperr.Infra("issue token", err)
	}

	return token, user.Public(), nil
}

// PromoteToAdmin sets the user's role to ADMIN. Route access is gated by the
// policy table; this only touches the record.
func (s *UserService) PromoteToAdmin(ctx context.Context, userID string) (domain.PublicUser, error) {
	user, err := s.store.UpdateRole(ctx, userID, authdomain.RoleAdmin)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}

// AssignCenterManager promotes a user to CENTER_MANAGER and adds them to the
// center's manager set atomically.
func (s *UserService) AssignCenterManager(ctx context.Context, userID, centerID string) (domain.PublicUser, error) {
	user, err := s.store.AssignCenterManager(ctx, userID, centerID)
	if err != nil {
		return domain.PublicUser{}, err
	}
	return user.Public(), nil
}
