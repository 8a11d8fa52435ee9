package service

import (
	"context"
	"log"
	"strings"

	"github.com/lifelink-health/donation-backend/internal/apperr"
	authdomain "github.com/lifelink-health/donation-backend/internal/auth/domain"
	"github.com/lifelink-health/donation-backend/internal/centers/domain"
	usersdomain "github.com/lifelink-health/donation-backend/internal/users/domain"
)

// Store is the persistence surface the service needs. Implemented by
// repository.CenterRepository.
type Store interface {
	Create(ctx context.Context, creatorID string, req domain.CreateCenterRequest) (*domain.DonationCenter, error)
	List(ctx context.Context, page, limit int, donationType *domain.DonationType) ([]domain.DonationCenter, int, error)
	GetByID(ctx context.Context, id string) (*domain.DonationCenter, error)
	Update(ctx context.Context, actorID, centerID string, req domain.UpdateCenterRequest) (*domain.DonationCenter, error)
	Delete(ctx context.Context, centerID string) error
	FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.DonationCenter, error)
}

// Cache is the optional read cache in front of GetByID. Implemented by
// repository.CenterCache; may be nil.
type Cache interface {
	Get(ctx context.Context, id string) (*domain.DonationCenter, error)
	Set(ctx context.Context, center *domain.DonationCenter) error
	Invalidate(ctx context.Context, id string) error
}

// UserLookup is the slice of the users store needed here.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*usersdomain.User, error)
}

// CenterService owns the business rules around the center directory:
// role-gated creation, ownership-scoped mutation and proximity search.
type CenterService struct {
	store Store
	cache Cache
	users UserLookup
}

func NewCenterService(store Store, cache Cache, users UserLookup) *CenterService {
	return &CenterService{store: store, cache: cache, users: users}
}

func validateTypes(types []domain.DonationType) error {
	for _, t := range types {
		if !t.Valid() {
			return apperr.Validation("unknown donation type: " + string(t))
		}
	}
	return nil
}

func validateCoords(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return apperr.Validation("latitude must be between -90 and 90")
	}
	if lon < -180 || lon > 180 {
		return apperr.Validation("longitude must be between -180 and 180")
	}
	return nil
}

// Create persists a new center with the actor atomically added to its
// manager set. Only ADMIN and CENTER_MANAGER may create centers.
func (s *CenterService) Create(ctx context.Context, actor *authdomain.Principal, req domain.CreateCenterRequest) (*domain.DonationCenter, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	if actor.Role != authdomain.RoleAdmin && actor.Role != authdomain.RoleCenterManager {
		return nil, apperr.Forbidden("not authorized to create donation centers")
	}

	if len(strings.TrimSpace(req.Name)) < 3 {
		return nil, apperr.Validation("name must be at least 3 characters")
	}
	if len(strings.TrimSpace(req.Address)) < 5 {
		return nil, apperr.Validation("address must be at least 5 characters")
	}
	if len(strings.TrimSpace(req.ContactNumber)) < 10 {
		return nil, apperr.Validation("contact number must be at least 10 characters")
	}
	if err := validateCoords(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if err := validateTypes(req.SpecializedIn); err != nil {
		return nil, err
	}

	return s.store.Create(ctx, actor.ID, req)
}

// List returns one page of centers. Page and limit must already be positive;
// the handler rejects anything else as a client error.
func (s *CenterService) List(ctx context.Context, page, limit int, donationType *domain.DonationType) (*domain.CenterPage, error) {
	if page < 1 || limit < 1 {
		return nil, apperr.Validation("page and limit must be positive")
	}
	if donationType != nil && !donationType.Valid() {
		return nil, apperr.Validation("unknown donation type: " + string(*donationType))
	}

	centers, total, err := s.store.List(ctx, page, limit, donationType)
	if err != nil {
		return nil, err
	}

	return &domain.CenterPage{
		Centers:  centers,
		Total:    total,
		Page:     page,
		LastPage: lastPage(total, limit),
	}, nil
}

// GetByID serves reads through the cache when one is configured. Cache
// failures are logged and ignored; the store is the source of truth.
func (s *CenterService) GetByID(ctx context.Context, id string) (*domain.DonationCenter, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err != nil {
			log.Printf("center cache get failed for %s: %v", id, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	center, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, center); err != nil {
			log.Printf("center cache set failed for %s: %v", id, err)
		}
	}

	return center, nil
}

// Update lets only members of the center's manager set patch it. ADMIN role
// alone does not bypass membership here; that privilege separation is
// deliberate (delete is the admin-only path).
func (s *CenterService) Update(ctx context.Context, actor *authdomain.Principal, centerID string, req domain.UpdateCenterRequest) (*domain.DonationCenter, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}

	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		return nil, apperr.Validation("latitude must be between -90 and 90")
	}
	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		return nil, apperr.Validation("longitude must be between -180 and 180")
	}
	if err := validateTypes(req.SpecializedIn); err != nil {
		return nil, err
	}

	center, err := s.store.Update(ctx, actor.ID, centerID, req)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, centerID)
	return center, nil
}

// Delete requires the ADMIN role exactly; a manager of the center is denied.
func (s *CenterService) Delete(ctx context.Context, actor *authdomain.Principal, centerID string) error {
	if actor == nil {
		return apperr.Unauthenticated("authentication required")
	}
	if actor.Role != authdomain.RoleAdmin {
		return apperr.Forbidden("only admins can delete centers")
	}

	if err := s.store.Delete(ctx, centerID); err != nil {
		return err
	}

	s.invalidate(ctx, centerID)
	return nil
}

// FindNearby returns up to 10 centers inside the bounding box around the
// given point. The actor must be an existing user.
func (s *CenterService) FindNearby(ctx context.Context, actorID string, lat, lon, radiusKm float64) ([]domain.DonationCenter, error) {
	if _, err := s.users.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	if err := validateCoords(lat, lon); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, apperr.Validation("radius must be positive")
	}

	return s.store.FindNearby(ctx, lat, lon, radiusKm)
}

func (s *CenterService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		log.Printf("center cache invalidate failed for %s: %v", id, err)
	}
}

// lastPage is ceil(total/limit); an empty result set is defined as page 0.
func lastPage(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
