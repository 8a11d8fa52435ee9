package service

import (
	"context"
	"strings"

	"github.com/lifelink-health/donation-backend/internal/apperr"
	authdomain "github.com/lifelink-health/donation-backend/internal/auth/domain"
	centersdomain "github.com/lifelink-health/donation-backend/internal/centers/domain"
	"github.com/lifelink-health/donation-backend/internal/slots/domain"
)

// Store is the persistence surface the service needs. Implemented by
// repository.SlotRepository.
type Store interface {
	Create(ctx context.Context, actorID, centerID string, req domain.CreateSlotRequest) (*domain.DonationSlot, error)
	ListByCenter(ctx context.Context, centerID string, page, limit int, donationType *centersdomain.DonationType) ([]domain.DonationSlot, int, error)
	GetByID(ctx context.Context, id string) (*domain.DonationSlot, error)
	Book(ctx context.Context, slotID string) (*domain.DonationSlot, error)
	Release(ctx context.Context, slotID string) (*domain.DonationSlot, error)
	CloseExpired(ctx context.Context) (int64, error)
}

// SlotService owns slot creation, listing and the capacity-bounded booking
// primitives layered on the store's conditional updates.
type SlotService struct {
	store Store
}

func NewSlotService(store Store) *SlotService {
	return &SlotService{store: store}
}

// CreateSlot creates a slot for the center. Ownership is enforced by the
// store's conditional insert; this layer validates the window and capacity.
func (s *SlotService) CreateSlot(ctx context.Context, actor *authdomain.Principal, centerID string, req domain.CreateSlotRequest) (*domain.DonationSlot, error) {
	if actor == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	if strings.TrimSpace(centerID) == "" {
		return nil, apperr.Validation("center id is required")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, apperr.Validation("start and end time are required")
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, apperr.Validation("start time must be before end time")
	}
	if req.TotalSlots <= 0 {
		return nil, apperr.Validation("total slots must be positive")
	}
	for _, t := range req.DonationTypes {
		if !t.Valid() {
			return nil, apperr.Validation("unknown donation type: " + string(t))
		}
	}

	return s.store.Create(ctx, actor.ID, centerID, req)
}

// ListSlots returns one page of the center's slots, earliest first.
func (s *SlotService) ListSlots(ctx context.Context, centerID string, page, limit int, donationType *centersdomain.DonationType) (*domain.SlotPage, error) {
	if page < 1 || limit < 1 {
		return nil, apperr.Validation("page and limit must be positive")
	}
	if donationType != nil && !donationType.Valid() {
		return nil, apperr.Validation("unknown donation type: " + string(*donationType))
	}

	slots, total, err := s.store.ListByCenter(ctx, centerID, page, limit, donationType)
	if err != nil {
		return nil, err
	}

	return &domain.SlotPage{
		Slots:    slots,
		Total:    total,
		Page:     page,
		LastPage: lastPage(total, limit),
	}, nil
}

// Book claims one unit. The capacity invariant lives in the store's
// conditional increment; a refused increment surfaces as CapacityExceeded.
func (s *SlotService) Book(ctx context.Context, slotID string) (*domain.DonationSlot, error) {
	return s.store.Book(ctx, slotID)
}

// Release returns one unit.
func (s *SlotService) Release(ctx context.Context, slotID string) (*domain.DonationSlot, error) {
	return s.store.Release(ctx, slotID)
}

// CloseExpired retires slots whose end time has passed. Called by the cron
// closer.
func (s *SlotService) CloseExpired(ctx context.Context) (int64, error) {
	return s.store.CloseExpired(ctx)
}

func lastPage(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
