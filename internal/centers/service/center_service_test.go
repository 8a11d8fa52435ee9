package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifelink-health/donation-backend/internal/apperr"
	authdomain "github.com/lifelink-health/donation-backend/internal/auth/domain"
	"github.com/lifelink-health/donation-backend/internal/centers/domain"
	usersdomain "github.com/lifelink-health/donation-backend/internal/users/domain"
)

type fakeCenterStore struct {
	centers  map[string]*domain.DonationCenter
	managers map[string]map[string]bool // center id -> set of manager ids
	order    []string
	nextID   int
}

func newFakeCenterStore() *fakeCenterStore {
	return &fakeCenterStore{
		centers:  make(map[string]*domain.DonationCenter),
		managers: make(map[string]map[string]bool),
	}
}

func (f *fakeCenterStore) Create(_ context.Context, creatorID string, req domain.CreateCenterRequest) (*domain.DonationCenter, error) {
	f.nextID++
	id := fmt.Sprintf("center-%d", f.nextID)
	c := &domain.DonationCenter{
		ID:            id,
		Name:          req.Name,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		SpecializedIn: req.SpecializedIn,
		Managers:      []domain.Manager{{ID: creatorID}},
	}
	f.centers[id] = c
	f.managers[id] = map[string]bool{creatorID: true}
	f.order = append(f.order, id)
	return c, nil
}

func (f *fakeCenterStore) List(_ context.Context, page, limit int, donationType *domain.DonationType) ([]domain.DonationCenter, int, error) {
	matched := make([]domain.DonationCenter, 0, len(f.order))
	for _, id := range f.order {
		c := f.centers[id]
		if donationType != nil && !hasType(c.SpecializedIn, *donationType) {
			continue
		}
		matched = append(matched, *c)
	}

	total := len(matched)
	start := (page - 1) * limit
	if start >= total {
		return []domain.DonationCenter{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func hasType(types []domain.DonationType, t domain.DonationType) bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

func (f *fakeCenterStore) GetByID(_ context.Context, id string) (*domain.DonationCenter, error) {
	if c, ok := f.centers[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("donation center not found")
}

func (f *fakeCenterStore) Update(_ context.Context, actorID, centerID string, req domain.UpdateCenterRequest) (*domain.DonationCenter, error) {
	// Mirrors the conditional UPDATE: membership is part of the predicate.
	if !f.managers[centerID][actorID] {
		return nil, apperr.Forbidden("not authorized to update this center")
	}
	c := f.centers[centerID]
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	return c, nil
}

func (f *fakeCenterStore) Delete(_ context.Context, centerID string) error {
	if _, ok := f.centers[centerID]; !ok {
		return apperr.NotFound("donation center not found")
	}
	delete(f.centers, centerID)
	delete(f.managers, centerID)
	return nil
}

func (f *fakeCenterStore) FindNearby(_ context.Context, lat, lon, radiusKm float64) ([]domain.DonationCenter, error) {
	delta := radiusKm / 111.0
	out := make([]domain.DonationCenter, 0)
	for _, id := range f.order {
		c, ok := f.centers[id]
		if !ok {
			continue
		}
		if c.Latitude >= lat-delta && c.Latitude <= lat+delta &&
			c.Longitude >= lon-delta && c.Longitude <= lon+delta {
			out = append(out, *c)
		}
		if len(out) == 10 {
			break
		}
	}
	return out, nil
}

type fakeUserLookup struct {
	ids map[string]bool
}

func (f *fakeUserLookup) GetByID(_ context.Context, id string) (*usersdomain.User, error) {
	if f.ids[id] {
		return &usersdomain.User{ID: id}, nil
	}
	return nil, apperr.NotFound("user not found")
}

func newTestCenterService(store Store) *CenterService {
	return NewCenterService(store, nil, &fakeUserLookup{ids: map[string]bool{"user-1": true}})
}

func validCreateReq() domain.CreateCenterRequest {
	return domain.CreateCenterRequest{
		Name:          "Central Blood Donation Center",
		Address:       "123 Donation St, Springfield, IL",
		ContactNumber: "123-456-7890",
		Latitude:      40.7128,
		Longitude:     -74.006,
		SpecializedIn: []domain.DonationType{domain.DonationBlood, domain.DonationPlasma},
	}
}

func TestCenterService_Create(t *testing.T) {
	manager := &authdomain.Principal{ID: "user-1", Role: authdomain.RoleCenterManager}
	donor := &authdomain.Principal{ID: "user-2", Role: authdomain.RoleDonor}

	t.Run("donor is forbidden", func(t *testing.T) {
		svc := newTestCenterService(newFakeCenterStore())
		_, err := svc.Create(context.Background(), donor, validCreateReq())
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		svc := newTestCenterService(newFakeCenterStore())
		_, err := svc.Create(context.Background(), nil, validCreateReq())
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	})

	t.Run("center manager creates and joins the manager set", func(t *testing.T) {
		svc := newTestCenterService(newFakeCenterStore())
		center, err := svc.Create(context.Background(), manager, validCreateReq())
		require.NoError(t, err)
		require.Len(t, center.Managers, 1)
		assert.Equal(t, "user-1", center.Managers[0].ID)
	})

	t.Run("rejects bad coordinates", func(t *testing.T) {
		svc := newTestCenterService(newFakeCenterStore())
		req := validCreateReq()
		req.Latitude = 120
		_, err := svc.Create(context.Background(), manager, req)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("rejects unknown donation types", func(t *testing.T) {
		svc := newTestCenterService(newFakeCenterStore())
		req := validCreateReq()
		req.SpecializedIn = []domain.DonationType{"GOLD"}
		_, err := svc.Create(context.Background(), manager, req)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestCenterService_Update(t *testing.T) {
	manager := &authdomain.Principal{ID: "user-1", Role: authdomain.RoleCenterManager}
	admin := &authdomain.Principal{ID: "admin-1", Role: authdomain.RoleAdmin}

	store := newFakeCenterStore()
	svc := newTestCenterService(store)

	center, err := svc.Create(context.Background(), manager, validCreateReq())
	require.NoError(t, err)

	t.Run("member manager can patch", func(t *testing.T) {
		name := "Renamed Center"
		updated, err := svc.Update(context.Background(), manager, center.ID, domain.UpdateCenterRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Renamed Center", updated.Name)
	})

	t.Run("admin outside the manager set is denied", func(t *testing.T) {
		// Deliberate privilege separation: membership, not role, gates update.
		name := "Hijacked"
		_, err := svc.Update(context.Background(), admin, center.ID, domain.UpdateCenterRequest{Name: &name})
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})
}

func TestCenterService_Delete(t *testing.T) {
	manager := &authdomain.Principal{ID: "user-1", Role: authdomain.RoleCenterManager}
	admin := &authdomain.Principal{ID: "admin-1", Role: authdomain.RoleAdmin}

	store := newFakeCenterStore()
	svc := newTestCenterService(store)

	center, err := svc.Create(context.Background(), manager, validCreateReq())
	require.NoError(t, err)

	t.Run("managing the center does not grant delete", func(t *testing.T) {
		err := svc.Delete(context.Background(), manager, center.ID)
		assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	})

	t.Run("admin deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), admin, center.ID))

		_, err := svc.GetByID(context.Background(), center.ID)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestCenterService_List(t *testing.T) {
	manager := &authdomain.Principal{ID: "user-1", Role: authdomain.RoleCenterManager}

	store := newFakeCenterStore()
	svc := newTestCenterService(store)

	for i := 0; i < 25; i++ {
		req := validCreateReq()
		req.Name = fmt.Sprintf("Center %02d", i)
		_, err := svc.Create(context.Background(), manager, req)
		require.NoError(t, err)
	}

	t.Run("computes lastPage as ceil(total/limit)", func(t *testing.T) {
		page, err := svc.List(context.Background(), 1, 10, nil)
		require.NoError(t, err)
		assert.Equal(t, 25, page.Total)
		assert.Equal(t, 3, page.LastPage)
		assert.Len(t, page.Centers, 10)
	})

	t.Run("page beyond the last is empty, not an error", func(t *testing.T) {
		page, err := svc.List(context.Background(), 9, 10, nil)
		require.NoError(t, err)
		assert.Empty(t, page.Centers)
		assert.Equal(t, 25, page.Total)
	})

	t.Run("empty result set has lastPage 0", func(t *testing.T) {
		empty := newTestCenterService(newFakeCenterStore())
		page, err := empty.List(context.Background(), 1, 10, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, page.LastPage)
		assert.Empty(t, page.Centers)
	})

	t.Run("rejects non-positive page or limit", func(t *testing.T) {
		_, err := svc.List(context.Background(), 0, 10, nil)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

		_, err = svc.List(context.Background(), 1, 0, nil)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestCenterService_FindNearby(t *testing.T) {
	manager := &authdomain.Principal{ID: "user-1", Role: authdomain.RoleCenterManager}

	store := newFakeCenterStore()
	svc := newTestCenterService(store)

	inBox := validCreateReq()
	inBox.Name = "Close Center"
	inBox.Latitude, inBox.Longitude = 40.7128, -74.006

	outOfBox := validCreateReq()
	outOfBox.Name = "Far Center"
	outOfBox.Latitude, outOfBox.Longitude = 48.8566, 2.3522

	_, err := svc.Create(context.Background(), manager, inBox)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), manager, outOfBox)
	require.NoError(t, err)

	t.Run("returns only centers inside the bounding box", func(t *testing.T) {
		centers, err := svc.FindNearby(context.Background(), "user-1", 40.7128, -74.006, 50)
		require.NoError(t, err)
		require.Len(t, centers, 1)
		assert.Equal(t, "Close Center", centers[0].Name)
	})

	t.Run("unknown actor is NotFound", func(t *testing.T) {
		_, err := svc.FindNearby(context.Background(), "ghost", 40.7128, -74.006, 50)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("rejects non-positive radius", func(t *testing.T) {
		_, err := svc.FindNearby(context.Background(), "user-1", 40.7128, -74.006, 0)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}
