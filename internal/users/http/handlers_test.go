package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifelink-health/donation-backend/internal/apperr"
	"github.com/lifelink-health/donation-backend/internal/auth"
	authdomain "github.com/lifelink-health/donation-backend/internal/auth/domain"
	authmw "github.com/lifelink-health/donation-backend/internal/auth/middleware"
	"github.com/lifelink-health/donation-backend/internal/users/domain"
	"github.com/lifelink-health/donation-backend/internal/users/service"
)

type memUserStore struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	nextID  int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (m *memUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user not found")
}

func (m *memUserStore) Create(_ context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if _, ok := m.byEmail[req.Email]; ok {
		return nil, apperr.Conflict("user with this email already exists")
	}
	m.nextID++
	u := &domain.User{
		ID:           fmt.Sprintf("user-%d", m.nextID),
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUserStore) UpdateRole(_ context.Context, userID string, role authdomain.Role) (*domain.User, error) {
	u, ok := m.byID[userID]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	u.Role = role
	return u, nil
}

func (m *memUserStore) AssignCenterManager(_ context.Context, userID, _ string) (*domain.User, error) {
	return m.UpdateRole(context.Background(), userID, authdomain.RoleCenterManager)
}

func setupUserRouter(t *testing.T) (*gin.Engine, *auth.TokenCodec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec := auth.NewTokenCodec("test-secret", "test")
	svc := service.NewUserService(newMemUserStore(), codec)

	r := gin.New()
	rg := r.Group("/users")
	noLimit := func(c *gin.Context) { c.Next() }
	New(svc, false, 7*24*time.Hour).Register(rg, noLimit)
	return r, codec
}

func signupBody(email string) string {
	return fmt.Sprintf(
		`{"email":%q,"password":"password123","firstName":"Jane","lastName":"Doe"}`, email)
}

func TestSigninSetsAuthCookie(t *testing.T) {
	r, codec := setupUserRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(signupBody("donor@example.com")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/users/signin",
		strings.NewReader(`{"email":"donor@example.com","password":"password123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, authmw.CookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), c.MaxAge)

	p, err := codec.Verify(c.Value)
	require.NoError(t, err)
	assert.Equal(t, "donor@example.com", p.Email)
	assert.Equal(t, authdomain.RoleDonor, p.Role)
}

func TestSigninRejectsBadCredentials(t *testing.T) {
	r, _ := setupUserRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(signupBody("donor@example.com")))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/users/signin",
		strings.NewReader(`{"email":"donor@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies(), "no cookie on failed sign-in")
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	r, _ := setupUserRouter(t)

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(signupBody("donor@example.com")))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "attempt %d", i+1)
	}
}
