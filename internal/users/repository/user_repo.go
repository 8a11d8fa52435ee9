package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/lifelink-health/donation-backend/internal/apperr"
	authdomain "github.com/lifelink-health/donation-backend/internal/auth/domain"
	"github.com/lifelink-health/donation-backend/internal/users/domain"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
	id, email, password_hash, first_name, last_name, role,
	phone_number, address, latitude, longitude, created_at, updated_at
`

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var phone, address sql.NullString
	var lat, lon sql.NullFloat64

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&phone,
		&address,
		&lat,
		&lon,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Infra("query user", err)
	}

	if phone.Valid {
		user.PhoneNumber = &phone.String
	}
	if address.Valid {
		user.Address = &address.String
	}
	if lat.Valid {
		user.Latitude = &lat.Float64
	}
	if lon.Valid {
		user.Longitude = &lon.Float64
	}

	return &user, nil
}

// GetByEmail looks a user up by exact (case-sensitive) email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// Create inserts a new user. A duplicate email surfaces as Conflict.
func (r *UserRepository) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, role,
		                   phone_number, address, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}

	err := r.db.QueryRowContext(ctx, query,
		req.Email,
		req.PasswordHash,
		req.FirstName,
		req.LastName,
		string(req.Role),
		req.PhoneNumber,
		req.Address,
		req.Latitude,
		req.Longitude,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, apperr.Conflict("user with this email already exists")
		}
		return nil, apperr.Infra("insert user", err)
	}

	return user, nil
}

// UpdateRole changes the only user field mutable after creation.
func (r *UserRepository) UpdateRole(ctx context.Context, userID string, role authdomain.Role) (*domain.User, error) {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return r.scanUser(r.db.QueryRowContext(ctx, query, userID, string(role)))
}

// AssignCenterManager promotes the user to CENTER_MANAGER and attaches them
// to the center's manager set in one transaction. The center existence check
// runs inside the same transaction as the writes.
func (r *UserRepository) AssignCenterManager(ctx context.Context, userID, centerID string) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperr.Infra("begin tx", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM donation_centers WHERE id = $1)`, centerID,
	).Scan(&exists); err != nil {
		return nil, apperr.Infra("check center", err)
	}
	if !exists {
		return nil, apperr.NotFound("donation center not found")
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		userID, string(authdomain.RoleCenterManager))

	var user domain.User
	var phone, address sql.NullString
	var lat, lon sql.NullFloat64
	err = row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.Role, &phone, &address, &lat, &lon, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Infra("promote user", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO center_managers (center_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		centerID, userID,
	); err != nil {
		return nil, apperr.Infra("attach manager", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperr.Infra("commit tx", err)
	}

	if phone.Valid {
		user.PhoneNumber = &phone.String
	}
	if address.Valid {
		user.Address = &address.String
	}
	if lat.Valid {
		user.Latitude = &lat.Float64
	}
	if lon.Valid {
		user.Longitude = &lon.Float64
	}

	return &user, nil
}
