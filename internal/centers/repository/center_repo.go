package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifelink-health/donation-backend/internal/apperr"
	"github.com/lifelink-health/donation-backend/internal/centers/domain"
)

type CenterRepository struct {
	db *pgxpool.Pool
}

func NewCenterRepository(db *pgxpool.Pool) *CenterRepository {
	return &CenterRepository{db: db}
}

const centerColumns = `
	c.id, c.name, c.address, c.contact_number, c.email, c.description,
	c.operating_hours, c.latitude, c.longitude, c.specialized_in,
	c.created_at, c.updated_at,
	(SELECT count(*) FROM donation_slots s WHERE s.center_id = c.id) AS slot_count
`

type centerRow interface {
	Scan(dest ...any) error
}

func scanCenter(row centerRow) (*domain.DonationCenter, error) {
	var c domain.DonationCenter
	var types []string
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.ContactNumber, &c.Email, &c.Description,
		&c.OperatingHours, &c.Latitude, &c.Longitude, &types,
		&c.CreatedAt, &c.UpdatedAt, &c.SlotCount,
	)
	if err != nil {
		return nil, err
	}
	c.SpecializedIn = toDonationTypes(types)
	return &c, nil
}

func toDonationTypes(in []string) []domain.DonationType {
	out := make([]domain.DonationType, 0, len(in))
	for _, t := range in {
		out = append(out, domain.DonationType(t))
	}
	return out
}

func fromDonationTypes(in []domain.DonationType) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		out = append(out, string(t))
	}
	return out
}

// Create inserts the center and attaches the creator to the manager set in
// one transaction, so the manager set is never empty after creation.
func (r *CenterRepository) Create(ctx context.Context, creatorID string, req domain.CreateCenterRequest) (*domain.DonationCenter, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperr.Infra("begin tx", err)
	}
	defer tx.Rollback(ctx)

	const q = `
		INSERT INTO donation_centers
			(name, address, contact_number, email, description, operating_hours,
			 latitude, longitude, specialized_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	c := &domain.DonationCenter{
		Name:           req.Name,
		Address:        req.Address,
		ContactNumber:  req.ContactNumber,
		Email:          req.Email,
		Description:    req.Description,
		OperatingHours: req.OperatingHours,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		SpecializedIn:  req.SpecializedIn,
	}

	err = tx.QueryRow(ctx, q,
		req.Name, req.Address, req.ContactNumber, req.Email, req.Description,
		req.OperatingHours, req.Latitude, req.Longitude, fromDonationTypes(req.SpecializedIn),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, apperr.Infra("insert center", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO center_managers (center_id, user_id) VALUES ($1, $2)`,
		c.ID, creatorID,
	); err != nil {
		return nil, apperr.Infra("attach creator as manager", err)
	}

	managers, err := queryManagers(ctx, tx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Managers = managers

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Infra("commit tx", err)
	}

	return c, nil
}

// List returns one page of centers with slot counts, optionally restricted
// to a donation type, plus the exact total for pagination.
func (r *CenterRepository) List(ctx context.Context, page, limit int, donationType *domain.DonationType) ([]domain.DonationCenter, int, error) {
	var (
		total int
		err   error
	)
	offset := (page - 1) * limit

	if donationType != nil {
		err = r.db.QueryRow(ctx,
			`SELECT count(*) FROM donation_centers WHERE $1 = ANY(specialized_in)`,
			string(*donationType),
		).Scan(&total)
	} else {
		err = r.db.QueryRow(ctx, `SELECT count(*) FROM donation_centers`).Scan(&total)
	}
	if err != nil {
		return nil, 0, apperr.Infra("count centers", err)
	}

	var rows pgx.Rows
	if donationType != nil {
		rows, err = r.db.Query(ctx, `
			SELECT `+centerColumns+`
			FROM donation_centers c
			WHERE $1 = ANY(c.specialized_in)
			ORDER BY c.created_at DESC
			LIMIT $2 OFFSET $3`,
			string(*donationType), limit, offset)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+centerColumns+`
			FROM donation_centers c
			ORDER BY c.created_at DESC
			LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, 0, apperr.Infra("list centers", err)
	}
	defer rows.Close()

	out := make([]domain.DonationCenter, 0, limit)
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, 0, apperr.Infra("scan center", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Infra("iterate centers", err)
	}

	return out, total, nil
}

// GetByID returns the center with its manager identities and slot count.
func (r *CenterRepository) GetByID(ctx context.Context, id string) (*domain.DonationCenter, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+centerColumns+`
		FROM donation_centers c
		WHERE c.id = $1`, id)

	c, err := scanCenter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("donation center not found")
	}
	if err != nil {
		return nil, apperr.Infra("get center", err)
	}

	managers, err := queryManagers(ctx, r.db, c.ID)
	if err != nil {
		return nil, err
	}
	c.Managers = managers

	return c, nil
}

// Update patches the center in a single conditional statement: the manager
// membership predicate sits inside the UPDATE itself, so the permission
// check and the mutation hit the same snapshot. A manager removed
// concurrently cannot slip a write through.
func (r *CenterRepository) Update(ctx context.Context, actorID, centerID string, req domain.UpdateCenterRequest) (*domain.DonationCenter, error) {
	var types []string
	if req.SpecializedIn != nil {
		types = fromDonationTypes(req.SpecializedIn)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE donation_centers c SET
			name            = COALESCE($3, name),
			address         = COALESCE($4, address),
			contact_number  = COALESCE($5, contact_number),
			email           = COALESCE($6, email),
			description     = COALESCE($7, description),
			operating_hours = COALESCE($8, operating_hours),
			latitude        = COALESCE($9, latitude),
			longitude       = COALESCE($10, longitude),
			specialized_in  = COALESCE($11, specialized_in),
			updated_at      = now()
		WHERE c.id = $1
		  AND EXISTS (
			SELECT 1 FROM center_managers m
			WHERE m.center_id = $1 AND m.user_id = $2
		  )
		RETURNING `+centerColumns,
		centerID, actorID,
		req.Name, req.Address, req.ContactNumber, req.Email, req.Description,
		req.OperatingHours, req.Latitude, req.Longitude, types)

	c, err := scanCenter(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Forbidden("not authorized to update this center")
	}
	if err != nil {
		return nil, apperr.Infra("update center", err)
	}

	return c, nil
}

// Delete removes the center. Role gating (ADMIN only) happens above the
// store.
func (r *CenterRepository) Delete(ctx context.Context, centerID string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM donation_centers WHERE id = $1`, centerID)
	if err != nil {
		return apperr.Infra("delete center", err)
	}
	if ct.RowsAffected() == 0 {
		return apperr.NotFound("donation center not found")
	}
	return nil
}

// FindNearby applies the bounding-box filter: radius/111 degrees on both
// axes (111 km per degree of latitude; longitude is over-wide away from the
// equator, an accepted approximation). At most 10 results, no sorting.
func (r *CenterRepository) FindNearby(ctx context.Context, lat, lon, radiusKm float64) ([]domain.DonationCenter, error) {
	delta := radiusKm / 111.0

	rows, err := r.db.Query(ctx, `
		SELECT `+centerColumns+`
		FROM donation_centers c
		WHERE c.latitude  BETWEEN $1 AND $2
		  AND c.longitude BETWEEN $3 AND $4
		LIMIT 10`,
		lat-delta, lat+delta, lon-delta, lon+delta)
	if err != nil {
		return nil, apperr.Infra("find nearby centers", err)
	}
	defer rows.Close()

	out := make([]domain.DonationCenter, 0, 10)
	for rows.Next() {
		c, err := scanCenter(rows)
		if err != nil {
			return nil, apperr.Infra("scan center", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Infra("iterate centers", err)
	}

	return out, nil
}

// queryer is satisfied by both pgxpool.Pool and pgx.Tx.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func queryManagers(ctx context.Context, q queryer, centerID string) ([]domain.Manager, error) {
	rows, err := q.Query(ctx, `
		SELECT u.id, u.first_name, u.last_name
		FROM center_managers m
		JOIN users u ON u.id = m.user_id
		WHERE m.center_id = $1
		ORDER BY u.first_name, u.last_name`, centerID)
	if err != nil {
		return nil, apperr.Infra("query managers", err)
	}
	defer rows.Close()

	out := make([]domain.Manager, 0, 4)
	for rows.Next() {
		var m domain.Manager
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName); err != nil {
			return nil, apperr.Infra("scan manager", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Infra("iterate managers", err)
	}

	return out, nil
}
