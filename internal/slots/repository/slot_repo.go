package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifelink-health/donation-backend/internal/apperr"
	centersdomain "github.com/lifelink-health/donation-backend/internal/centers/domain"
	"github.com/lifelink-health/donation-backend/internal/slots/domain"
)

type SlotRepository struct {
	db *pgxpool.Pool
}

func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{db: db}
}

const slotColumns = `
	id, center_id, start_time, end_time, donation_types,
	total_slots, booked_slots, status, created_at, updated_at
`

type slotRow interface {
	Scan(dest ...any) error
}

func scanSlot(row slotRow) (*domain.DonationSlot, error) {
	var s domain.DonationSlot
	var types []string
	err := row.Scan(
		&s.ID, &s.CenterID, &s.StartTime, &s.EndTime, &types,
		&s.TotalSlots, &s.BookedSlots, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.DonationTypes = make([]centersdomain.DonationType, 0, len(types))
	for _, t := range types {
		s.DonationTypes = append(s.DonationTypes, centersdomain.DonationType(t))
	}
	return &s, nil
}

// Create inserts a slot for the center, but only when the actor is in the
// center's manager set: the ownership predicate is part of the INSERT's
// source query, so the permission check and the write share one snapshot.
func (r *SlotRepository) Create(ctx context.Context, actorID, centerID string, req domain.CreateSlotRequest) (*domain.DonationSlot, error) {
	types := make([]string, 0, len(req.DonationTypes))
	for _, t := range req.DonationTypes {
		types = append(types, string(t))
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO donation_slots
			(center_id, start_time, end_time, donation_types, total_slots, booked_slots, status)
		SELECT $1, $3, $4, $5, $6, 0, 'AVAILABLE'
		WHERE EXISTS (
			SELECT 1 FROM center_managers m
			WHERE m.center_id = $1 AND m.user_id = $2
		)
		RETURNING `+slotColumns,
		centerID, actorID, req.StartTime, req.EndTime, types, req.TotalSlots)

	s, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.Forbidden("not authorized to create slots for this center")
	}
	if err != nil {
		return nil, apperr.Infra("insert slot", err)
	}

	return s, nil
}

// ListByCenter returns one page of the center's slots ordered by start time
// ascending. The ordering feeds "next available" views and must hold.
func (r *SlotRepository) ListByCenter(ctx context.Context, centerID string, page, limit int, donationType *centersdomain.DonationType) ([]domain.DonationSlot, int, error) {
	offset := (page - 1) * limit

	var (
		total int
		err   error
	)
	if donationType != nil {
		err = r.db.QueryRow(ctx,
			`SELECT count(*) FROM donation_slots WHERE center_id = $1 AND $2 = ANY(donation_types)`,
			centerID, string(*donationType),
		).Scan(&total)
	} else {
		err = r.db.QueryRow(ctx,
			`SELECT count(*) FROM donation_slots WHERE center_id = $1`, centerID,
		).Scan(&total)
	}
	if err != nil {
		return nil, 0, apperr.Infra("count slots", err)
	}

	var rows pgx.Rows
	if donationType != nil {
		rows, err = r.db.Query(ctx, `
			SELECT `+slotColumns+`
			FROM donation_slots
			WHERE center_id = $1 AND $2 = ANY(donation_types)
			ORDER BY start_time ASC
			LIMIT $3 OFFSET $4`,
			centerID, string(*donationType), limit, offset)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+slotColumns+`
			FROM donation_slots
			WHERE center_id = $1
			ORDER BY start_time ASC
			LIMIT $2 OFFSET $3`,
			centerID, limit, offset)
	}
	if err != nil {
		return nil, 0, apperr.Infra("list slots", err)
	}
	defer rows.Close()

	out := make([]domain.DonationSlot, 0, limit)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, 0, apperr.Infra("scan slot", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Infra("iterate slots", err)
	}

	return out, total, nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id string) (*domain.DonationSlot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+slotColumns+` FROM donation_slots WHERE id = $1`, id)

	s, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("donation slot not found")
	}
	if err != nil {
		return nil, apperr.Infra("get slot", err)
	}

	return s, nil
}

// Book claims one unit of the slot with a conditional atomic increment: the
// guard booked_slots < total_slots sits inside the UPDATE, so two concurrent
// bookings of the last unit cannot both succeed. Status flips to FULL in the
// same statement exactly when the increment reaches capacity.
func (r *SlotRepository) Book(ctx context.Context, slotID string) (*domain.DonationSlot, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE donation_slots SET
			booked_slots = booked_slots + 1,
			status = CASE WHEN booked_slots + 1 >= total_slots THEN 'FULL' ELSE status END,
			updated_at = now()
		WHERE id = $1
		  AND status <> 'CLOSED'
		  AND booked_slots < total_slots
		RETURNING `+slotColumns,
		slotID)

	s, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the slot is gone or the conditional increment refused.
		if _, getErr := r.GetByID(ctx, slotID); getErr != nil {
			return nil, getErr
		}
		return nil, apperr.CapacityExceeded("slot has no remaining capacity")
	}
	if err != nil {
		return nil, apperr.Infra("book slot", err)
	}

	return s, nil
}

// Release returns one unit, flipping FULL back to AVAILABLE in the same
// statement. The guard booked_slots > 0 keeps the count non-negative.
func (r *SlotRepository) Release(ctx context.Context, slotID string) (*domain.DonationSlot, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE donation_slots SET
			booked_slots = booked_slots - 1,
			status = CASE WHEN status = 'FULL' THEN 'AVAILABLE' ELSE status END,
			updated_at = now()
		WHERE id = $1
		  AND booked_slots > 0
		RETURNING `+slotColumns,
		slotID)

	s, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, slotID); getErr != nil {
			return nil, getErr
		}
		return nil, apperr.Validation("slot has no bookings to release")
	}
	if err != nil {
		return nil, apperr.Infra("release slot", err)
	}

	return s, nil
}

// CloseExpired retires every slot whose window has passed. Returns the
// number of slots closed.
func (r *SlotRepository) CloseExpired(ctx context.Context) (int64, error) {
	ct, err := r.db.Exec(ctx, `
		UPDATE donation_slots
		SET status = 'CLOSED', updated_at = now()
		WHERE end_time < now() AND status <> 'CLOSED'`)
	if err != nil {
		return 0, apperr.Infra("close expired slots", err)
	}
	return ct.RowsAffected(), nil
}
