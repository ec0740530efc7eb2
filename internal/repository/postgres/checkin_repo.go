package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventpass/internal/domain"
)

type checkInRepository struct {
	DB *sql.DB
}

func NewCheckInRepository(db *sql.DB) domain.CheckInRepository {
	return &checkInRepository{
		DB: db,
	}
}

func (r *checkInRepository) Create(ctx context.Context, c *domain.CheckIn) error {
	query := `
		INSERT INTO check_ins (attendee_id, created_at)
		VALUES ($1, $2)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, c.AttendeeID, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == "check_ins_attendee_id_key" {
			return domain.ErrAlreadyCheckedIn
		}
		return err
	}
	return nil
}

func (r *checkInRepository) GetByAttendeeID(ctx context.Context, attendeeID int64) (*domain.CheckIn, error) {
	query := `
		SELECT id, attendee_id, created_at
		FROM check_ins
		WHERE attendee_id = $1
	`
	c := &domain.CheckIn{}
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, attendeeID).Scan(&c.ID, &c.AttendeeID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
