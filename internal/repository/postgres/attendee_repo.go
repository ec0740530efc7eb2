package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventpass/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

func (r *attendeeRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.DB, fn)
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (event_id, name, email, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, a.EventID, a.Name, a.Email, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == "attendees_event_id_email_key" {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *attendeeRepository) GetByID(ctx context.Context, id int64) (*domain.Attendee, error) {
	query := `
		SELECT id, event_id, name, email, created_at
		FROM attendees
		WHERE id = $1
	`
	return r.scanAttendee(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *attendeeRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Attendee, error) {
	query := `
		SELECT id, event_id, name, email, created_at
		FROM attendees
		WHERE id = $1
		FOR UPDATE
	`
	return r.scanAttendee(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *attendeeRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Attendee, error) {
	query := `
		SELECT id, event_id, name, email, created_at
		FROM attendees
		WHERE event_id = $1 AND email = $2
	`
	return r.scanAttendee(conn(ctx, r.DB).QueryRowContext(ctx, query, eventID, email))
}

func (r *attendeeRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM attendees WHERE event_id = $1`
	var count int
	if err := conn(ctx, r.DB).QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID, query string, limit, offset int) ([]*domain.RosterEntry, error) {
	stmt := `
		SELECT a.id, a.name, a.email, a.created_at, c.created_at
		FROM attendees a
		LEFT JOIN check_ins c ON c.attendee_id = a.id
		WHERE a.event_id = $1 AND ($2 = '' OR a.name ILIKE '%' || $2 || '%')
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, stmt, eventID, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.RosterEntry, 0)
	for rows.Next() {
		entry := &domain.RosterEntry{}
		var checkedInNull sql.NullTime
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Email, &entry.CreatedAt, &checkedInNull); err != nil {
			return nil, err
		}
		if checkedInNull.Valid {
			entry.CheckedInAt = &checkedInNull.Time
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *attendeeRepository) scanAttendee(row *sql.Row) (*domain.Attendee, error) {
	a := &domain.Attendee{}
	err := row.Scan(&a.ID, &a.EventID, &a.Name, &a.Email, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}
