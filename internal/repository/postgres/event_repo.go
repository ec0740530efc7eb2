package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventpass/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (id, title, slug, details, maximum_attendees, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var details sql.NullString
	if e.Details != nil {
		details = sql.NullString{String: *e.Details, Valid: true}
	}
	var maxAttendees sql.NullInt64
	if e.MaximumAttendees != nil {
		maxAttendees = sql.NullInt64{Int64: int64(*e.MaximumAttendees), Valid: true}
	}
	_, err := conn(ctx, r.DB).ExecContext(ctx, query, e.ID, e.Title, e.Slug, details, maxAttendees, e.CreatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == "events_slug_key" {
			return domain.ErrSlugTaken
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, slug, details, maximum_attendees, created_at
		FROM events
		WHERE id = $1
	`
	return r.scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	query := `
		SELECT id, title, slug, details, maximum_attendees, created_at
		FROM events
		WHERE slug = $1
	`
	return r.scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, slug))
}

func (r *eventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, slug, details, maximum_attendees, created_at
		FROM events
		WHERE id = $1
		FOR UPDATE
	`
	return r.scanEvent(conn(ctx, r.DB).QueryRowContext(ctx, query, id))
}

func (r *eventRepository) scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var detailsNull sql.NullString
	var maxNull sql.NullInt64
	err := row.Scan(&e.ID, &e.Title, &e.Slug, &detailsNull, &maxNull, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if detailsNull.Valid {
		e.Details = &detailsNull.String
	}
	if maxNull.Valid {
		max := int(maxNull.Int64)
		e.MaximumAttendees = &max
	}
	return e, nil
}
