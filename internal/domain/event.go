package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared across event operations.
var (
	// ErrNotFound is returned when a referenced event or attendee does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSlugTaken is returned when another event already uses the derived slug.
	ErrSlugTaken = errors.New("another event already uses this slug")
	// ErrInvalidInput is returned when the request is invalid (e.g. a title with no slug material).
	ErrInvalidInput = errors.New("invalid input")
)

// Event represents a hostable gathering with an optional capacity limit.
// swagger:model Event
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Details          *string   `json:"details"`
	MaximumAttendees *int      `json:"maximum_attendees"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields.
func NewEvent(id, title, slug string, details *string, maximumAttendees *int, createdAt time.Time) *Event {
	return &Event{
		ID:               id,
		Title:            title,
		Slug:             slug,
		Details:          details,
		MaximumAttendees: maximumAttendees,
		CreatedAt:        createdAt,
	}
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	// GetByIDForUpdate loads the event and locks its row until the surrounding
	// transaction ends. Outside a transaction it behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id string) (*Event, error)
}

// EventService defines the business logic for creating and reading events.
type EventService interface {
	// CreateEvent derives a slug from the title and persists a new event.
	// Returns ErrSlugTaken if an event with the same slug already exists;
	// the slug is user-facing identity and is never mutated to dodge a collision.
	CreateEvent(ctx context.Context, title string, details *string, maximumAttendees *int) (*Event, error)
	// GetEventByID returns the event and its current number of registered attendees.
	GetEventByID(ctx context.Context, id string) (*Event, int, error)
}
