package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for registration operations.
var (
	// ErrAlreadyRegistered is returned when the email is already registered for the event.
	ErrAlreadyRegistered = errors.New("already registered for this event")
	// ErrEventFull is returned when the event has reached its maximum attendees.
	ErrEventFull = errors.New("event is at maximum capacity")
)

// Attendee represents a person registered for exactly one event.
// swagger:model Attendee
type Attendee struct {
	ID        int64     `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAttendee returns a new Attendee. ID is set by the repository on create.
func NewAttendee(eventID, name, email string, createdAt time.Time) *Attendee {
	return &Attendee{
		EventID:   eventID,
		Name:      name,
		Email:     email,
		CreatedAt: createdAt,
	}
}

// AttendeeRepository defines storage operations for attendee registrations.
type AttendeeRepository interface {
	// WithTx runs fn inside a single storage transaction. Repository calls made
	// with the context passed to fn join that transaction. fn returning an error
	// rolls the transaction back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, attendee *Attendee) error
	GetByID(ctx context.Context, id int64) (*Attendee, error)
	// GetByIDForUpdate loads the attendee and locks its row until the surrounding
	// transaction ends. Outside a transaction it behaves like GetByID.
	GetByIDForUpdate(ctx context.Context, id int64) (*Attendee, error)
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Attendee, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	// ListByEventID returns one roster page: attendees of the event, optionally
	// filtered by name substring, newest first, with their check-in timestamps.
	ListByEventID(ctx context.Context, eventID, query string, limit, offset int) ([]*RosterEntry, error)
}

// RegistrationService admits new attendees against capacity and uniqueness rules.
type RegistrationService interface {
	// RegisterForEvent registers name/email for the event. Returns ErrNotFound if
	// the event does not exist, ErrAlreadyRegistered for a duplicate email, and
	// ErrEventFull when the capacity limit has been reached.
	RegisterForEvent(ctx context.Context, eventID, name, email string) (*Attendee, error)
}
