package domain

import (
	"context"
	"time"
)

// RosterPageSize is the fixed number of attendees per roster page.
const RosterPageSize = 10

// RosterEntry is one attendee row in an event roster, including the check-in
// timestamp when the attendee has checked in.
// swagger:model RosterEntry
type RosterEntry struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	CheckedInAt *time.Time `json:"checked_in_at"`
}

// RosterPage is one page of an event roster. Total is the number of attendees
// registered for the event, independent of any active name filter.
type RosterPage struct {
	Attendees []*RosterEntry `json:"attendees"`
	Total     int            `json:"total"`
}

// RosterService provides paginated, filtered views over an event's attendees.
type RosterService interface {
	// ListEventAttendees returns the page at pageIndex (zero-based) of the
	// event's attendees, newest registrations first. query, when non-empty,
	// restricts rows to names containing it (case-insensitive substring).
	// Returns ErrNotFound if the event does not exist.
	ListEventAttendees(ctx context.Context, eventID, query string, pageIndex int) (*RosterPage, error)
}
