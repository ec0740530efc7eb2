package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyCheckedIn is returned on a second check-in attempt for the same
// attendee. Distinct from a generic conflict so callers can treat a re-scan
// of the same badge as its own case.
var ErrAlreadyCheckedIn = errors.New("attendee already checked in")

// CheckIn records the one-time confirmation of an attendee's presence.
// swagger:model CheckIn
type CheckIn struct {
	ID         int64     `json:"id"`
	AttendeeID int64     `json:"attendee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCheckIn returns a new CheckIn. ID is set by the repository on create.
func NewCheckIn(attendeeID int64, createdAt time.Time) *CheckIn {
	return &CheckIn{
		AttendeeID: attendeeID,
		CreatedAt:  createdAt,
	}
}

// CheckInRepository defines storage operations for check-ins.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *CheckIn) error
	GetByAttendeeID(ctx context.Context, attendeeID int64) (*CheckIn, error)
}

// Badge is the printable credential for a registered attendee. CheckInURL is
// an absolute URL pointing at the check-in operation for this attendee; it is
// derived from the caller's base address and never stored.
type Badge struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	EventTitle string `json:"event_title"`
	CheckInURL string `json:"check_in_url"`
}

// CheckInService enforces the check-in-once rule and produces badge data.
type CheckInService interface {
	// CheckIn records the attendee's check-in. Returns ErrNotFound if the
	// attendee does not exist and ErrAlreadyCheckedIn on a repeat attempt.
	CheckIn(ctx context.Context, attendeeID int64) (*CheckIn, error)
	// GetBadge returns badge data for the attendee. baseURL is the caller's
	// public scheme+host, used only to build the absolute check-in URL.
	GetBadge(ctx context.Context, attendeeID int64, baseURL string) (*Badge, error)
}
