package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventpass/internal/domain"
)

type rosterService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	contextTimeout time.Duration
}

// NewRosterService creates a RosterService with the given repositories.
func NewRosterService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	timeout time.Duration,
) domain.RosterService {
	return &rosterService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		contextTimeout: timeout,
	}
}

func (s *rosterService) ListEventAttendees(ctx context.Context, eventID, query string, pageIndex int) (*domain.RosterPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if pageIndex < 0 {
		pageIndex = 0
	}

	// A missing event is an error, not an empty roster with a zero total.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	entries, err := s.attendeeRepo.ListByEventID(ctx, eventID, query, domain.RosterPageSize, pageIndex*domain.RosterPageSize)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if entries == nil {
		entries = []*domain.RosterEntry{}
	}

	// Total counts every registration for the event, not the filtered subset.
	total, err := s.attendeeRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}

	return &domain.RosterPage{
		Attendees: entries,
		Total:     total,
	}, nil
}
