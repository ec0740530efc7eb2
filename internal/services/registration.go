package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventpass/internal/domain"
)

type registrationService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	contextTimeout time.Duration
}

// NewRegistrationService creates a RegistrationService with the given repositories.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		contextTimeout: timeout,
	}
}

func (s *registrationService) RegisterForEvent(ctx context.Context, eventID, name, email string) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var attendee *domain.Attendee
	// The row lock on the event serializes concurrent registrations for the
	// same event, so the duplicate and capacity checks see a settled count.
	err := s.attendeeRepo.WithTx(ctx, func(ctx context.Context) error {
		event, err := s.eventRepo.GetByIDForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}

		if _, err := s.attendeeRepo.GetByEventAndEmail(ctx, eventID, email); err == nil {
			return domain.ErrAlreadyRegistered
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get attendee by email: %w", err)
		}

		if event.MaximumAttendees != nil {
			count, err := s.attendeeRepo.CountByEventID(ctx, eventID)
			if err != nil {
				return fmt.Errorf("count attendees: %w", err)
			}
			if count >= *event.MaximumAttendees {
				return domain.ErrEventFull
			}
		}

		a := domain.NewAttendee(eventID, name, email, time.Now())
		if err := s.attendeeRepo.Create(ctx, a); err != nil {
			if errors.Is(err, domain.ErrAlreadyRegistered) {
				return domain.ErrAlreadyRegistered
			}
			return fmt.Errorf("create attendee: %w", err)
		}
		attendee = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attendee, nil
}
