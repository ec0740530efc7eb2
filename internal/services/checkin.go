package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"eventpass/internal/domain"
)

type checkInService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	checkInRepo    domain.CheckInRepository
	contextTimeout time.Duration
}

// NewCheckInService creates a CheckInService with the given repositories.
func NewCheckInService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	checkInRepo domain.CheckInRepository,
	timeout time.Duration,
) domain.CheckInService {
	return &checkInService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		checkInRepo:    checkInRepo,
		contextTimeout: timeout,
	}
}

func (s *checkInService) CheckIn(ctx context.Context, attendeeID int64) (*domain.CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var checkIn *domain.CheckIn
	// The row lock on the attendee serializes concurrent check-ins, so two
	// simultaneous scans of the same badge cannot both pass the prior-check-in read.
	err := s.attendeeRepo.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.attendeeRepo.GetByIDForUpdate(ctx, attendeeID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get attendee: %w", err)
		}

		if _, err := s.checkInRepo.GetByAttendeeID(ctx, attendeeID); err == nil {
			return domain.ErrAlreadyCheckedIn
		} else if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get check-in: %w", err)
		}

		c := domain.NewCheckIn(attendeeID, time.Now())
		if err := s.checkInRepo.Create(ctx, c); err != nil {
			if errors.Is(err, domain.ErrAlreadyCheckedIn) {
				return domain.ErrAlreadyCheckedIn
			}
			return fmt.Errorf("create check-in: %w", err)
		}
		checkIn = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return checkIn, nil
}

func (s *checkInService) GetBadge(ctx context.Context, attendeeID int64, baseURL string) (*domain.Badge, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, attendee.EventID)
	if err != nil {
		return nil, fmt.Errorf("get event for attendee: %w", err)
	}

	checkInURL, err := buildCheckInURL(baseURL, attendeeID)
	if err != nil {
		return nil, fmt.Errorf("build check-in url: %w", err)
	}

	return &domain.Badge{
		Name:       attendee.Name,
		Email:      attendee.Email,
		EventTitle: event.Title,
		CheckInURL: checkInURL,
	}, nil
}

// buildCheckInURL is a pure function of the caller's base address and the
// attendee id; nothing about it is stored.
func buildCheckInURL(baseURL string, attendeeID int64) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	u.Path = fmt.Sprintf("/attendees/%d/check-in", attendeeID)
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
