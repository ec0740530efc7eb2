package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"eventpass/internal/domain"
	"eventpass/internal/slug"
)

type eventService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, title string, details *string, maximumAttendees *int) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventSlug := slug.Make(title)
	if eventSlug == "" {
		return nil, domain.ErrInvalidInput
	}

	// A found slug is a conflict, never an invitation to disambiguate.
	if _, err := s.eventRepo.GetBySlug(ctx, eventSlug); err == nil {
		return nil, domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get event by slug: %w", err)
	}

	event := domain.NewEvent(uuid.NewString(), title, eventSlug, details, maximumAttendees, time.Now())
	if err := s.eventRepo.Create(ctx, event); err != nil {
		// A losing race on the slug constraint surfaces as the same conflict.
		if errors.Is(err, domain.ErrSlugTaken) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}

	amount, err := s.attendeeRepo.CountByEventID(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("count attendees: %w", err)
	}
	return event, amount, nil
}
