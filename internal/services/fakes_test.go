package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"eventpass/internal/domain"
)

// memStore is shared in-memory state behind the fake repositories. Its mutex
// is held for the duration of WithTx, mirroring how the real repositories
// serialize the read-check-insert flows on a row lock.
type memStore struct {
	mu             sync.Mutex
	events         map[string]*domain.Event
	attendees      map[int64]*domain.Attendee
	checkIns       map[int64]*domain.CheckIn // keyed by attendee ID
	nextAttendeeID int64
	nextCheckInID  int64
}

func newMemStore() *memStore {
	return &memStore{
		events:    make(map[string]*domain.Event),
		attendees: make(map[int64]*domain.Attendee),
		checkIns:  make(map[int64]*domain.CheckIn),
	}
}

func (s *memStore) addEvent(e *domain.Event) *domain.Event {
	s.events[e.ID] = e
	return e
}

func (s *memStore) addAttendee(a *domain.Attendee) *domain.Attendee {
	s.nextAttendeeID++
	a.ID = s.nextAttendeeID
	s.attendees[a.ID] = a
	return a
}

type fakeEventRepository struct {
	store *memStore
	err   error
}

func (f *fakeEventRepository) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.store.events {
		if existing.Slug == e.Slug {
			return domain.ErrSlugTaken
		}
	}
	f.store.events[e.ID] = e
	return nil
}

func (f *fakeEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.store.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Event, error) {
	return f.GetByID(ctx, id)
}

type fakeAttendeeRepository struct {
	store *memStore
	err   error
}

func (f *fakeAttendeeRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return fn(ctx)
}

func (f *fakeAttendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.store.attendees {
		if existing.EventID == a.EventID && existing.Email == a.Email {
			return domain.ErrAlreadyRegistered
		}
	}
	f.store.addAttendee(a)
	return nil
}

func (f *fakeAttendeeRepository) GetByID(ctx context.Context, id int64) (*domain.Attendee, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.store.attendees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeAttendeeRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Attendee, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeAttendeeRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Attendee, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.store.attendees {
		if a.EventID == eventID && a.Email == email {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAttendeeRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, a := range f.store.attendees {
		if a.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeAttendeeRepository) ListByEventID(ctx context.Context, eventID, query string, limit, offset int) ([]*domain.RosterEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var matched []*domain.Attendee
	for _, a := range f.store.attendees {
		if a.EventID != eventID {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(query)) {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	entries := make([]*domain.RosterEntry, 0)
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		a := matched[i]
		entry := &domain.RosterEntry{
			ID:        a.ID,
			Name:      a.Name,
			Email:     a.Email,
			CreatedAt: a.CreatedAt,
		}
		if c, ok := f.store.checkIns[a.ID]; ok {
			entry.CheckedInAt = &c.CreatedAt
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

type fakeCheckInRepository struct {
	store *memStore
	err   error
}

func (f *fakeCheckInRepository) Create(ctx context.Context, c *domain.CheckIn) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.store.checkIns[c.AttendeeID]; ok {
		return domain.ErrAlreadyCheckedIn
	}
	f.store.nextCheckInID++
	c.ID = f.store.nextCheckInID
	f.store.checkIns[c.AttendeeID] = c
	return nil
}

func (f *fakeCheckInRepository) GetByAttendeeID(ctx context.Context, attendeeID int64) (*domain.CheckIn, error) {
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.store.checkIns[attendeeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
