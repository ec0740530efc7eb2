package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"eventpass/internal/domain"
)

func capacityEvent(id string, max int) *domain.Event {
	return domain.NewEvent(id, "Unite Summit", "unite-summit", nil, &max, time.Now())
}

func TestRegistrationService_RegisterForEvent(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		eventID string
		email   string
		seed    func(store *memStore)
		wantErr error
	}{
		{
			name:    "success",
			eventID: "ev-1",
			email:   "alice@example.com",
			seed: func(store *memStore) {
				store.addEvent(capacityEvent("ev-1", 10))
			},
		},
		{
			name:    "missing event",
			eventID: "ev-none",
			email:   "alice@example.com",
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "duplicate email for same event",
			eventID: "ev-1",
			email:   "alice@example.com",
			seed: func(store *memStore) {
				store.addEvent(capacityEvent("ev-1", 10))
				store.addAttendee(domain.NewAttendee("ev-1", "Alice", "alice@example.com", now))
			},
			wantErr: domain.ErrAlreadyRegistered,
		},
		{
			name:    "same email on a different event is fine",
			eventID: "ev-2",
			email:   "alice@example.com",
			seed: func(store *memStore) {
				store.addEvent(capacityEvent("ev-1", 10))
				store.addEvent(domain.NewEvent("ev-2", "DevFest", "devfest", nil, nil, now))
				store.addAttendee(domain.NewAttendee("ev-1", "Alice", "alice@example.com", now))
			},
		},
		{
			name:    "event at capacity",
			eventID: "ev-1",
			email:   "bob@example.com",
			seed: func(store *memStore) {
				store.addEvent(capacityEvent("ev-1", 1))
				store.addAttendee(domain.NewAttendee("ev-1", "Alice", "alice@example.com", now))
			},
			wantErr: domain.ErrEventFull,
		},
		{
			name:    "no capacity limit admits freely",
			eventID: "ev-1",
			email:   "bob@example.com",
			seed: func(store *memStore) {
				store.addEvent(domain.NewEvent("ev-1", "Unite Summit", "unite-summit", nil, nil, now))
				for i := 0; i < 50; i++ {
					store.addAttendee(domain.NewAttendee("ev-1", "Guest", fmt.Sprintf("guest%d@example.com", i), now))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			if tt.seed != nil {
				tt.seed(store)
			}
			svc := NewRegistrationService(&fakeEventRepository{store: store}, &fakeAttendeeRepository{store: store}, time.Second)

			got, err := svc.RegisterForEvent(context.Background(), tt.eventID, "Someone", tt.email)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID == 0 {
				t.Error("expected an assigned attendee id")
			}
			if got.EventID != tt.eventID || got.Email != tt.email {
				t.Errorf("attendee stored with wrong identity: %+v", got)
			}
		})
	}
}

// Concurrently issuing N+K registrations against a capacity of N must admit
// exactly N and reject K with ErrEventFull, regardless of arrival order.
func TestRegistrationService_RegisterForEvent_ConcurrentCapacity(t *testing.T) {
	const capacity = 5
	const attempts = 20

	store := newMemStore()
	store.addEvent(capacityEvent("ev-1", capacity))
	svc := NewRegistrationService(&fakeEventRepository{store: store}, &fakeAttendeeRepository{store: store}, time.Second)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RegisterForEvent(context.Background(), "ev-1", "Guest", fmt.Sprintf("guest%d@example.com", i))
		}(i)
	}
	wg.Wait()

	admitted, full := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, domain.ErrEventFull):
			full++
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if admitted != capacity {
		t.Errorf("expected exactly %d admitted, got %d", capacity, admitted)
	}
	if full != attempts-capacity {
		t.Errorf("expected %d capacity rejections, got %d", attempts-capacity, full)
	}
	if count := len(store.attendees); count != capacity {
		t.Errorf("store holds %d attendees, want %d", count, capacity)
	}
}

// Two concurrent registrations with the same email admit exactly one.
func TestRegistrationService_RegisterForEvent_ConcurrentDuplicate(t *testing.T) {
	store := newMemStore()
	store.addEvent(capacityEvent("ev-1", 10))
	svc := NewRegistrationService(&fakeEventRepository{store: store}, &fakeAttendeeRepository{store: store}, time.Second)

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RegisterForEvent(context.Background(), "ev-1", "Alice", "alice@example.com")
		}(i)
	}
	wg.Wait()

	admitted, duplicate := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, domain.ErrAlreadyRegistered):
			duplicate++
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if admitted != 1 {
		t.Errorf("expected exactly one admitted registration, got %d", admitted)
	}
	if duplicate != attempts-1 {
		t.Errorf("expected %d duplicate rejections, got %d", attempts-1, duplicate)
	}
}
