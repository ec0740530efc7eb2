package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"eventpass/internal/domain"
)

func newRosterFixture(seed func(store *memStore)) (domain.RosterService, *memStore) {
	store := newMemStore()
	if seed != nil {
		seed(store)
	}
	svc := NewRosterService(&fakeEventRepository{store: store}, &fakeAttendeeRepository{store: store}, time.Second)
	return svc, store
}

func TestRosterService_ListEventAttendees(t *testing.T) {
	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	seedRoster := func(store *memStore) {
		store.addEvent(domain.NewEvent("ev-1", "Unite Summit", "unite-summit", nil, nil, base))
		store.addAttendee(domain.NewAttendee("ev-1", "Alice Cooper", "alice@example.com", base))
		bob := store.addAttendee(domain.NewAttendee("ev-1", "Bob Alison", "bob@example.com", base.Add(time.Minute)))
		store.addAttendee(domain.NewAttendee("ev-1", "Carol Danvers", "carol@example.com", base.Add(2*time.Minute)))
		store.checkIns[bob.ID] = domain.NewCheckIn(bob.ID, base.Add(time.Hour))
	}

	t.Run("missing event is an error", func(t *testing.T) {
		svc, _ := newRosterFixture(nil)
		_, err := svc.ListEventAttendees(context.Background(), "ev-none", "", 0)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("newest first with check-in state", func(t *testing.T) {
		svc, _ := newRosterFixture(seedRoster)
		page, err := svc.ListEventAttendees(context.Background(), "ev-1", "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 3 {
			t.Errorf("expected total 3, got %d", page.Total)
		}
		if len(page.Attendees) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(page.Attendees))
		}
		if page.Attendees[0].Name != "Carol Danvers" {
			t.Errorf("expected newest registration first, got %q", page.Attendees[0].Name)
		}
		var bobRow *domain.RosterEntry
		for _, row := range page.Attendees {
			if row.Name == "Bob Alison" {
				bobRow = row
			} else if row.CheckedInAt != nil {
				t.Errorf("%s should not be checked in", row.Name)
			}
		}
		if bobRow == nil || bobRow.CheckedInAt == nil {
			t.Error("expected Bob's row to carry his check-in timestamp")
		}
	})

	t.Run("name filter keeps total unfiltered", func(t *testing.T) {
		svc, _ := newRosterFixture(seedRoster)
		page, err := svc.ListEventAttendees(context.Background(), "ev-1", "ali", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// "ali" matches Alice Cooper and Bob Alison as substrings.
		if len(page.Attendees) != 2 {
			t.Fatalf("expected 2 filtered rows, got %d", len(page.Attendees))
		}
		if page.Total != 3 {
			t.Errorf("total must ignore the filter: expected 3, got %d", page.Total)
		}
	})

	t.Run("no matches is an empty page, not an error", func(t *testing.T) {
		svc, _ := newRosterFixture(seedRoster)
		page, err := svc.ListEventAttendees(context.Background(), "ev-1", "zzz", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Attendees == nil || len(page.Attendees) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", page.Attendees)
		}
		if page.Total != 3 {
			t.Errorf("expected total 3, got %d", page.Total)
		}
	})

	t.Run("pagination slices at ten per page", func(t *testing.T) {
		svc, _ := newRosterFixture(func(store *memStore) {
			store.addEvent(domain.NewEvent("ev-1", "Unite Summit", "unite-summit", nil, nil, base))
			for i := 0; i < 15; i++ {
				store.addAttendee(domain.NewAttendee("ev-1", fmt.Sprintf("Guest %02d", i), fmt.Sprintf("guest%d@example.com", i), base.Add(time.Duration(i)*time.Minute)))
			}
		})

		first, err := svc.ListEventAttendees(context.Background(), "ev-1", "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first.Attendees) != domain.RosterPageSize {
			t.Errorf("expected full first page of %d, got %d", domain.RosterPageSize, len(first.Attendees))
		}

		second, err := svc.ListEventAttendees(context.Background(), "ev-1", "", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second.Attendees) != 5 {
			t.Errorf("expected 5 rows on second page, got %d", len(second.Attendees))
		}
		if first.Total != 15 || second.Total != 15 {
			t.Errorf("expected total 15 on both pages, got %d and %d", first.Total, second.Total)
		}
		if first.Attendees[0].Name != "Guest 14" {
			t.Errorf("expected newest guest first, got %q", first.Attendees[0].Name)
		}
	})

	t.Run("repeated reads are identical without writes", func(t *testing.T) {
		svc, _ := newRosterFixture(seedRoster)
		first, err := svc.ListEventAttendees(context.Background(), "ev-1", "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 3; i++ {
			again, err := svc.ListEventAttendees(context.Background(), "ev-1", "", 0)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if again.Total != first.Total || len(again.Attendees) != len(first.Attendees) {
				t.Fatal("repeated roster read diverged")
			}
			for j := range again.Attendees {
				if again.Attendees[j].ID != first.Attendees[j].ID {
					t.Fatal("repeated roster read changed order")
				}
			}
		}
	})
}
