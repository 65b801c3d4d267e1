package audit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(repo Repository) *Service {
	s := NewService(repo)
	s.clock = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestService_AppendFillsDefaults(t *testing.T) {
	repo := NewMemoryRepo()
	s := newTestService(repo)

	err := s.Append(context.Background(), Event{MerchantID: "m1", Type: EventTypeDecision})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	events := repo.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !e.CreatedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected clock timestamp, got %v", e.CreatedAt)
	}
}

func TestService_AppendRejectsInvalidEvents(t *testing.T) {
	s := newTestService(NewMemoryRepo())

	if err := s.Append(context.Background(), Event{Type: EventTypeDecision}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent for missing merchant, got %v", err)
	}
	if err := s.Append(context.Background(), Event{MerchantID: "m1"}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent for missing type, got %v", err)
	}
}

func TestService_LogDecision(t *testing.T) {
	repo := NewMemoryRepo()
	s := newTestService(repo)

	err := s.LogDecision(context.Background(), "m1", "u1", "analyst", "10.0.0.1", "txn-1", "DECLINE", 0.91, `{"reasons":1}`)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	e := repo.Events()[0]
	if e.Type != EventTypeDecision {
		t.Fatalf("expected decision event type, got %q", e.Type)
	}
	if e.TransactionID != "txn-1" || e.Status != "DECLINE" || e.RiskScore != 0.91 {
		t.Fatalf("decision fields not recorded: %+v", e)
	}
}

func TestMemoryRepo_EventsForMerchantFiltersInOrder(t *testing.T) {
	repo := NewMemoryRepo()
	s := newTestService(repo)

	_ = s.LogAdminAction(context.Background(), "m1", "u1", "owner", "", "first", "")
	_ = s.LogAdminAction(context.Background(), "m2", "u2", "owner", "", "other", "")
	_ = s.LogAdminAction(context.Background(), "m1", "u1", "owner", "", "second", "")

	got := repo.EventsForMerchant("m1")
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Message != "first" || got[1].Message != "second" {
		t.Fatalf("expected append order, got %q then %q", got[0].Message, got[1].Message)
	}
}
