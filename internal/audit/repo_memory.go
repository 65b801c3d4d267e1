package audit

import (
	"context"
	"sync"
)

// MemoryRepo is a simple in-memory append-only repository. It backs the ops
// read endpoint and tests; decisions themselves are never persisted.

type MemoryRepo struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *MemoryRepo) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// EventsForMerchant returns the merchant's events in append order.
func (r *MemoryRepo) EventsForMerchant(merchantID string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.MerchantID == merchantID {
			out = append(out, e)
		}
	}
	return out
}
