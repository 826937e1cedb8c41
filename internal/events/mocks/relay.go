package mocks

import (
	"context"
	"sync"
	"venuedesk/internal/events"
)

// Relay records published events for assertions in tests.
type Relay struct {
	mu        sync.Mutex
	Published []events.StatusEvent
}

func NewRelay() *Relay {
	return &Relay{}
}

// PublishStatusChange implements events.Relay.
func (r *Relay) PublishStatusChange(_ context.Context, event events.StatusEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Published = append(r.Published, event)
}

func (r *Relay) Events() []events.StatusEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]events.StatusEvent, len(r.Published))
	copy(out, r.Published)

	return out
}
