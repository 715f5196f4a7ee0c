package testutil

import (
	"context"
	"sync"

	"github.com/mcoot/coup-go/internal/model"
)

// RecordingPublisher collects published events for assertions
type RecordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

// Publish records the event
func (p *RecordingPublisher) Publish(ctx context.Context, event model.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far
func (p *RecordingPublisher) Events() []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.Event(nil), p.events...)
}

// Types returns the types of everything published so far, in order
func (p *RecordingPublisher) Types() []model.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]model.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// Last returns the most recent event
func (p *RecordingPublisher) Last() (model.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return model.Event{}, false
	}
	return p.events[len(p.events)-1], true
}
