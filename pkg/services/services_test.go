package services

import (
	"context"
	"sync"
	"testing"

	"github.com/aihub/hubadmin/pkg/eventbus"
	"github.com/aihub/hubadmin/pkg/persistence/file"
)

// capturePublisher records published events so tests can assert on
// lifecycle notifications without a running bus.
type capturePublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event eventbus.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return nil
}

func (p *capturePublisher) published() []eventbus.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	events := make([]eventbus.Event, len(p.events))
	copy(events, p.events)

	return events
}

func newTestPersistence(t *testing.T) *file.Persistence {
	t.Helper()

	return file.NewPersistence(t.TempDir())
}
