// Package debuglog keeps the live authentication debug feed: a bounded
// in-memory buffer plus fan-out to streaming subscribers. Entries are a
// debugging aid and are never persisted.
package debuglog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aihub/hubadmin/pkg/eventbus"
	"github.com/aihub/hubadmin/pkg/events"
	"github.com/aihub/hubadmin/pkg/models"
)

// DefaultCapacity bounds the buffer; the oldest entry is evicted first.
const DefaultCapacity = 100

// EnvelopeTypeLog and EnvelopeTypeCleared discriminate stream messages.
const (
	EnvelopeTypeLog     = "log"
	EnvelopeTypeCleared = "cleared"
)

// Envelope is the wire format delivered to stream subscribers.
type Envelope struct {
	Type string                `json:"type"`
	Data *models.DebugLogEntry `json:"data,omitempty"`
}

type subscriber struct {
	ch       chan Envelope
	provider string // empty means all providers
}

// Hub holds the bounded entry buffer (newest first) and broadcasts
// envelopes to subscribers. All methods are safe for concurrent use.
type Hub struct {
	mu          sync.Mutex
	capacity    int
	entries     []models.DebugLogEntry
	subscribers map[int]*subscriber
	nextID      int
	logger      *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return NewHubWithCapacity(logger, DefaultCapacity)
}

func NewHubWithCapacity(logger *slog.Logger, capacity int) *Hub {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Hub{
		capacity:    capacity,
		entries:     make([]models.DebugLogEntry, 0, capacity),
		subscribers: make(map[int]*subscriber),
		logger:      logger,
	}
}

// Append prepends the entry, evicting the oldest when the buffer is full,
// and broadcasts a log envelope to matching subscribers.
func (h *Hub) Append(entry models.DebugLogEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append([]models.DebugLogEntry{entry}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}

	envelope := Envelope{Type: EnvelopeTypeLog, Data: &entry}

	for _, sub := range h.subscribers {
		if sub.provider != "" && sub.provider != entry.Provider {
			continue
		}

		h.deliverLocked(sub, envelope)
	}
}

// Clear empties the buffer regardless of size and broadcasts a cleared
// envelope to every subscriber.
func (h *Hub) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = h.entries[:0]

	for _, sub := range h.subscribers {
		h.deliverLocked(sub, Envelope{Type: EnvelopeTypeCleared})
	}
}

// Snapshot returns the buffered entries, newest first, optionally filtered
// by provider.
func (h *Hub) Snapshot(provider string) []models.DebugLogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]models.DebugLogEntry, 0, len(h.entries))

	for _, entry := range h.entries {
		if provider != "" && entry.Provider != provider {
			continue
		}

		entries = append(entries, entry)
	}

	return entries
}

// Len reports the current number of buffered entries.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// Subscribe registers a stream consumer scoped to an optional provider
// filter. The returned cancel func is idempotent and closes the channel.
func (h *Hub) Subscribe(provider string) (<-chan Envelope, func()) {
	h.mu.Lock()

	id := h.nextID
	h.nextID++

	sub := &subscriber{
		ch:       make(chan Envelope, 64),
		provider: provider,
	}
	h.subscribers[id] = sub
	h.mu.Unlock()

	var once sync.Once

	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			delete(h.subscribers, id)
			close(sub.ch)
		})
	}

	return sub.ch, cancel
}

// deliverLocked never blocks: a subscriber that cannot keep up loses the
// envelope rather than stalling the hub.
func (h *Hub) deliverLocked(sub *subscriber, envelope Envelope) {
	select {
	case sub.ch <- envelope:
	default:
		h.logger.Warn("Dropping debug log envelope for slow subscriber")
	}
}

// AttachBus feeds the hub from debug events published on the event bus,
// so entries raised by other service instances show up in this stream.
func (h *Hub) AttachBus(bus eventbus.EventBus) error {
	err := bus.Handle(events.AuthDebugLogEvent, func(_ context.Context, event any) error {
		logEvent, ok := event.(*events.AuthDebugLog)
		if !ok {
			return nil
		}

		h.Append(logEvent.Entry)

		return nil
	})
	if err != nil {
		return err
	}

	return bus.Handle(events.AuthDebugClearedEvent, func(_ context.Context, _ any) error {
		h.Clear()

		return nil
	})
}
