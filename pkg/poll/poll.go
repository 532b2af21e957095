// Package poll provides the fixed-interval refresh supervisor the operator
// CLI uses for live list views.
package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval matches the console's refresh cadence.
const DefaultInterval = 5 * time.Second

// Supervisor re-invokes one fetch function at a fixed interval. A tick that
// arrives while the previous fetch is still in flight is skipped, so two
// fetches from the same supervisor never overlap.
type Supervisor struct {
	fetch    func(context.Context) error
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	inFlight bool
}

type Option func(*Supervisor)

// WithInterval overrides the fixed interval. Tests use this.
func WithInterval(interval time.Duration) Option {
	return func(s *Supervisor) {
		s.interval = interval
	}
}

func NewSupervisor(fetch func(context.Context) error, logger *slog.Logger, opts ...Option) *Supervisor {
	supervisor := &Supervisor{
		fetch:    fetch,
		interval: DefaultInterval,
		logger:   logger.With("module", "poll"),
	}

	for _, opt := range opts {
		opt(supervisor)
	}

	return supervisor
}

// Run fetches immediately, then on every tick until the context is
// cancelled. Fetch errors are logged and the loop keeps going; the next
// tick is the retry.
func (s *Supervisor) Run(ctx context.Context) {
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Supervisor) tick(ctx context.Context) {
	s.mu.Lock()

	if s.inFlight {
		s.mu.Unlock()
		s.logger.Debug("Skipping tick, previous fetch still in flight")

		return
	}

	s.inFlight = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.inFlight = false
			s.mu.Unlock()
		}()

		if err := s.fetch(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("Fetch failed", "error", err)
		}
	}()
}
