// Package stream provides the live debug-log consumer used by the operator
// CLI. It maintains one SSE connection with an explicit state machine
// instead of callbacks capturing enabled-ness at schedule time.
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aihub/hubadmin/pkg/debuglog"
	"github.com/aihub/hubadmin/pkg/models"
)

// State is the connection lifecycle position. Transitions:
// idle -> connecting -> open -> backoff -> connecting, with Close moving
// any state back to idle.
type State string

const (
	StateIdle       State = "idle"
	StateConnecting State = "connecting"
	StateOpen       State = "open"
	StateBackoff    State = "backoff"
)

const (
	// ReconnectDelay is fixed: no growth and no retry ceiling. The stream
	// is a debugging aid, not a production data path, so an unreachable
	// server just keeps being retried at this interval.
	ReconnectDelay = 3 * time.Second

	// BufferCapacity bounds the retained entries; the oldest is evicted.
	BufferCapacity = 100
)

// Consumer maintains the live debug-log view: newest entries first, capped
// buffer, cleared on server request.
type Consumer struct {
	url        string
	authorize  func(*http.Request)
	httpClient *http.Client
	logger     *slog.Logger
	delay      time.Duration
	capacity   int
	onEnvelope func(debuglog.Envelope)

	mu      sync.Mutex
	state   State
	entries []models.DebugLogEntry
	cancel  context.CancelFunc
	done    chan struct{}
}

type Option func(*Consumer)

// WithAuthorize sets the request decorator, typically Client.Authorize.
func WithAuthorize(authorize func(*http.Request)) Option {
	return func(c *Consumer) {
		c.authorize = authorize
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Consumer) {
		c.httpClient = httpClient
	}
}

// WithReconnectDelay overrides the fixed reconnect delay. Tests use this.
func WithReconnectDelay(delay time.Duration) Option {
	return func(c *Consumer) {
		c.delay = delay
	}
}

// WithCapacity overrides the buffer capacity.
func WithCapacity(capacity int) Option {
	return func(c *Consumer) {
		c.capacity = capacity
	}
}

// WithEnvelopeHandler registers a callback invoked for every applied
// envelope, after the buffer has been updated.
func WithEnvelopeHandler(handler func(debuglog.Envelope)) Option {
	return func(c *Consumer) {
		c.onEnvelope = handler
	}
}

func NewConsumer(url string, logger *slog.Logger, opts ...Option) *Consumer {
	consumer := &Consumer{
		url:        url,
		httpClient: &http.Client{},
		logger:     logger.With("module", "debug_stream"),
		delay:      ReconnectDelay,
		capacity:   BufferCapacity,
		state:      StateIdle,
	}

	for _, opt := range opts {
		opt(consumer)
	}

	return consumer
}

// State returns the current lifecycle position.
func (c *Consumer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Entries returns a copy of the buffer, newest first.
func (c *Consumer) Entries() []models.DebugLogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]models.DebugLogEntry, len(c.entries))
	copy(entries, c.entries)

	return entries
}

// Enable starts the consumer. Already-running consumers are left alone.
// The buffer is reset because the server replays its history on connect.
func (c *Consumer) Enable() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	c.state = StateConnecting
	c.entries = nil
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(ctx, c.done)
}

// Close disables the consumer and waits for the connection goroutine to
// exit. A reconnect timer pending at this moment never fires into a new
// connection: the state is idle by the time it would.
func (c *Consumer) Close() {
	c.mu.Lock()

	if c.state == StateIdle {
		c.mu.Unlock()

		return
	}

	c.state = StateIdle
	c.cancel()
	done := c.done
	c.mu.Unlock()

	<-done
}

func (c *Consumer) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		err := c.consume(ctx)
		if ctx.Err() != nil {
			return
		}

		if !c.transition(StateBackoff) {
			return
		}

		c.logger.Warn("Stream disconnected, reconnecting", "error", err, "delay", c.delay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.delay):
		}

		// Enabled-ness is re-checked now, at fire time: a Close that
		// happened during the delay leaves the state idle and the
		// reconnect is abandoned.
		if !c.transition(StateConnecting) {
			return
		}
	}
}

// transition moves to next unless the consumer was closed meanwhile.
func (c *Consumer) transition(next State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateIdle {
		return false
	}

	c.state = next

	return true
}

func (c *Consumer) consume(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build stream request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	if c.authorize != nil {
		c.authorize(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stream connection failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream connection refused: %s", resp.Status)
	}

	if !c.transition(StateOpen) {
		return nil
	}

	return c.readEvents(resp.Body)
}

// readEvents parses the SSE frames. Only data lines matter: the envelope
// carries its own type discriminator.
func (c *Consumer) readEvents(body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var data []string

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if len(data) > 0 {
				c.dispatch(strings.Join(data, "\n"))

				data = data[:0]
			}

			continue
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		if payload, ok := strings.CutPrefix(line, "data:"); ok {
			data = append(data, strings.TrimPrefix(payload, " "))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream read failed: %w", err)
	}

	return fmt.Errorf("stream closed by server")
}

func (c *Consumer) dispatch(payload string) {
	var envelope debuglog.Envelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		c.logger.Warn("Dropping malformed stream message", "error", err)

		return
	}

	c.apply(envelope)
}

func (c *Consumer) apply(envelope debuglog.Envelope) {
	c.mu.Lock()

	switch envelope.Type {
	case debuglog.EnvelopeTypeLog:
		if envelope.Data != nil {
			c.entries = append([]models.DebugLogEntry{*envelope.Data}, c.entries...)
			if len(c.entries) > c.capacity {
				c.entries = c.entries[:c.capacity]
			}
		}
	case debuglog.EnvelopeTypeCleared:
		c.entries = nil
	}

	handler := c.onEnvelope
	c.mu.Unlock()

	if handler != nil {
		handler(envelope)
	}
}
