package poll

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisor_Run_FetchesImmediately(t *testing.T) {
	t.Parallel()

	fetched := make(chan struct{}, 1)

	supervisor := NewSupervisor(func(_ context.Context) error {
		select {
		case fetched <- struct{}{}:
		default:
		}

		return nil
	}, slog.Default(), WithInterval(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go supervisor.Run(ctx)

	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("expected an immediate fetch before the first tick")
	}
}

func TestSupervisor_Run_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	supervisor := NewSupervisor(func(_ context.Context) error {
		calls.Add(1)

		return nil
	}, slog.Default(), WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})

	go func() {
		supervisor.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, 2*time.Second, time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestSupervisor_Tick_SkipsWhileFetchInFlight(t *testing.T) {
	t.Parallel()

	var started atomic.Int32

	release := make(chan struct{})

	supervisor := NewSupervisor(func(_ context.Context) error {
		started.Add(1)
		<-release

		return nil
	}, slog.Default(), WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go supervisor.Run(ctx)

	require.Eventually(t, func() bool {
		return started.Load() == 1
	}, 2*time.Second, time.Millisecond)

	// Several intervals pass while the first fetch blocks; none of the
	// ticks may start a second one.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), started.Load())

	close(release)

	require.Eventually(t, func() bool {
		return started.Load() >= 2
	}, 2*time.Second, time.Millisecond)
}

func TestSupervisor_Run_ContinuesAfterFetchError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	supervisor := NewSupervisor(func(_ context.Context) error {
		if calls.Add(1) == 1 {
			return errors.New("transient failure")
		}

		return nil
	}, slog.Default(), WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go supervisor.Run(ctx)

	require.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, 2*time.Second, time.Millisecond)
}
