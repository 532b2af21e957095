package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aihub/hubadmin/pkg/channels/gochannel"
	"github.com/aihub/hubadmin/pkg/eventbus"
	"github.com/aihub/hubadmin/pkg/events"
	"github.com/aihub/hubadmin/pkg/models"
)

func newTestBus(t *testing.T) eventbus.EventBus {
	t.Helper()

	pub, sub, err := gochannel.CreateTestChannel(watermill.NewSlogLogger(nil))
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	t.Cleanup(func() {
		if err := bus.Close(); err != nil {
			t.Logf("Failed to close event bus: %v", err)
		}
	})

	return bus
}

func TestWatermillEventBus_PublishAndHandle(t *testing.T) {
	bus := newTestBus(t)

	received := make(chan *events.AuthDebugLog, 1)

	err := bus.Handle(events.AuthDebugLogEvent, func(_ context.Context, event any) error {
		entry, ok := event.(*events.AuthDebugLog)
		require.True(t, ok)

		received <- entry

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(t.Context()))

	published := events.AuthDebugLog{
		BaseEvent: events.BaseEvent{
			ID:        bus.GenerateID(),
			Type:      events.AuthDebugLogEvent,
			Timestamp: time.Now().UTC(),
		},
		Entry: models.DebugLogEntry{
			Level:    models.DebugLevelInfo,
			Provider: "keycloak",
			Event:    "login_started",
		},
	}

	require.NoError(t, bus.Publish(t.Context(), "keycloak", published))

	select {
	case got := <-received:
		assert.Equal(t, published.ID, got.ID)
		assert.Equal(t, "keycloak", got.Entry.Provider)
		assert.Equal(t, "login_started", got.Entry.Event)
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for event delivery")
	}
}

func TestWatermillEventBus_UnhandledTypesAreSkipped(t *testing.T) {
	bus := newTestBus(t)

	cancelRequests := make(chan *events.ExecutionCancelRequested, 2)

	err := bus.Handle(events.ExecutionCancelRequestedEvent, func(_ context.Context, event any) error {
		request, ok := event.(*events.ExecutionCancelRequested)
		require.True(t, ok)

		cancelRequests <- request

		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Subscribe(t.Context()))

	// No handler registered for provider changes; the cancel request behind
	// it must still arrive.
	unhandled := events.ProviderChanged{EntityChanged: events.EntityChanged{
		BaseEvent: events.BaseEvent{ID: bus.GenerateID(), Type: events.ProviderChangedEvent, Timestamp: time.Now().UTC()},
		EntityID:  "prov-1",
		Action:    "updated",
	}}
	require.NoError(t, bus.Publish(t.Context(), "prov-1", unhandled))

	wanted := events.ExecutionCancelRequested{
		BaseEvent:   events.BaseEvent{ID: bus.GenerateID(), Type: events.ExecutionCancelRequestedEvent, Timestamp: time.Now().UTC()},
		ExecutionID: "exec-1",
	}
	require.NoError(t, bus.Publish(t.Context(), "exec-1", wanted))

	select {
	case got := <-cancelRequests:
		assert.Equal(t, "exec-1", got.ExecutionID)
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for cancel request")
	}
}

func TestWatermillEventBus_GenerateID(t *testing.T) {
	bus := newTestBus(t)

	first := bus.GenerateID()
	second := bus.GenerateID()

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
