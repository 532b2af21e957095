package debuglog

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aihub/hubadmin/pkg/models"
)

func newTestEntry(provider, event string) models.DebugLogEntry {
	return models.DebugLogEntry{
		Level:     models.DebugLevelInfo,
		Provider:  provider,
		Event:     event,
		Timestamp: time.Now().UTC(),
	}
}

func TestHub_Append_NewestFirst(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())

	hub.Append(newTestEntry("keycloak", "first"))
	hub.Append(newTestEntry("keycloak", "second"))
	hub.Append(newTestEntry("keycloak", "third"))

	entries := hub.Snapshot("")
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Event)
	assert.Equal(t, "second", entries[1].Event)
	assert.Equal(t, "first", entries[2].Event)
}

func TestHub_Append_EvictsOldestAtCapacity(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())

	for i := range DefaultCapacity + 1 {
		hub.Append(newTestEntry("keycloak", fmt.Sprintf("event-%d", i)))
	}

	entries := hub.Snapshot("")
	require.Len(t, entries, DefaultCapacity)

	// The newest entry leads, the very first one was evicted.
	assert.Equal(t, fmt.Sprintf("event-%d", DefaultCapacity), entries[0].Event)
	assert.Equal(t, "event-1", entries[len(entries)-1].Event)
}

func TestHub_CustomCapacity(t *testing.T) {
	t.Parallel()

	hub := NewHubWithCapacity(slog.Default(), 3)

	for i := range 5 {
		hub.Append(newTestEntry("", fmt.Sprintf("event-%d", i)))
	}

	entries := hub.Snapshot("")
	require.Len(t, entries, 3)
	assert.Equal(t, "event-4", entries[0].Event)
	assert.Equal(t, "event-2", entries[2].Event)
}

func TestHub_Clear(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())

	hub.Append(newTestEntry("keycloak", "login_started"))
	hub.Append(newTestEntry("keycloak", "login_failed"))
	require.Equal(t, 2, hub.Len())

	hub.Clear()

	assert.Equal(t, 0, hub.Len())
	assert.Empty(t, hub.Snapshot(""))
}

func TestHub_Snapshot_ProviderFilter(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())

	hub.Append(newTestEntry("keycloak", "token_issued"))
	hub.Append(newTestEntry("azure-ad", "token_issued"))
	hub.Append(newTestEntry("keycloak", "token_refreshed"))

	entries := hub.Snapshot("keycloak")
	require.Len(t, entries, 2)
	assert.Equal(t, "token_refreshed", entries[0].Event)
	assert.Equal(t, "token_issued", entries[1].Event)

	assert.Len(t, hub.Snapshot("azure-ad"), 1)
	assert.Len(t, hub.Snapshot(""), 3)
}

func TestHub_Subscribe_ReceivesEnvelopes(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())

	envelopes, cancel := hub.Subscribe("")
	defer cancel()

	hub.Append(newTestEntry("keycloak", "login_started"))

	select {
	case envelope := <-envelopes:
		assert.Equal(t, EnvelopeTypeLog, envelope.Type)
		require.NotNil(t, envelope.Data)
		assert.Equal(t, "login_started", envelope.Data.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a log envelope")
	}

	hub.Clear()

	select {
	case envelope := <-envelopes:
		assert.Equal(t, EnvelopeTypeCleared, envelope.Type)
		assert.Nil(t, envelope.Data)
	case <-time.After(time.Second):
		t.Fatal("expected a cleared envelope")
	}
}

func TestHub_Subscribe_ProviderFilter(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())

	envelopes, cancel := hub.Subscribe("keycloak")
	defer cancel()

	hub.Append(newTestEntry("azure-ad", "ignored"))
	hub.Append(newTestEntry("keycloak", "matched"))

	select {
	case envelope := <-envelopes:
		require.NotNil(t, envelope.Data)
		assert.Equal(t, "matched", envelope.Data.Event)
	case <-time.After(time.Second):
		t.Fatal("expected the matching envelope")
	}

	select {
	case envelope := <-envelopes:
		t.Fatalf("unexpected extra envelope: %+v", envelope)
	default:
	}
}

func TestHub_Subscribe_CancelClosesChannel(t *testing.T) {
	t.Parallel()

	hub := NewHub(slog.Default())

	envelopes, cancel := hub.Subscribe("")

	cancel()
	cancel() // idempotent

	_, open := <-envelopes
	assert.False(t, open)

	// Appending after cancel must not panic on the closed channel.
	hub.Append(newTestEntry("keycloak", "after_cancel"))
}
