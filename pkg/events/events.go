// Package events defines the event types published on the admin event bus.
package events

import (
	"time"

	"github.com/aihub/hubadmin/pkg/models"
)

type EventType string

// Topic is the single bus topic all admin events travel on.
const Topic = "hubadmin.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Authentication debug stream events.
	AuthDebugLogEvent     EventType = "auth.debug.log"
	AuthDebugClearedEvent EventType = "auth.debug.cleared"

	// Entity lifecycle events.
	ProviderChangedEvent    EventType = "provider.changed"
	SourceChangedEvent      EventType = "source.changed"
	OAuthClientChangedEvent EventType = "oauth_client.changed"
	ConfigChangedEvent      EventType = "config.changed"

	// Workflow execution projection events, fed by the execution engine.
	ExecutionUpdatedEvent         EventType = "execution.updated"
	ExecutionCancelRequestedEvent EventType = "execution.cancel.requested"
	ExecutionPauseRequestedEvent  EventType = "execution.pause.requested"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// AuthDebugLog carries one debug log entry onto the stream.
type AuthDebugLog struct {
	BaseEvent

	Entry models.DebugLogEntry `json:"entry"`
}

func (e AuthDebugLog) GetType() EventType {
	return AuthDebugLogEvent
}

// AuthDebugCleared signals that the debug buffer was emptied.
type AuthDebugCleared struct {
	BaseEvent
}

func (e AuthDebugCleared) GetType() EventType {
	return AuthDebugClearedEvent
}

// EntityChanged is the generic lifecycle notification for CRUD entities.
type EntityChanged struct {
	BaseEvent

	EntityID string `json:"entity_id"`
	Action   string `json:"action"` // "created", "updated", "deleted"
}

type ProviderChanged struct{ EntityChanged }

func (e ProviderChanged) GetType() EventType {
	return ProviderChangedEvent
}

type SourceChanged struct{ EntityChanged }

func (e SourceChanged) GetType() EventType {
	return SourceChangedEvent
}

type OAuthClientChanged struct{ EntityChanged }

func (e OAuthClientChanged) GetType() EventType {
	return OAuthClientChangedEvent
}

type ConfigChanged struct {
	BaseEvent

	Section string `json:"section"` // "auth", "oauth", "branding", ...
}

func (e ConfigChanged) GetType() EventType {
	return ConfigChangedEvent
}

// ExecutionUpdated mirrors one engine-side state change into the projection.
type ExecutionUpdated struct {
	BaseEvent

	Execution models.WorkflowExecution `json:"execution"`
}

func (e ExecutionUpdated) GetType() EventType {
	return ExecutionUpdatedEvent
}

// ExecutionCancelRequested relays an operator cancel to the engine.
type ExecutionCancelRequested struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
}

func (e ExecutionCancelRequested) GetType() EventType {
	return ExecutionCancelRequestedEvent
}

// ExecutionPauseRequested relays an operator pause to the engine.
type ExecutionPauseRequested struct {
	BaseEvent

	ExecutionID string `json:"execution_id"`
}

func (e ExecutionPauseRequested) GetType() EventType {
	return ExecutionPauseRequestedEvent
}
