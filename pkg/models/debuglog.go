package models

import "time"

// DebugLogLevel is the severity of an authentication debug event.
type DebugLogLevel string

const (
	DebugLevelDebug DebugLogLevel = "debug"
	DebugLevelInfo  DebugLogLevel = "info"
	DebugLevelWarn  DebugLogLevel = "warn"
	DebugLevelError DebugLogLevel = "error"
)

// DebugLogEntry is one authentication debug event. Entries are append-only
// and held in a bounded in-memory buffer, never persisted.
type DebugLogEntry struct {
	Level     DebugLogLevel  `json:"level"`
	Provider  string         `json:"provider,omitempty"`
	Event     string         `json:"event"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
