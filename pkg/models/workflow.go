package models

import "time"

// Workflow is a stored automation definition. The execution engine is a
// separate system; the admin service owns the definition and serves a
// read-only projection of execution state.
type Workflow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"        validate:"required,min=3"`
	Description string          `json:"description"`
	Steps       []*WorkflowStep `json:"steps"`
	Variables   map[string]any  `json:"variables,omitempty"`
	Enabled     bool            `json:"enabled"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WorkflowStep is a single node of a workflow definition.
type WorkflowStep struct {
	ID      string         `json:"id"      validate:"required"`
	Name    string         `json:"name"    validate:"required,min=1"`
	Type    string         `json:"type"    validate:"required"`
	Config  map[string]any `json:"config"`
	Next    []string       `json:"next,omitempty"`
	Enabled bool           `json:"enabled"`
}
