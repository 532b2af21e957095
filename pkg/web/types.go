// Package web provides HTTP request and response types for the admin API.
package web

import (
	"time"

	"github.com/aihub/hubadmin/pkg/models"
)

// CreateProviderRequest represents the request body for registering an
// authentication provider.
type CreateProviderRequest struct {
	Type        string               `json:"type"        validate:"required,oneof=oidc ldap saml"`
	Name        models.LocalizedText `json:"name"        validate:"required"`
	Description models.LocalizedText `json:"description,omitempty"`
	Config      map[string]any       `json:"config"`
	Enabled     bool                 `json:"enabled"`
}

// UpdateProviderRequest represents the request body for updating a provider.
// All fields are optional to support partial updates.
type UpdateProviderRequest struct {
	Name        models.LocalizedText `json:"name,omitempty"`
	Description models.LocalizedText `json:"description,omitempty"`
	Config      map[string]any       `json:"config,omitempty"`
	Enabled     *bool                `json:"enabled,omitempty"`
}

// SetEnabledRequest toggles an entity without touching its configuration.
type SetEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

// CreateOAuthClientRequest represents the request body for registering an
// OAuth application.
type CreateOAuthClientRequest struct {
	Name         string             `json:"name"          validate:"required,min=3"`
	GrantTypes   []models.GrantType `json:"grant_types"   validate:"required,min=1"`
	RedirectURIs []string           `json:"redirect_uris" validate:"omitempty,dive,url"`
	Scopes       []string           `json:"scopes"`
}

// TokenRequest asks for a test token for an OAuth client.
type TokenRequest struct {
	TTLSeconds int `json:"ttl_seconds" validate:"omitempty,min=60,max=86400"`
}

// OAuthClientResponse is the filtered view of a stored client. The secret
// is always masked; the plaintext only appears in CreatedClientResponse.
type OAuthClientResponse struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Secret       string             `json:"secret"`
	Active       bool               `json:"active"`
	GrantTypes   []models.GrantType `json:"grant_types"`
	RedirectURIs []string           `json:"redirect_uris,omitempty"`
	Scopes       []string           `json:"scopes,omitempty"`
	CreatedAt    string             `json:"created_at"`
	UpdatedAt    string             `json:"updated_at"`
}

// TransformOAuthClientResponse masks the stored client for list and get
// responses.
func TransformOAuthClientResponse(client *models.OAuthClient) OAuthClientResponse {
	return OAuthClientResponse{
		ID:           client.ID,
		Name:         client.Name,
		Secret:       models.MaskedSecret,
		Active:       client.Active,
		GrantTypes:   client.GrantTypes,
		RedirectURIs: client.RedirectURIs,
		Scopes:       client.Scopes,
		CreatedAt:    client.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    client.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// CreatedClientResponse carries the one-time plaintext secret alongside the
// masked client view.
type CreatedClientResponse struct {
	Client OAuthClientResponse `json:"client"`
	Secret string              `json:"secret"`
}

// CreateSourceRequest represents the request body for registering a content
// source.
type CreateSourceRequest struct {
	Type        string               `json:"type"        validate:"required,oneof=filesystem url ifinder page"`
	Name        models.LocalizedText `json:"name"        validate:"required"`
	Description models.LocalizedText `json:"description,omitempty"`
	Config      map[string]any       `json:"config"`
	Enabled     bool                 `json:"enabled"`
}

// UpdateSourceRequest represents the request body for updating a source.
// The type cannot change after creation.
type UpdateSourceRequest struct {
	Name        models.LocalizedText `json:"name,omitempty"`
	Description models.LocalizedText `json:"description,omitempty"`
	Config      map[string]any       `json:"config,omitempty"`
	Enabled     *bool                `json:"enabled,omitempty"`
}

// CreateWorkflowRequest represents the request body for creating a workflow
// definition.
type CreateWorkflowRequest struct {
	Name        string                 `json:"name"        validate:"required,min=3"`
	Description string                 `json:"description"`
	Steps       []*models.WorkflowStep `json:"steps"`
	Variables   map[string]any         `json:"variables,omitempty"`
	Enabled     bool                   `json:"enabled"`
}

// UpdateWorkflowRequest represents the request body for updating a workflow.
// All fields are optional to support partial updates.
type UpdateWorkflowRequest struct {
	Name        *string                `json:"name,omitempty"        validate:"omitempty,min=3"`
	Description *string                `json:"description,omitempty"`
	Steps       []*models.WorkflowStep `json:"steps,omitempty"`
	Variables   map[string]any         `json:"variables,omitempty"`
	Enabled     *bool                  `json:"enabled,omitempty"`
}

// UpdateLogLevelRequest changes the persisted logging level.
type UpdateLogLevelRequest struct {
	Level string `json:"level" validate:"required,oneof=debug info warn error"`
}

// DebugLogRequest injects a debug entry through the API, for exercising the
// live stream against a running instance.
type DebugLogRequest struct {
	Level    string         `json:"level"    validate:"omitempty,oneof=debug info warn error"`
	Provider string         `json:"provider"`
	Event    string         `json:"event"    validate:"required"`
	Data     map[string]any `json:"data,omitempty"`
}

// RotateSecretsRequest re-encrypts stored provider secrets under a new
// master key. Both keys are operator-supplied, never persisted.
type RotateSecretsRequest struct {
	CurrentKey string `json:"current_key" validate:"required"`
	NextKey    string `json:"next_key"    validate:"required"`
}
