package models

import "time"

// ProviderType identifies the authentication protocol a provider speaks.
type ProviderType string

const (
	ProviderTypeOIDC ProviderType = "oidc"
	ProviderTypeLDAP ProviderType = "ldap"
	ProviderTypeSAML ProviderType = "saml"
)

// AuthProvider is an external authentication provider configured for the tenant.
type AuthProvider struct {
	ID          string         `json:"id"`
	Type        ProviderType   `json:"type"        validate:"required,oneof=oidc ldap saml"`
	Name        LocalizedText  `json:"name"        validate:"required"`
	Description LocalizedText  `json:"description,omitempty"`
	Config      map[string]any `json:"config"`
	Enabled     bool           `json:"enabled"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Validate checks the invariants the struct tags cannot express.
func (p *AuthProvider) Validate() error {
	return p.Name.Validate()
}
