package models

import "time"

// PlatformConfig is the tenant-wide settings document read and partially
// written by most admin surfaces. Sections are updated independently.
type PlatformConfig struct {
	Auth         AuthConfig         `json:"auth"`
	OAuth        OAuthConfig        `json:"oauth"`
	CloudStorage CloudStorageConfig `json:"cloud_storage"`
	Branding     BrandingConfig     `json:"branding"`
	LogLevel     string             `json:"log_level"      validate:"omitempty,oneof=debug info warn error"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// AuthConfig toggles the available authentication methods.
type AuthConfig struct {
	LocalEnabled bool `json:"local_enabled"`
	LDAPEnabled  bool `json:"ldap_enabled"`
	OIDCEnabled  bool `json:"oidc_enabled"`
}

// OAuthConfig controls whether the platform acts as an OAuth provider.
type OAuthConfig struct {
	Enabled        bool   `json:"enabled"`
	Issuer         string `json:"issuer,omitempty"          validate:"omitempty,url"`
	TokenTTLSecs   int    `json:"token_ttl_secs,omitempty"  validate:"omitempty,min=60"`
	RefreshEnabled bool   `json:"refresh_enabled"`
}

// CloudStorageConfig holds the configured cloud storage integrations.
type CloudStorageConfig struct {
	Enabled   bool                   `json:"enabled"`
	Providers []CloudStorageProvider `json:"providers,omitempty"`
}

type CloudStorageProvider struct {
	Name     string         `json:"name"      validate:"required"`
	Kind     string         `json:"kind"      validate:"required,oneof=s3 gcs azure webdav"`
	Config   map[string]any `json:"config"`
	ReadOnly bool           `json:"read_only"`
}

// BrandingConfig holds the UI customization blocks.
type BrandingConfig struct {
	Header  LocalizedText `json:"header,omitempty"`
	Footer  LocalizedText `json:"footer,omitempty"`
	Style   string        `json:"style,omitempty"`
	Content LocalizedText `json:"content,omitempty"`
}

// DefaultPlatformConfig returns the configuration a fresh tenant starts with.
func DefaultPlatformConfig() *PlatformConfig {
	return &PlatformConfig{
		Auth: AuthConfig{
			LocalEnabled: true,
		},
		OAuth: OAuthConfig{
			TokenTTLSecs: 3600,
		},
		LogLevel: "info",
	}
}
