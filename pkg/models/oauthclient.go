package models

import "time"

// GrantType is an OAuth 2.0 grant the client is allowed to use.
type GrantType string

const (
	GrantAuthorizationCode GrantType = "authorization_code"
	GrantClientCredentials GrantType = "client_credentials"
	GrantRefreshToken      GrantType = "refresh_token"
	GrantDeviceCode        GrantType = "device_code"
)

// OAuthClient is a registered OAuth application. The secret is write-once:
// the plaintext is returned exactly once at creation (or regeneration) and
// only the hash is stored. SecretHash never leaves the service.
type OAuthClient struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"          validate:"required,min=3"`
	SecretHash   string      `json:"-"`
	Active       bool        `json:"active"`
	GrantTypes   []GrantType `json:"grant_types"   validate:"required,min=1,dive,oneof=authorization_code client_credentials refresh_token device_code"`
	RedirectURIs []string    `json:"redirect_uris" validate:"dive,url"`
	Scopes       []string    `json:"scopes"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// MaskedSecret is the placeholder shown for the secret in list and get
// responses once the plaintext has been handed out.
const MaskedSecret = "********"

// HasGrant reports whether the client may use the given grant type.
func (c *OAuthClient) HasGrant(grant GrantType) bool {
	for _, g := range c.GrantTypes {
		if g == grant {
			return true
		}
	}

	return false
}
