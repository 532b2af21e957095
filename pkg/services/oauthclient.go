package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aihub/hubadmin/pkg/events"
	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// OAuthClient manages registered OAuth applications. Secrets are write-once:
// the plaintext is generated here, returned to the caller exactly once, and
// only a bcrypt hash is stored.
type OAuthClient struct {
	persistence persistence.Persistence
	publisher   EventPublisher
	signingKey  []byte
}

func NewOAuthClient(persistence persistence.Persistence, publisher EventPublisher, signingKey []byte) *OAuthClient {
	return &OAuthClient{
		persistence: persistence,
		publisher:   publisher,
		signingKey:  signingKey,
	}
}

// CreatedClient pairs a stored client with its one-time plaintext secret.
type CreatedClient struct {
	Client *models.OAuthClient `json:"client"`
	Secret string              `json:"secret"`
}

func (s *OAuthClient) List(ctx context.Context) ([]*models.OAuthClient, error) {
	clients, err := s.persistence.OAuthClients().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list oauth clients: %w", err)
	}

	return clients, nil
}

func (s *OAuthClient) FetchByID(ctx context.Context, id string) (*models.OAuthClient, error) {
	return s.persistence.OAuthClients().GetByID(ctx, id)
}

// Create stores a new client and returns the plaintext secret exactly once.
func (s *OAuthClient) Create(ctx context.Context, client *models.OAuthClient) (*CreatedClient, error) {
	if client.Name == "" {
		return nil, ErrNameRequired
	}

	if len(client.GrantTypes) == 0 {
		return nil, fmt.Errorf("%w: at least one grant type required", ErrInvalidGrantType)
	}

	secret, hash, err := generateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate client secret: %w", err)
	}

	now := time.Now().UTC()

	if client.ID == "" {
		client.ID = uuid.New().String()
	}

	client.SecretHash = hash
	client.Active = true
	client.CreatedAt = now
	client.UpdatedAt = now

	if err := s.persistence.OAuthClients().Save(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to save oauth client: %w", err)
	}

	s.notify(ctx, client.ID, "created")

	return &CreatedClient{Client: client, Secret: secret}, nil
}

// RegenerateSecret replaces the stored hash and hands out a fresh plaintext.
// The previous secret stops working immediately.
func (s *OAuthClient) RegenerateSecret(ctx context.Context, id string) (*CreatedClient, error) {
	client, err := s.persistence.OAuthClients().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	secret, hash, err := generateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate client secret: %w", err)
	}

	client.SecretHash = hash
	client.UpdatedAt = time.Now().UTC()

	if err := s.persistence.OAuthClients().Save(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to save oauth client: %w", err)
	}

	s.notify(ctx, id, "updated")

	return &CreatedClient{Client: client, Secret: secret}, nil
}

// SetActive toggles the client and reports the stored state back.
func (s *OAuthClient) SetActive(ctx context.Context, id string, active bool) (*models.OAuthClient, error) {
	client, err := s.persistence.OAuthClients().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Active = active
	client.UpdatedAt = time.Now().UTC()

	if err := s.persistence.OAuthClients().Save(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to save oauth client: %w", err)
	}

	s.notify(ctx, id, "updated")

	return client, nil
}

func (s *OAuthClient) Delete(ctx context.Context, id string) error {
	if err := s.persistence.OAuthClients().Delete(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, id, "deleted")

	return nil
}

// VerifySecret checks a presented plaintext against the stored hash.
func (s *OAuthClient) VerifySecret(ctx context.Context, id, secret string) error {
	client, err := s.persistence.OAuthClients().GetByID(ctx, id)
	if err != nil {
		return err
	}

	return bcrypt.CompareHashAndPassword([]byte(client.SecretHash), []byte(secret))
}

// IssueToken mints a short-lived JWT for an active client, for operators
// testing integrations against the hub.
func (s *OAuthClient) IssueToken(ctx context.Context, id string, ttl time.Duration) (string, error) {
	client, err := s.persistence.OAuthClients().GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !client.Active {
		return "", ErrClientInactive
	}

	if ttl <= 0 {
		ttl = time.Hour
	}

	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    client.ID,
		"name":   client.Name,
		"scopes": client.Scopes,
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *OAuthClient) notify(ctx context.Context, id, action string) {
	if s.publisher == nil {
		return
	}

	event := events.OAuthClientChanged{EntityChanged: events.EntityChanged{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.OAuthClientChangedEvent,
			Timestamp: time.Now().UTC(),
		},
		EntityID: id,
		Action:   action,
	}}

	_ = s.publisher.Publish(ctx, id, event)
}

func generateSecret() (secret, hash string, err error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}

	secret = hex.EncodeToString(raw)

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	return secret, string(hashed), nil
}
