package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aihub/hubadmin/pkg/events"
	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// Provider manages authentication provider configurations.
type Provider struct {
	persistence persistence.Persistence
	publisher   EventPublisher
}

func NewProvider(persistence persistence.Persistence, publisher EventPublisher) *Provider {
	return &Provider{
		persistence: persistence,
		publisher:   publisher,
	}
}

// HealthCheck checks the health of the persistence layer.
func (s *Provider) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := s.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

func (s *Provider) List(ctx context.Context) ([]*models.AuthProvider, error) {
	providers, err := s.persistence.Providers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	return providers, nil
}

func (s *Provider) FetchByID(ctx context.Context, id string) (*models.AuthProvider, error) {
	return s.persistence.Providers().GetByID(ctx, id)
}

// Create validates and stores a new provider. The required "en" locale is
// checked before any persistence write.
func (s *Provider) Create(ctx context.Context, provider *models.AuthProvider) (*models.AuthProvider, error) {
	if err := provider.Validate(); err != nil {
		if errors.Is(err, models.ErrMissingDefaultLocale) {
			return nil, ErrMissingDefaultLocale
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	now := time.Now().UTC()

	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}

	provider.CreatedAt = now
	provider.UpdatedAt = now

	if err := s.persistence.Providers().Save(ctx, provider); err != nil {
		return nil, fmt.Errorf("failed to save provider: %w", err)
	}

	s.notify(ctx, provider.ID, "created")

	return provider, nil
}

func (s *Provider) Update(ctx context.Context, provider *models.AuthProvider) (*models.AuthProvider, error) {
	if err := provider.Validate(); err != nil {
		if errors.Is(err, models.ErrMissingDefaultLocale) {
			return nil, ErrMissingDefaultLocale
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	existing, err := s.persistence.Providers().GetByID(ctx, provider.ID)
	if err != nil {
		return nil, err
	}

	provider.CreatedAt = existing.CreatedAt
	provider.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Providers().Save(ctx, provider); err != nil {
		return nil, fmt.Errorf("failed to save provider: %w", err)
	}

	s.notify(ctx, provider.ID, "updated")

	return provider, nil
}

// SetEnabled toggles a provider without touching its configuration.
func (s *Provider) SetEnabled(ctx context.Context, id string, enabled bool) (*models.AuthProvider, error) {
	provider, err := s.persistence.Providers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	provider.Enabled = enabled
	provider.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Providers().Save(ctx, provider); err != nil {
		return nil, fmt.Errorf("failed to save provider: %w", err)
	}

	s.notify(ctx, id, "updated")

	return provider, nil
}

func (s *Provider) Delete(ctx context.Context, id string) error {
	if err := s.persistence.Providers().Delete(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, id, "deleted")

	return nil
}

func (s *Provider) notify(ctx context.Context, id, action string) {
	if s.publisher == nil {
		return
	}

	event := events.ProviderChanged{EntityChanged: events.EntityChanged{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.ProviderChangedEvent,
			Timestamp: time.Now().UTC(),
		},
		EntityID: id,
		Action:   action,
	}}

	// Lifecycle notifications are best effort.
	_ = s.publisher.Publish(ctx, id, event)
}
