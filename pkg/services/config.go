package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aihub/hubadmin/pkg/events"
	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// Config reads and updates the platform configuration document. Sections
// update independently so concurrent editors do not clobber each other's
// unrelated changes.
type Config struct {
	persistence persistence.Persistence
	publisher   EventPublisher
	cache       ConfigCache
}

// ConfigCache invalidates externally cached copies of the platform config.
// A nil cache disables invalidation.
type ConfigCache interface {
	InvalidateConfig(ctx context.Context) error
}

func NewConfig(persistence persistence.Persistence, publisher EventPublisher, cache ConfigCache) *Config {
	return &Config{
		persistence: persistence,
		publisher:   publisher,
		cache:       cache,
	}
}

func (s *Config) Get(ctx context.Context) (*models.PlatformConfig, error) {
	config, err := s.persistence.Config().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform config: %w", err)
	}

	return config, nil
}

// UpdateAuth replaces the auth section.
func (s *Config) UpdateAuth(ctx context.Context, auth models.AuthConfig) (*models.PlatformConfig, error) {
	return s.patch(ctx, "auth", func(config *models.PlatformConfig) {
		config.Auth = auth
	})
}

// UpdateOAuth replaces the oauth section. Toggling Enabled persists
// immediately and is reflected by the next Get without restart.
func (s *Config) UpdateOAuth(ctx context.Context, oauth models.OAuthConfig) (*models.PlatformConfig, error) {
	return s.patch(ctx, "oauth", func(config *models.PlatformConfig) {
		config.OAuth = oauth
	})
}

// UpdateCloudStorage replaces the cloud storage section.
func (s *Config) UpdateCloudStorage(ctx context.Context, storage models.CloudStorageConfig) (*models.PlatformConfig, error) {
	return s.patch(ctx, "cloud_storage", func(config *models.PlatformConfig) {
		config.CloudStorage = storage
	})
}

// UpdateBranding replaces the branding section.
func (s *Config) UpdateBranding(ctx context.Context, branding models.BrandingConfig) (*models.PlatformConfig, error) {
	return s.patch(ctx, "branding", func(config *models.PlatformConfig) {
		config.Branding = branding
	})
}

// UpdateLogLevel changes the persisted logging level.
func (s *Config) UpdateLogLevel(ctx context.Context, level string) (*models.PlatformConfig, error) {
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("%w: unknown log level %q", ErrInvalidRequest, level)
	}

	return s.patch(ctx, "log_level", func(config *models.PlatformConfig) {
		config.LogLevel = level
	})
}

func (s *Config) patch(ctx context.Context, section string, apply func(*models.PlatformConfig)) (*models.PlatformConfig, error) {
	config, err := s.persistence.Config().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform config: %w", err)
	}

	apply(config)
	config.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Config().Save(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to save platform config: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateConfig(ctx); err != nil {
			return nil, fmt.Errorf("failed to invalidate config cache: %w", err)
		}
	}

	s.notify(ctx, section)

	return config, nil
}

func (s *Config) notify(ctx context.Context, section string) {
	if s.publisher == nil {
		return
	}

	event := events.ConfigChanged{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.ConfigChangedEvent,
			Timestamp: time.Now().UTC(),
		},
		Section: section,
	}

	_ = s.publisher.Publish(ctx, "platform", event)
}
