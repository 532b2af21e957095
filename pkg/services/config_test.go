package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aihub/hubadmin/pkg/models"
)

type captureCache struct {
	invalidations int
}

func (c *captureCache) InvalidateConfig(_ context.Context) error {
	c.invalidations++

	return nil
}

func TestConfig_Get_ReturnsDefaultsWhenUnset(t *testing.T) {
	t.Parallel()

	service := NewConfig(newTestPersistence(t), nil, nil)

	config, err := service.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.NotEmpty(t, config.LogLevel)
}

func TestConfig_UpdateOAuth_PersistsToggle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewConfig(newTestPersistence(t), nil, nil)

	updated, err := service.UpdateOAuth(ctx, models.OAuthConfig{Enabled: true})
	require.NoError(t, err)
	assert.True(t, updated.OAuth.Enabled)

	// A fresh read reflects the toggle without any restart.
	reread, err := service.Get(ctx)
	require.NoError(t, err)
	assert.True(t, reread.OAuth.Enabled)

	updated, err = service.UpdateOAuth(ctx, models.OAuthConfig{Enabled: false})
	require.NoError(t, err)
	assert.False(t, updated.OAuth.Enabled)
}

func TestConfig_SectionUpdatesAreIndependent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewConfig(newTestPersistence(t), nil, nil)

	_, err := service.UpdateBranding(ctx, models.BrandingConfig{
		Header: models.LocalizedText{"en": "Acme AI Hub"},
	})
	require.NoError(t, err)

	_, err = service.UpdateOAuth(ctx, models.OAuthConfig{Enabled: true})
	require.NoError(t, err)

	config, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme AI Hub", config.Branding.Header["en"])
	assert.True(t, config.OAuth.Enabled)
}

func TestConfig_UpdateLogLevel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewConfig(newTestPersistence(t), nil, nil)

	updated, err := service.UpdateLogLevel(ctx, "debug")
	require.NoError(t, err)
	assert.Equal(t, "debug", updated.LogLevel)

	_, err = service.UpdateLogLevel(ctx, "verbose")
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.True(t, IsValidationError(err))
}

func TestConfig_UpdateInvalidatesCache(t *testing.T) {
	t.Parallel()

	cache := &captureCache{}
	service := NewConfig(newTestPersistence(t), nil, cache)

	_, err := service.UpdateLogLevel(context.Background(), "warn")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidations)
}

func TestConfig_NotifiesOnUpdate(t *testing.T) {
	t.Parallel()

	publisher := &capturePublisher{}
	service := NewConfig(newTestPersistence(t), publisher, nil)

	_, err := service.UpdateAuth(context.Background(), models.AuthConfig{
		OIDCEnabled: true,
	})
	require.NoError(t, err)

	assert.Len(t, publisher.published(), 1)
}
