package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

func TestSource_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewSource(newTestPersistence(t), nil)

	created, err := service.Create(ctx, &models.Source{
		Type:    models.SourceTypeFilesystem,
		Name:    models.LocalizedText{"en": "Shared Drive"},
		Config:  map[string]any{"root_path": "/srv/docs"},
		Enabled: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	stored, err := service.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SourceTypeFilesystem, stored.Type)
}

func TestSource_Create_ConfigSchemaViolation(t *testing.T) {
	t.Parallel()

	service := NewSource(newTestPersistence(t), nil)

	// filesystem sources require root_path.
	_, err := service.Create(context.Background(), &models.Source{
		Type:   models.SourceTypeFilesystem,
		Name:   models.LocalizedText{"en": "Broken"},
		Config: map[string]any{"follow_symlinks": true},
	})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.True(t, IsValidationError(err))
}

func TestSource_Create_UnknownType(t *testing.T) {
	t.Parallel()

	service := NewSource(newTestPersistence(t), nil)

	_, err := service.Create(context.Background(), &models.Source{
		Type: models.SourceType("carrier-pigeon"),
		Name: models.LocalizedText{"en": "Pigeons"},
	})
	assert.ErrorIs(t, err, ErrInvalidSourceType)
}

func TestSource_Create_RequiresDefaultLocale(t *testing.T) {
	t.Parallel()

	service := NewSource(newTestPersistence(t), nil)

	_, err := service.Create(context.Background(), &models.Source{
		Type:   models.SourceTypePage,
		Name:   models.LocalizedText{"fr": "Page"},
		Config: map[string]any{"title": "Accueil"},
	})
	assert.ErrorIs(t, err, ErrMissingDefaultLocale)
}

func TestSource_ConfigSchema(t *testing.T) {
	t.Parallel()

	service := NewSource(newTestPersistence(t), nil)

	schema, err := service.ConfigSchema(models.SourceTypeURL)
	require.NoError(t, err)
	assert.Equal(t, "object", schema["type"])

	_, err = service.ConfigSchema(models.SourceType("bogus"))
	assert.ErrorIs(t, err, ErrInvalidSourceType)
}

func TestSource_SetEnabledAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewSource(newTestPersistence(t), nil)

	created, err := service.Create(ctx, &models.Source{
		Type:    models.SourceTypeURL,
		Name:    models.LocalizedText{"en": "Docs Site"},
		Config:  map[string]any{"url": "https://docs.example.com"},
		Enabled: true,
	})
	require.NoError(t, err)

	disabled, err := service.SetEnabled(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.FetchByID(ctx, created.ID)
	assert.True(t, persistence.IsSourceNotFound(err))
}
