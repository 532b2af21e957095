package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aihub/hubadmin/pkg/events"
	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

func TestProvider_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	publisher := &capturePublisher{}
	service := NewProvider(newTestPersistence(t), publisher)

	created, err := service.Create(ctx, &models.AuthProvider{
		Type:    models.ProviderTypeOIDC,
		Name:    models.LocalizedText{"en": "Keycloak", "de": "Keycloak"},
		Config:  map[string]any{"issuer": "https://idp.example.com"},
		Enabled: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	stored, err := service.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keycloak", stored.Name["en"])
	assert.True(t, stored.Enabled)

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.ProviderChangedEvent, published[0].GetType())
}

func TestProvider_Create_RequiresDefaultLocale(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestPersistence(t)
	service := NewProvider(store, nil)

	_, err := service.Create(ctx, &models.AuthProvider{
		Type: models.ProviderTypeOIDC,
		Name: models.LocalizedText{"de": "Nur Deutsch"},
	})
	require.ErrorIs(t, err, ErrMissingDefaultLocale)
	assert.True(t, IsValidationError(err))

	// Validation failed before any write.
	providers, err := store.Providers().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, providers)
}

func TestProvider_Update_KeepsCreatedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewProvider(newTestPersistence(t), nil)

	created, err := service.Create(ctx, &models.AuthProvider{
		Type: models.ProviderTypeLDAP,
		Name: models.LocalizedText{"en": "Corporate LDAP"},
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, &models.AuthProvider{
		ID:   created.ID,
		Type: models.ProviderTypeLDAP,
		Name: models.LocalizedText{"en": "Corporate Directory"},
	})
	require.NoError(t, err)

	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Corporate Directory", updated.Name["en"])
}

func TestProvider_Update_UnknownID(t *testing.T) {
	t.Parallel()

	service := NewProvider(newTestPersistence(t), nil)

	_, err := service.Update(context.Background(), &models.AuthProvider{
		ID:   "missing",
		Type: models.ProviderTypeOIDC,
		Name: models.LocalizedText{"en": "Ghost"},
	})
	assert.True(t, persistence.IsProviderNotFound(err))
}

func TestProvider_SetEnabled(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewProvider(newTestPersistence(t), nil)

	created, err := service.Create(ctx, &models.AuthProvider{
		Type:    models.ProviderTypeSAML,
		Name:    models.LocalizedText{"en": "Azure AD"},
		Config:  map[string]any{"entity_id": "urn:example"},
		Enabled: true,
	})
	require.NoError(t, err)

	disabled, err := service.SetEnabled(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, disabled.Enabled)

	// The configuration survives the toggle.
	assert.Equal(t, "urn:example", disabled.Config["entity_id"])

	stored, err := service.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Enabled)
}

func TestProvider_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewProvider(newTestPersistence(t), nil)

	created, err := service.Create(ctx, &models.AuthProvider{
		Type: models.ProviderTypeOIDC,
		Name: models.LocalizedText{"en": "Short-lived"},
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.FetchByID(ctx, created.ID)
	assert.True(t, persistence.IsProviderNotFound(err))

	err = service.Delete(ctx, created.ID)
	assert.True(t, persistence.IsProviderNotFound(err))
}
