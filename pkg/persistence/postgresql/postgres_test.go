package postgresql_test

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
	"github.com/aihub/hubadmin/pkg/persistence/postgresql"
)

var postgresContainer *postgres.PostgresContainer

func dropDb(ctx context.Context, t *testing.T, databaseURL string) {
	t.Helper()

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	for _, table := range []string{"short_links", "skills", "workflow_executions", "workflows", "sources", "oauth_clients", "auth_providers", "platform_config", "schema_migrations"} {
		_, err = db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE")
		require.NoError(t, err)
	}

	err = db.Close()
	require.NoError(t, err)
}

func setupTestDB(t *testing.T) (*postgresql.Persistence, context.Context, string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	if postgresContainer == nil || !postgresContainer.IsRunning() {
		var err error

		postgresContainer, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("hubadmin_test"),
			postgres.WithUsername("hubadmin"),
			postgres.WithPassword("hubadmin"),
			postgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
	}

	databaseURL, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	dropDb(ctx, t, databaseURL)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := postgresql.NewPersistence(ctx, logger, databaseURL)
	require.NoError(t, err)

	t.Cleanup(func() {
		dropDb(ctx, t, databaseURL)

		err = store.Close(ctx)
		require.NoError(t, err)

		cancel()
	})

	return store, ctx, databaseURL
}

func TestNewPersistence_Migrations(t *testing.T) {
	_, ctx, databaseURL := setupTestDB(t)

	db, err := sql.Open("postgres", databaseURL)
	require.NoError(t, err)

	defer func() {
		err := db.Close()
		require.NoError(t, err)
	}()

	var exists bool

	err = db.QueryRowContext(ctx, `SELECT EXISTS (SELECT FROM
information_schema.tables WHERE table_name = 'auth_providers')`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "auth_providers table should exist")

	err = db.QueryRowContext(ctx, `SELECT EXISTS (SELECT FROM
information_schema.tables WHERE table_name = 'schema_migrations')`).Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists, "schema_migrations table should exist")

	var version int

	err = db.QueryRowContext(ctx, "SELECT version FROM schema_migrations WHERE version = 1").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewPersistence_HealthCheck(t *testing.T) {
	p, ctx, _ := setupTestDB(t)

	err := p.HealthCheck(ctx)
	assert.NoError(t, err)
}

func TestNewPersistence_SaveAndRetrieveProvider(t *testing.T) {
	p, ctx, _ := setupTestDB(t)

	now := time.Now().UTC()
	provider := &models.AuthProvider{
		ID:   uuid.NewString(),
		Type: models.ProviderTypeOIDC,
		Name: models.LocalizedText{"en": "Corporate Keycloak", "de": "Firmen-Keycloak"},
		Config: map[string]any{
			"issuer":    "https://idp.example.com/realms/hub",
			"client_id": "hub-admin",
		},
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := p.Providers().Save(ctx, provider)
	require.NoError(t, err)

	retrieved, err := p.Providers().GetByID(ctx, provider.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved)

	assert.Equal(t, provider.ID, retrieved.ID)
	assert.Equal(t, models.ProviderTypeOIDC, retrieved.Type)
	assert.Equal(t, "Corporate Keycloak", retrieved.Name["en"])
	assert.Equal(t, "Firmen-Keycloak", retrieved.Name["de"])
	assert.Equal(t, "https://idp.example.com/realms/hub", retrieved.Config["issuer"])
	assert.True(t, retrieved.Enabled)

	_, err = p.Providers().GetByID(ctx, uuid.NewString())
	require.Error(t, err)
	assert.True(t, persistence.IsProviderNotFound(err))
}

func TestNewPersistence_UpdateProvider(t *testing.T) {
	p, ctx, _ := setupTestDB(t)

	now := time.Now().UTC()
	provider := &models.AuthProvider{
		ID:        uuid.NewString(),
		Type:      models.ProviderTypeLDAP,
		Name:      models.LocalizedText{"en": "Directory"},
		Config:    map[string]any{"host": "ldap.example.com"},
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := p.Providers().Save(ctx, provider)
	require.NoError(t, err)

	provider.Name = models.LocalizedText{"en": "Directory (legacy)"}
	provider.Enabled = false
	provider.UpdatedAt = now.Add(time.Second)

	err = p.Providers().Save(ctx, provider)
	require.NoError(t, err)

	retrieved, err := p.Providers().GetByID(ctx, provider.ID)
	require.NoError(t, err)

	assert.Equal(t, "Directory (legacy)", retrieved.Name["en"])
	assert.False(t, retrieved.Enabled)
	assert.True(t, retrieved.UpdatedAt.After(retrieved.CreatedAt))
}

func TestNewPersistence_DeleteProvider(t *testing.T) {
	p, ctx, _ := setupTestDB(t)

	now := time.Now().UTC()
	provider := &models.AuthProvider{
		ID:        uuid.NewString(),
		Type:      models.ProviderTypeSAML,
		Name:      models.LocalizedText{"en": "Legacy SSO"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := p.Providers().Save(ctx, provider)
	require.NoError(t, err)

	err = p.Providers().Delete(ctx, provider.ID)
	require.NoError(t, err)

	_, err = p.Providers().GetByID(ctx, provider.ID)
	assert.True(t, persistence.IsProviderNotFound(err))

	err = p.Providers().Delete(ctx, provider.ID)
	assert.True(t, persistence.IsProviderNotFound(err))
}

func TestNewPersistence_PlatformConfigRoundTrip(t *testing.T) {
	p, ctx, _ := setupTestDB(t)

	// An empty store returns the defaults.
	config, err := p.Config().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "info", config.LogLevel)
	assert.True(t, config.Auth.LocalEnabled)

	config.LogLevel = "debug"
	config.OAuth.Enabled = true
	config.OAuth.Issuer = "https://hub.example.com"
	config.UpdatedAt = time.Now().UTC()

	err = p.Config().Save(ctx, config)
	require.NoError(t, err)

	reread, err := p.Config().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "debug", reread.LogLevel)
	assert.True(t, reread.OAuth.Enabled)
	assert.Equal(t, "https://hub.example.com", reread.OAuth.Issuer)
}

func TestNewPersistence_ListExecutions(t *testing.T) {
	p, ctx, _ := setupTestDB(t)

	workflowID := uuid.NewString()
	otherWorkflowID := uuid.NewString()
	base := time.Now().UTC().Add(-time.Hour)

	executions := []*models.WorkflowExecution{
		{
			ID:         uuid.NewString(),
			WorkflowID: workflowID,
			Status:     models.ExecutionStatusCompleted,
			StartedAt:  base,
			UpdatedAt:  base,
		},
		{
			ID:         uuid.NewString(),
			WorkflowID: workflowID,
			Status:     models.ExecutionStatusRunning,
			StartedAt:  base.Add(10 * time.Minute),
			UpdatedAt:  base.Add(10 * time.Minute),
		},
		{
			ID:         uuid.NewString(),
			WorkflowID: otherWorkflowID,
			Status:     models.ExecutionStatusFailed,
			StartedAt:  base.Add(20 * time.Minute),
			UpdatedAt:  base.Add(20 * time.Minute),
		},
	}

	for _, execution := range executions {
		err := p.Executions().Save(ctx, execution)
		require.NoError(t, err)
	}

	result, err := p.Executions().List(ctx, persistence.ListExecutionsOptions{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.TotalCount)
	require.Len(t, result.Executions, 3)
	// Newest first.
	assert.Equal(t, executions[2].ID, result.Executions[0].ID)
	assert.Equal(t, executions[0].ID, result.Executions[2].ID)
	assert.False(t, result.HasNextPage)

	byWorkflow, err := p.Executions().List(ctx, persistence.ListExecutionsOptions{WorkflowID: workflowID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byWorkflow.TotalCount)

	running := models.ExecutionStatusRunning

	byStatus, err := p.Executions().List(ctx, persistence.ListExecutionsOptions{Status: &running})
	require.NoError(t, err)
	require.Len(t, byStatus.Executions, 1)
	assert.Equal(t, executions[1].ID, byStatus.Executions[0].ID)

	paged, err := p.Executions().List(ctx, persistence.ListExecutionsOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, paged.Executions, 2)
	assert.True(t, paged.HasNextPage)
}

func TestNewPersistence_ExecutionFinishedAt(t *testing.T) {
	p, ctx, _ := setupTestDB(t)

	started := time.Now().UTC().Add(-time.Minute)
	finished := started.Add(30 * time.Second)

	execution := &models.WorkflowExecution{
		ID:          uuid.NewString(),
		WorkflowID:  uuid.NewString(),
		Status:      models.ExecutionStatusFailed,
		CurrentStep: "fetch-documents",
		Error:       "connection refused",
		StartedAt:   started,
		FinishedAt:  &finished,
		UpdatedAt:   finished,
	}

	err := p.Executions().Save(ctx, execution)
	require.NoError(t, err)

	retrieved, err := p.Executions().GetByID(ctx, execution.ID)
	require.NoError(t, err)

	assert.Equal(t, "fetch-documents", retrieved.CurrentStep)
	assert.Equal(t, "connection refused", retrieved.Error)
	require.NotNil(t, retrieved.FinishedAt)
	assert.WithinDuration(t, finished, *retrieved.FinishedAt, time.Second)
}

func TestNewPersistence_ShortLinkHits(t *testing.T) {
	p, ctx, _ := setupTestDB(t)

	link := &models.ShortLink{
		Code:      "docs42",
		Target:    "app://document/42",
		CreatedBy: "ops@example.com",
		CreatedAt: time.Now().UTC(),
	}

	err := p.ShortLinks().Save(ctx, link)
	require.NoError(t, err)

	link.Hits = 3

	err = p.ShortLinks().Save(ctx, link)
	require.NoError(t, err)

	retrieved, err := p.ShortLinks().GetByCode(ctx, "docs42")
	require.NoError(t, err)
	assert.Equal(t, int64(3), retrieved.Hits)
	assert.Equal(t, "ops@example.com", retrieved.CreatedBy)

	_, err = p.ShortLinks().GetByCode(ctx, "unknown")
	assert.True(t, persistence.IsShortLinkNotFound(err))
}
