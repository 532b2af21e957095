// Package postgresql provides PostgreSQL persistence for the admin service.
package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
	"github.com/aihub/hubadmin/pkg/persistence/sqlbase"
)

// Persistence implements the persistence layer on PostgreSQL.
type Persistence struct {
	db         *sql.DB
	logger     *slog.Logger
	configRepo *ConfigRepository
	providers  *ProviderRepository
	clients    *OAuthClientRepository
	sources    *SourceRepository
	workflows  *WorkflowRepository
	executions *ExecutionRepository
	skills     *SkillRepository
	shortLinks *ShortLinkRepository
}

// NewPersistence opens the database, runs migrations, and wires the repositories.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	if err := database.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())
	if err := migrationManager.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:         database,
		logger:     logger,
		configRepo: &ConfigRepository{db: database},
		providers:  &ProviderRepository{db: database},
		clients:    &OAuthClientRepository{db: database},
		sources:    &SourceRepository{db: database},
		workflows:  &WorkflowRepository{db: database},
		executions: &ExecutionRepository{db: database},
		skills:     &SkillRepository{db: database},
		shortLinks: &ShortLinkRepository{db: database},
	}, nil
}

func (p *Persistence) Config() persistence.ConfigRepository            { return p.configRepo }
func (p *Persistence) Providers() persistence.ProviderRepository       { return p.providers }
func (p *Persistence) OAuthClients() persistence.OAuthClientRepository { return p.clients }
func (p *Persistence) Sources() persistence.SourceRepository           { return p.sources }
func (p *Persistence) Workflows() persistence.WorkflowRepository       { return p.workflows }
func (p *Persistence) Executions() persistence.ExecutionRepository     { return p.executions }
func (p *Persistence) Skills() persistence.SkillRepository             { return p.skills }
func (p *Persistence) ShortLinks() persistence.ShortLinkRepository     { return p.shortLinks }

func (p *Persistence) HealthCheck(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

var _ persistence.Persistence = (*Persistence)(nil)

// ConfigRepository stores the platform config as a single JSONB row.
type ConfigRepository struct {
	db *sql.DB
}

func (r *ConfigRepository) Get(ctx context.Context) (*models.PlatformConfig, error) {
	var (
		document  []byte
		updatedAt time.Time
	)

	err := r.db.QueryRowContext(ctx, "SELECT document, updated_at FROM platform_config WHERE id = 1").
		Scan(&document, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultPlatformConfig(), nil
	}

	if err != nil {
		return nil, persistence.NewStoreError("Get", "config", "platform", err)
	}

	var config models.PlatformConfig
	if err := json.Unmarshal(document, &config); err != nil {
		return nil, persistence.NewStoreError("Get", "config", "platform", err)
	}

	config.UpdatedAt = updatedAt

	return &config, nil
}

func (r *ConfigRepository) Save(ctx context.Context, config *models.PlatformConfig) error {
	document, err := json.Marshal(config)
	if err != nil {
		return persistence.NewStoreError("Save", "config", "platform", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO platform_config (id, document, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`, document, config.UpdatedAt)
	if err != nil {
		return persistence.NewStoreError("Save", "config", "platform", err)
	}

	return nil
}
