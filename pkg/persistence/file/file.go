// Package file provides file-based persistence for the admin service.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// Persistence implements persistence.Persistence on top of a directory of
// JSON documents. It is the default backend and the fixture used by tests.
type Persistence struct {
	root       string
	configRepo *ConfigRepository
	providers  *ProviderRepository
	clients    *OAuthClientRepository
	sources    *SourceRepository
	workflows  *WorkflowRepository
	executions *ExecutionRepository
	skills     *SkillRepository
	shortLinks *ShortLinkRepository
}

// NewPersistence creates a file persistence rooted at the given directory.
// A "file://" prefix on the root is accepted and stripped.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:       cleanRoot,
		configRepo: NewConfigRepository(cleanRoot),
		providers:  NewProviderRepository(cleanRoot),
		clients:    NewOAuthClientRepository(cleanRoot),
		sources:    NewSourceRepository(cleanRoot),
		workflows:  NewWorkflowRepository(cleanRoot),
		executions: NewExecutionRepository(cleanRoot),
		skills:     NewSkillRepository(cleanRoot),
		shortLinks: NewShortLinkRepository(cleanRoot),
	}
}

func (p *Persistence) Config() persistence.ConfigRepository {
	return p.configRepo
}

func (p *Persistence) Providers() persistence.ProviderRepository {
	return p.providers
}

func (p *Persistence) OAuthClients() persistence.OAuthClientRepository {
	return p.clients
}

func (p *Persistence) Sources() persistence.SourceRepository {
	return p.sources
}

func (p *Persistence) Workflows() persistence.WorkflowRepository {
	return p.workflows
}

func (p *Persistence) Executions() persistence.ExecutionRepository {
	return p.executions
}

func (p *Persistence) Skills() persistence.SkillRepository {
	return p.skills
}

func (p *Persistence) ShortLinks() persistence.ShortLinkRepository {
	return p.shortLinks
}

// HealthCheck verifies the root directory exists.
func (p *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(p.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// Close is a no-op for file persistence.
func (p *Persistence) Close(_ context.Context) error {
	return nil
}

// Root returns the directory backing this persistence. Backup export walks it.
func (p *Persistence) Root() string {
	return p.root
}

var _ persistence.Persistence = (*Persistence)(nil)

// ConfigRepository stores the single platform config document.
type ConfigRepository struct {
	store *store[models.PlatformConfig]
}

func NewConfigRepository(root string) *ConfigRepository {
	return &ConfigRepository{store: newStore[models.PlatformConfig](root, "config")}
}

// Get returns the stored config, or the defaults when none was saved yet.
func (r *ConfigRepository) Get(_ context.Context) (*models.PlatformConfig, error) {
	config, err := r.store.get("platform")
	if err != nil {
		return nil, persistence.NewStoreError("Get", "config", "platform", err)
	}

	if config == nil {
		return models.DefaultPlatformConfig(), nil
	}

	return config, nil
}

func (r *ConfigRepository) Save(_ context.Context, config *models.PlatformConfig) error {
	if err := r.store.save("platform", config); err != nil {
		return persistence.NewStoreError("Save", "config", "platform", err)
	}

	return nil
}
