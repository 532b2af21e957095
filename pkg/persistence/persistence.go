// Package persistence provides the data storage abstraction for the admin service.
package persistence

import (
	"context"

	"github.com/aihub/hubadmin/pkg/models"
)

// Persistence bundles the per-entity repositories behind one lifecycle.
type Persistence interface {
	Config() ConfigRepository
	Providers() ProviderRepository
	OAuthClients() OAuthClientRepository
	Sources() SourceRepository
	Workflows() WorkflowRepository
	Executions() ExecutionRepository
	Skills() SkillRepository
	ShortLinks() ShortLinkRepository

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// ConfigRepository stores the single platform configuration document.
type ConfigRepository interface {
	Get(ctx context.Context) (*models.PlatformConfig, error)
	Save(ctx context.Context, config *models.PlatformConfig) error
}

type ProviderRepository interface {
	List(ctx context.Context) ([]*models.AuthProvider, error)
	GetByID(ctx context.Context, id string) (*models.AuthProvider, error)
	Save(ctx context.Context, provider *models.AuthProvider) error
	Delete(ctx context.Context, id string) error
}

type OAuthClientRepository interface {
	List(ctx context.Context) ([]*models.OAuthClient, error)
	GetByID(ctx context.Context, id string) (*models.OAuthClient, error)
	Save(ctx context.Context, client *models.OAuthClient) error
	Delete(ctx context.Context, id string) error
}

type SourceRepository interface {
	List(ctx context.Context) ([]*models.Source, error)
	GetByID(ctx context.Context, id string) (*models.Source, error)
	Save(ctx context.Context, source *models.Source) error
	Delete(ctx context.Context, id string) error
}

type WorkflowRepository interface {
	List(ctx context.Context) ([]*models.Workflow, error)
	GetByID(ctx context.Context, id string) (*models.Workflow, error)
	Save(ctx context.Context, workflow *models.Workflow) error
	Delete(ctx context.Context, id string) error
}

// ListExecutionsOptions filters and pages the execution projection.
type ListExecutionsOptions struct {
	WorkflowID string
	Status     *models.ExecutionStatus
	Limit      int
	Offset     int
}

// ExecutionListResult carries one page of executions plus paging metadata.
type ExecutionListResult struct {
	Executions  []*models.WorkflowExecution `json:"executions"`
	TotalCount  int64                       `json:"total_count"`
	HasNextPage bool                        `json:"has_next_page"`
}

type ExecutionRepository interface {
	List(ctx context.Context, opts ListExecutionsOptions) (*ExecutionListResult, error)
	GetByID(ctx context.Context, id string) (*models.WorkflowExecution, error)
	Save(ctx context.Context, execution *models.WorkflowExecution) error
}

type SkillRepository interface {
	List(ctx context.Context) ([]*models.Skill, error)
	GetByID(ctx context.Context, id string) (*models.Skill, error)
	Save(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id string) error
}

type ShortLinkRepository interface {
	List(ctx context.Context) ([]*models.ShortLink, error)
	GetByCode(ctx context.Context, code string) (*models.ShortLink, error)
	Save(ctx context.Context, link *models.ShortLink) error
	Delete(ctx context.Context, code string) error
}
