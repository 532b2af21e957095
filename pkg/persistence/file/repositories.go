package file

import (
	"context"
	"sort"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

type ProviderRepository struct {
	store *store[models.AuthProvider]
}

func NewProviderRepository(root string) *ProviderRepository {
	return &ProviderRepository{store: newStore[models.AuthProvider](root, "providers")}
}

func (r *ProviderRepository) List(_ context.Context) ([]*models.AuthProvider, error) {
	providers, err := r.store.list()
	if err != nil {
		return nil, persistence.NewStoreError("List", "provider", "", err)
	}

	sort.Slice(providers, func(i, j int) bool {
		return providers[i].CreatedAt.Before(providers[j].CreatedAt)
	})

	return providers, nil
}

func (r *ProviderRepository) GetByID(_ context.Context, id string) (*models.AuthProvider, error) {
	provider, err := r.store.get(id)
	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "provider", id, err)
	}

	if provider == nil {
		return nil, persistence.ErrProviderNotFound
	}

	return provider, nil
}

func (r *ProviderRepository) Save(_ context.Context, provider *models.AuthProvider) error {
	if err := r.store.save(provider.ID, provider); err != nil {
		return persistence.NewStoreError("Save", "provider", provider.ID, err)
	}

	return nil
}

func (r *ProviderRepository) Delete(_ context.Context, id string) error {
	removed, err := r.store.delete(id)
	if err != nil {
		return persistence.NewStoreError("Delete", "provider", id, err)
	}

	if !removed {
		return persistence.ErrProviderNotFound
	}

	return nil
}

// storedOAuthClient shadows SecretHash with a serializable field: the API
// model never emits the hash, but the store must keep it.
type storedOAuthClient struct {
	models.OAuthClient

	SecretHash string `json:"secret_hash"`
}

type OAuthClientRepository struct {
	store *store[storedOAuthClient]
}

func NewOAuthClientRepository(root string) *OAuthClientRepository {
	return &OAuthClientRepository{store: newStore[storedOAuthClient](root, "oauth_clients")}
}

func (r *OAuthClientRepository) List(_ context.Context) ([]*models.OAuthClient, error) {
	stored, err := r.store.list()
	if err != nil {
		return nil, persistence.NewStoreError("List", "oauth_client", "", err)
	}

	clients := make([]*models.OAuthClient, 0, len(stored))
	for _, record := range stored {
		clients = append(clients, record.toModel())
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].CreatedAt.Before(clients[j].CreatedAt)
	})

	return clients, nil
}

func (r *OAuthClientRepository) GetByID(_ context.Context, id string) (*models.OAuthClient, error) {
	stored, err := r.store.get(id)
	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "oauth_client", id, err)
	}

	if stored == nil {
		return nil, persistence.ErrOAuthClientNotFound
	}

	return stored.toModel(), nil
}

func (r *OAuthClientRepository) Save(_ context.Context, client *models.OAuthClient) error {
	record := &storedOAuthClient{
		OAuthClient: *client,
		SecretHash:  client.SecretHash,
	}

	if err := r.store.save(client.ID, record); err != nil {
		return persistence.NewStoreError("Save", "oauth_client", client.ID, err)
	}

	return nil
}

func (s *storedOAuthClient) toModel() *models.OAuthClient {
	client := s.OAuthClient
	client.SecretHash = s.SecretHash

	return &client
}

func (r *OAuthClientRepository) Delete(_ context.Context, id string) error {
	removed, err := r.store.delete(id)
	if err != nil {
		return persistence.NewStoreError("Delete", "oauth_client", id, err)
	}

	if !removed {
		return persistence.ErrOAuthClientNotFound
	}

	return nil
}

type SourceRepository struct {
	store *store[models.Source]
}

func NewSourceRepository(root string) *SourceRepository {
	return &SourceRepository{store: newStore[models.Source](root, "sources")}
}

func (r *SourceRepository) List(_ context.Context) ([]*models.Source, error) {
	sources, err := r.store.list()
	if err != nil {
		return nil, persistence.NewStoreError("List", "source", "", err)
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].CreatedAt.Before(sources[j].CreatedAt)
	})

	return sources, nil
}

func (r *SourceRepository) GetByID(_ context.Context, id string) (*models.Source, error) {
	source, err := r.store.get(id)
	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "source", id, err)
	}

	if source == nil {
		return nil, persistence.ErrSourceNotFound
	}

	return source, nil
}

func (r *SourceRepository) Save(_ context.Context, source *models.Source) error {
	if err := r.store.save(source.ID, source); err != nil {
		return persistence.NewStoreError("Save", "source", source.ID, err)
	}

	return nil
}

func (r *SourceRepository) Delete(_ context.Context, id string) error {
	removed, err := r.store.delete(id)
	if err != nil {
		return persistence.NewStoreError("Delete", "source", id, err)
	}

	if !removed {
		return persistence.ErrSourceNotFound
	}

	return nil
}

type WorkflowRepository struct {
	store *store[models.Workflow]
}

func NewWorkflowRepository(root string) *WorkflowRepository {
	return &WorkflowRepository{store: newStore[models.Workflow](root, "workflows")}
}

func (r *WorkflowRepository) List(_ context.Context) ([]*models.Workflow, error) {
	workflows, err := r.store.list()
	if err != nil {
		return nil, persistence.NewStoreError("List", "workflow", "", err)
	}

	sort.Slice(workflows, func(i, j int) bool {
		return workflows[i].CreatedAt.Before(workflows[j].CreatedAt)
	})

	return workflows, nil
}

func (r *WorkflowRepository) GetByID(_ context.Context, id string) (*models.Workflow, error) {
	workflow, err := r.store.get(id)
	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "workflow", id, err)
	}

	if workflow == nil {
		return nil, persistence.ErrWorkflowNotFound
	}

	return workflow, nil
}

func (r *WorkflowRepository) Save(_ context.Context, workflow *models.Workflow) error {
	if err := r.store.save(workflow.ID, workflow); err != nil {
		return persistence.NewStoreError("Save", "workflow", workflow.ID, err)
	}

	return nil
}

func (r *WorkflowRepository) Delete(_ context.Context, id string) error {
	removed, err := r.store.delete(id)
	if err != nil {
		return persistence.NewStoreError("Delete", "workflow", id, err)
	}

	if !removed {
		return persistence.ErrWorkflowNotFound
	}

	return nil
}

type SkillRepository struct {
	store *store[models.Skill]
}

func NewSkillRepository(root string) *SkillRepository {
	return &SkillRepository{store: newStore[models.Skill](root, "skills")}
}

func (r *SkillRepository) List(_ context.Context) ([]*models.Skill, error) {
	skills, err := r.store.list()
	if err != nil {
		return nil, persistence.NewStoreError("List", "skill", "", err)
	}

	sort.Slice(skills, func(i, j int) bool {
		return skills[i].InstalledAt.Before(skills[j].InstalledAt)
	})

	return skills, nil
}

func (r *SkillRepository) GetByID(_ context.Context, id string) (*models.Skill, error) {
	skill, err := r.store.get(id)
	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "skill", id, err)
	}

	if skill == nil {
		return nil, persistence.ErrSkillNotFound
	}

	return skill, nil
}

func (r *SkillRepository) Save(_ context.Context, skill *models.Skill) error {
	if err := r.store.save(skill.ID, skill); err != nil {
		return persistence.NewStoreError("Save", "skill", skill.ID, err)
	}

	return nil
}

func (r *SkillRepository) Delete(_ context.Context, id string) error {
	removed, err := r.store.delete(id)
	if err != nil {
		return persistence.NewStoreError("Delete", "skill", id, err)
	}

	if !removed {
		return persistence.ErrSkillNotFound
	}

	return nil
}

type ShortLinkRepository struct {
	store *store[models.ShortLink]
}

func NewShortLinkRepository(root string) *ShortLinkRepository {
	return &ShortLinkRepository{store: newStore[models.ShortLink](root, "short_links")}
}

func (r *ShortLinkRepository) List(_ context.Context) ([]*models.ShortLink, error) {
	links, err := r.store.list()
	if err != nil {
		return nil, persistence.NewStoreError("List", "short_link", "", err)
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.Before(links[j].CreatedAt)
	})

	return links, nil
}

func (r *ShortLinkRepository) GetByCode(_ context.Context, code string) (*models.ShortLink, error) {
	link, err := r.store.get(code)
	if err != nil {
		return nil, persistence.NewStoreError("GetByCode", "short_link", code, err)
	}

	if link == nil {
		return nil, persistence.ErrShortLinkNotFound
	}

	return link, nil
}

func (r *ShortLinkRepository) Save(_ context.Context, link *models.ShortLink) error {
	if err := r.store.save(link.Code, link); err != nil {
		return persistence.NewStoreError("Save", "short_link", link.Code, err)
	}

	return nil
}

func (r *ShortLinkRepository) Delete(_ context.Context, code string) error {
	removed, err := r.store.delete(code)
	if err != nil {
		return persistence.NewStoreError("Delete", "short_link", code, err)
	}

	if !removed {
		return persistence.ErrShortLinkNotFound
	}

	return nil
}
