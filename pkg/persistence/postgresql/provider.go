package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// ProviderRepository handles auth provider rows.
type ProviderRepository struct {
	db *sql.DB
}

const providerColumns = "id, provider_type, name, description, config, enabled, created_at, updated_at"

func scanProvider(row interface{ Scan(...any) error }) (*models.AuthProvider, error) {
	var (
		provider    models.AuthProvider
		name        []byte
		description []byte
		config      []byte
	)

	err := row.Scan(
		&provider.ID,
		&provider.Type,
		&name,
		&description,
		&config,
		&provider.Enabled,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(name, &provider.Name); err != nil {
		return nil, err
	}

	if description != nil {
		if err := json.Unmarshal(description, &provider.Description); err != nil {
			return nil, err
		}
	}

	if config != nil {
		if err := json.Unmarshal(config, &provider.Config); err != nil {
			return nil, err
		}
	}

	return &provider, nil
}

func (r *ProviderRepository) List(ctx context.Context) ([]*models.AuthProvider, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+providerColumns+" FROM auth_providers ORDER BY created_at ASC")
	if err != nil {
		return nil, persistence.NewStoreError("List", "provider", "", err)
	}
	defer rows.Close()

	providers := make([]*models.AuthProvider, 0)

	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, persistence.NewStoreError("List", "provider", "", err)
		}

		providers = append(providers, provider)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("List", "provider", "", err)
	}

	return providers, nil
}

func (r *ProviderRepository) GetByID(ctx context.Context, id string) (*models.AuthProvider, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+providerColumns+" FROM auth_providers WHERE id = $1", id)

	provider, err := scanProvider(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrProviderNotFound
	}

	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "provider", id, err)
	}

	return provider, nil
}

func (r *ProviderRepository) Save(ctx context.Context, provider *models.AuthProvider) error {
	name, err := json.Marshal(provider.Name)
	if err != nil {
		return persistence.NewStoreError("Save", "provider", provider.ID, err)
	}

	description, err := json.Marshal(provider.Description)
	if err != nil {
		return persistence.NewStoreError("Save", "provider", provider.ID, err)
	}

	config, err := json.Marshal(provider.Config)
	if err != nil {
		return persistence.NewStoreError("Save", "provider", provider.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO auth_providers (id, provider_type, name, description, config, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			provider_type = EXCLUDED.provider_type,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			config = EXCLUDED.config,
			enabled = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at
	`, provider.ID, provider.Type, name, description, config, provider.Enabled,
		provider.CreatedAt, provider.UpdatedAt)
	if err != nil {
		return persistence.NewStoreError("Save", "provider", provider.ID, err)
	}

	return nil
}

func (r *ProviderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM auth_providers WHERE id = $1", id)
	if err != nil {
		return persistence.NewStoreError("Delete", "provider", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewStoreError("Delete", "provider", id, err)
	}

	if affected == 0 {
		return persistence.ErrProviderNotFound
	}

	return nil
}
