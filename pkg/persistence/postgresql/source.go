package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

type SourceRepository struct {
	db *sql.DB
}

const sourceColumns = "id, source_type, name, description, config, enabled, created_at, updated_at"

func scanSource(row interface{ Scan(...any) error }) (*models.Source, error) {
	var (
		source      models.Source
		name        []byte
		description []byte
		config      []byte
	)

	err := row.Scan(
		&source.ID,
		&source.Type,
		&name,
		&description,
		&config,
		&source.Enabled,
		&source.CreatedAt,
		&source.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(name, &source.Name); err != nil {
		return nil, err
	}

	if description != nil {
		if err := json.Unmarshal(description, &source.Description); err != nil {
			return nil, err
		}
	}

	if config != nil {
		if err := json.Unmarshal(config, &source.Config); err != nil {
			return nil, err
		}
	}

	return &source, nil
}

func (r *SourceRepository) List(ctx context.Context) ([]*models.Source, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+sourceColumns+" FROM sources ORDER BY created_at ASC")
	if err != nil {
		return nil, persistence.NewStoreError("List", "source", "", err)
	}
	defer rows.Close()

	sources := make([]*models.Source, 0)

	for rows.Next() {
		source, err := scanSource(rows)
		if err != nil {
			return nil, persistence.NewStoreError("List", "source", "", err)
		}

		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("List", "source", "", err)
	}

	return sources, nil
}

func (r *SourceRepository) GetByID(ctx context.Context, id string) (*models.Source, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+sourceColumns+" FROM sources WHERE id = $1", id)

	source, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrSourceNotFound
	}

	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "source", id, err)
	}

	return source, nil
}

func (r *SourceRepository) Save(ctx context.Context, source *models.Source) error {
	name, err := json.Marshal(source.Name)
	if err != nil {
		return persistence.NewStoreError("Save", "source", source.ID, err)
	}

	description, err := json.Marshal(source.Description)
	if err != nil {
		return persistence.NewStoreError("Save", "source", source.ID, err)
	}

	config, err := json.Marshal(source.Config)
	if err != nil {
		return persistence.NewStoreError("Save", "source", source.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sources (id, source_type, name, description, config, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			source_type = EXCLUDED.source_type,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			config = EXCLUDED.config,
			enabled = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at
	`, source.ID, source.Type, name, description, config, source.Enabled,
		source.CreatedAt, source.UpdatedAt)
	if err != nil {
		return persistence.NewStoreError("Save", "source", source.ID, err)
	}

	return nil
}

func (r *SourceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sources WHERE id = $1", id)
	if err != nil {
		return persistence.NewStoreError("Delete", "source", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewStoreError("Delete", "source", id, err)
	}

	if affected == 0 {
		return persistence.ErrSourceNotFound
	}

	return nil
}
