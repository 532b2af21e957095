package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// OAuthClientRepository handles oauth client rows. The secret hash column
// is stored and scanned but never serialized outward by the models layer.
type OAuthClientRepository struct {
	db *sql.DB
}

const oauthClientColumns = "id, name, secret_hash, active, grant_types, redirect_uris, scopes, created_at, updated_at"

func scanOAuthClient(row interface{ Scan(...any) error }) (*models.OAuthClient, error) {
	var (
		client       models.OAuthClient
		grantTypes   []byte
		redirectURIs []byte
		scopes       []byte
	)

	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.SecretHash,
		&client.Active,
		&grantTypes,
		&redirectURIs,
		&scopes,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(grantTypes, &client.GrantTypes); err != nil {
		return nil, err
	}

	if redirectURIs != nil {
		if err := json.Unmarshal(redirectURIs, &client.RedirectURIs); err != nil {
			return nil, err
		}
	}

	if scopes != nil {
		if err := json.Unmarshal(scopes, &client.Scopes); err != nil {
			return nil, err
		}
	}

	return &client, nil
}

func (r *OAuthClientRepository) List(ctx context.Context) ([]*models.OAuthClient, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+oauthClientColumns+" FROM oauth_clients ORDER BY created_at ASC")
	if err != nil {
		return nil, persistence.NewStoreError("List", "oauth_client", "", err)
	}
	defer rows.Close()

	clients := make([]*models.OAuthClient, 0)

	for rows.Next() {
		client, err := scanOAuthClient(rows)
		if err != nil {
			return nil, persistence.NewStoreError("List", "oauth_client", "", err)
		}

		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("List", "oauth_client", "", err)
	}

	return clients, nil
}

func (r *OAuthClientRepository) GetByID(ctx context.Context, id string) (*models.OAuthClient, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+oauthClientColumns+" FROM oauth_clients WHERE id = $1", id)

	client, err := scanOAuthClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrOAuthClientNotFound
	}

	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "oauth_client", id, err)
	}

	return client, nil
}

func (r *OAuthClientRepository) Save(ctx context.Context, client *models.OAuthClient) error {
	grantTypes, err := json.Marshal(client.GrantTypes)
	if err != nil {
		return persistence.NewStoreError("Save", "oauth_client", client.ID, err)
	}

	redirectURIs, err := json.Marshal(client.RedirectURIs)
	if err != nil {
		return persistence.NewStoreError("Save", "oauth_client", client.ID, err)
	}

	scopes, err := json.Marshal(client.Scopes)
	if err != nil {
		return persistence.NewStoreError("Save", "oauth_client", client.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO oauth_clients (id, name, secret_hash, active, grant_types, redirect_uris, scopes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			secret_hash = EXCLUDED.secret_hash,
			active = EXCLUDED.active,
			grant_types = EXCLUDED.grant_types,
			redirect_uris = EXCLUDED.redirect_uris,
			scopes = EXCLUDED.scopes,
			updated_at = EXCLUDED.updated_at
	`, client.ID, client.Name, client.SecretHash, client.Active, grantTypes,
		redirectURIs, scopes, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		return persistence.NewStoreError("Save", "oauth_client", client.ID, err)
	}

	return nil
}

func (r *OAuthClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM oauth_clients WHERE id = $1", id)
	if err != nil {
		return persistence.NewStoreError("Delete", "oauth_client", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewStoreError("Delete", "oauth_client", id, err)
	}

	if affected == 0 {
		return persistence.ErrOAuthClientNotFound
	}

	return nil
}
