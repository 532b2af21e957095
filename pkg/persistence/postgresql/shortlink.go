package postgresql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

type ShortLinkRepository struct {
	db *sql.DB
}

const shortLinkColumns = "code, target, created_by, hits, created_at"

func scanShortLink(row interface{ Scan(...any) error }) (*models.ShortLink, error) {
	var (
		link      models.ShortLink
		createdBy sql.NullString
	)

	err := row.Scan(&link.Code, &link.Target, &createdBy, &link.Hits, &link.CreatedAt)
	if err != nil {
		return nil, err
	}

	link.CreatedBy = createdBy.String

	return &link, nil
}

func (r *ShortLinkRepository) List(ctx context.Context) ([]*models.ShortLink, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+shortLinkColumns+" FROM short_links ORDER BY created_at ASC")
	if err != nil {
		return nil, persistence.NewStoreError("List", "short_link", "", err)
	}
	defer rows.Close()

	links := make([]*models.ShortLink, 0)

	for rows.Next() {
		link, err := scanShortLink(rows)
		if err != nil {
			return nil, persistence.NewStoreError("List", "short_link", "", err)
		}

		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("List", "short_link", "", err)
	}

	return links, nil
}

func (r *ShortLinkRepository) GetByCode(ctx context.Context, code string) (*models.ShortLink, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+shortLinkColumns+" FROM short_links WHERE code = $1", code)

	link, err := scanShortLink(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrShortLinkNotFound
	}

	if err != nil {
		return nil, persistence.NewStoreError("GetByCode", "short_link", code, err)
	}

	return link, nil
}

func (r *ShortLinkRepository) Save(ctx context.Context, link *models.ShortLink) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO short_links (code, target, created_by, hits, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET
			target = EXCLUDED.target,
			hits = EXCLUDED.hits
	`, link.Code, link.Target, link.CreatedBy, link.Hits, link.CreatedAt)
	if err != nil {
		return persistence.NewStoreError("Save", "short_link", link.Code, err)
	}

	return nil
}

func (r *ShortLinkRepository) Delete(ctx context.Context, code string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM short_links WHERE code = $1", code)
	if err != nil {
		return persistence.NewStoreError("Delete", "short_link", code, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewStoreError("Delete", "short_link", code, err)
	}

	if affected == 0 {
		return persistence.ErrShortLinkNotFound
	}

	return nil
}
