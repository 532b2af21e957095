package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

type SkillRepository struct {
	db *sql.DB
}

const skillColumns = "id, name, description, version, author, installed_at, updated_at"

func scanSkill(row interface{ Scan(...any) error }) (*models.Skill, error) {
	var (
		skill       models.Skill
		name        []byte
		description []byte
		author      sql.NullString
	)

	err := row.Scan(
		&skill.ID,
		&name,
		&description,
		&skill.Version,
		&author,
		&skill.InstalledAt,
		&skill.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	skill.Author = author.String

	if err := json.Unmarshal(name, &skill.Name); err != nil {
		return nil, err
	}

	if description != nil {
		if err := json.Unmarshal(description, &skill.Description); err != nil {
			return nil, err
		}
	}

	return &skill, nil
}

func (r *SkillRepository) List(ctx context.Context) ([]*models.Skill, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+skillColumns+" FROM skills ORDER BY installed_at ASC")
	if err != nil {
		return nil, persistence.NewStoreError("List", "skill", "", err)
	}
	defer rows.Close()

	skills := make([]*models.Skill, 0)

	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			return nil, persistence.NewStoreError("List", "skill", "", err)
		}

		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("List", "skill", "", err)
	}

	return skills, nil
}

func (r *SkillRepository) GetByID(ctx context.Context, id string) (*models.Skill, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+skillColumns+" FROM skills WHERE id = $1", id)

	skill, err := scanSkill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrSkillNotFound
	}

	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "skill", id, err)
	}

	return skill, nil
}

func (r *SkillRepository) Save(ctx context.Context, skill *models.Skill) error {
	name, err := json.Marshal(skill.Name)
	if err != nil {
		return persistence.NewStoreError("Save", "skill", skill.ID, err)
	}

	description, err := json.Marshal(skill.Description)
	if err != nil {
		return persistence.NewStoreError("Save", "skill", skill.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO skills (id, name, description, version, author, installed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			version = EXCLUDED.version,
			author = EXCLUDED.author,
			updated_at = EXCLUDED.updated_at
	`, skill.ID, name, description, skill.Version, skill.Author,
		skill.InstalledAt, skill.UpdatedAt)
	if err != nil {
		return persistence.NewStoreError("Save", "skill", skill.ID, err)
	}

	return nil
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM skills WHERE id = $1", id)
	if err != nil {
		return persistence.NewStoreError("Delete", "skill", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewStoreError("Delete", "skill", id, err)
	}

	if affected == 0 {
		return persistence.ErrSkillNotFound
	}

	return nil
}
