package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

type WorkflowRepository struct {
	db *sql.DB
}

const workflowColumns = "id, name, description, steps, variables, enabled, created_at, updated_at"

func scanWorkflow(row interface{ Scan(...any) error }) (*models.Workflow, error) {
	var (
		workflow    models.Workflow
		description sql.NullString
		steps       []byte
		variables   []byte
	)

	err := row.Scan(
		&workflow.ID,
		&workflow.Name,
		&description,
		&steps,
		&variables,
		&workflow.Enabled,
		&workflow.CreatedAt,
		&workflow.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	workflow.Description = description.String

	if steps != nil {
		if err := json.Unmarshal(steps, &workflow.Steps); err != nil {
			return nil, err
		}
	}

	if variables != nil {
		if err := json.Unmarshal(variables, &workflow.Variables); err != nil {
			return nil, err
		}
	}

	return &workflow, nil
}

func (r *WorkflowRepository) List(ctx context.Context) ([]*models.Workflow, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+workflowColumns+" FROM workflows ORDER BY created_at ASC")
	if err != nil {
		return nil, persistence.NewStoreError("List", "workflow", "", err)
	}
	defer rows.Close()

	workflows := make([]*models.Workflow, 0)

	for rows.Next() {
		workflow, err := scanWorkflow(rows)
		if err != nil {
			return nil, persistence.NewStoreError("List", "workflow", "", err)
		}

		workflows = append(workflows, workflow)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("List", "workflow", "", err)
	}

	return workflows, nil
}

func (r *WorkflowRepository) GetByID(ctx context.Context, id string) (*models.Workflow, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+workflowColumns+" FROM workflows WHERE id = $1", id)

	workflow, err := scanWorkflow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrWorkflowNotFound
	}

	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "workflow", id, err)
	}

	return workflow, nil
}

func (r *WorkflowRepository) Save(ctx context.Context, workflow *models.Workflow) error {
	steps, err := json.Marshal(workflow.Steps)
	if err != nil {
		return persistence.NewStoreError("Save", "workflow", workflow.ID, err)
	}

	variables, err := json.Marshal(workflow.Variables)
	if err != nil {
		return persistence.NewStoreError("Save", "workflow", workflow.ID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO workflows (id, name, description, steps, variables, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			steps = EXCLUDED.steps,
			variables = EXCLUDED.variables,
			enabled = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at
	`, workflow.ID, workflow.Name, workflow.Description, steps, variables,
		workflow.Enabled, workflow.CreatedAt, workflow.UpdatedAt)
	if err != nil {
		return persistence.NewStoreError("Save", "workflow", workflow.ID, err)
	}

	return nil
}

func (r *WorkflowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM workflows WHERE id = $1", id)
	if err != nil {
		return persistence.NewStoreError("Delete", "workflow", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewStoreError("Delete", "workflow", id, err)
	}

	if affected == 0 {
		return persistence.ErrWorkflowNotFound
	}

	return nil
}
