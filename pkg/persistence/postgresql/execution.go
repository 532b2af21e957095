package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

type ExecutionRepository struct {
	db *sql.DB
}

const executionColumns = "id, workflow_id, status, current_step, error, started_at, finished_at, updated_at"

func scanExecution(row interface{ Scan(...any) error }) (*models.WorkflowExecution, error) {
	var (
		execution   models.WorkflowExecution
		currentStep sql.NullString
		execError   sql.NullString
		finishedAt  sql.NullTime
	)

	err := row.Scan(
		&execution.ID,
		&execution.WorkflowID,
		&execution.Status,
		&currentStep,
		&execError,
		&execution.StartedAt,
		&finishedAt,
		&execution.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	execution.CurrentStep = currentStep.String
	execution.Error = execError.String

	if finishedAt.Valid {
		execution.FinishedAt = &finishedAt.Time
	}

	return &execution, nil
}

func (r *ExecutionRepository) List(ctx context.Context, opts persistence.ListExecutionsOptions) (*persistence.ExecutionListResult, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	where := " WHERE 1=1"
	args := []any{}

	if opts.WorkflowID != "" {
		args = append(args, opts.WorkflowID)
		where += " AND workflow_id = $1"
	}

	if opts.Status != nil {
		args = append(args, string(*opts.Status))
		where += " AND status = $" + strconv.Itoa(len(args))
	}

	var totalCount int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workflow_executions"+where, args...).
		Scan(&totalCount); err != nil {
		return nil, persistence.NewStoreError("List", "execution", "", err)
	}

	args = append(args, opts.Limit, opts.Offset)
	query := "SELECT " + executionColumns + " FROM workflow_executions" + where +
		" ORDER BY started_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistence.NewStoreError("List", "execution", "", err)
	}
	defer rows.Close()

	executions := make([]*models.WorkflowExecution, 0)

	for rows.Next() {
		execution, err := scanExecution(rows)
		if err != nil {
			return nil, persistence.NewStoreError("List", "execution", "", err)
		}

		executions = append(executions, execution)
	}

	if err := rows.Err(); err != nil {
		return nil, persistence.NewStoreError("List", "execution", "", err)
	}

	return &persistence.ExecutionListResult{
		Executions:  executions,
		TotalCount:  totalCount,
		HasNextPage: int64(opts.Offset+len(executions)) < totalCount,
	}, nil
}

func (r *ExecutionRepository) GetByID(ctx context.Context, id string) (*models.WorkflowExecution, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+executionColumns+" FROM workflow_executions WHERE id = $1", id)

	execution, err := scanExecution(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrExecutionNotFound
	}

	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "execution", id, err)
	}

	return execution, nil
}

func (r *ExecutionRepository) Save(ctx context.Context, execution *models.WorkflowExecution) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workflow_executions (id, workflow_id, status, current_step, error, started_at, finished_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			current_step = EXCLUDED.current_step,
			error = EXCLUDED.error,
			finished_at = EXCLUDED.finished_at,
			updated_at = EXCLUDED.updated_at
	`, execution.ID, execution.WorkflowID, execution.Status, execution.CurrentStep,
		execution.Error, execution.StartedAt, execution.FinishedAt, execution.UpdatedAt)
	if err != nil {
		return persistence.NewStoreError("Save", "execution", execution.ID, err)
	}

	return nil
}
