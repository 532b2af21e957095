package file

import (
	"context"
	"sort"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// ExecutionRepository stores execution projections and serves filtered,
// paginated listings in memory, mirroring how the list endpoints page.
type ExecutionRepository struct {
	store *store[models.WorkflowExecution]
}

func NewExecutionRepository(root string) *ExecutionRepository {
	return &ExecutionRepository{store: newStore[models.WorkflowExecution](root, "executions")}
}

func (r *ExecutionRepository) List(_ context.Context, opts persistence.ListExecutionsOptions) (*persistence.ExecutionListResult, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}

	all, err := r.store.list()
	if err != nil {
		return nil, persistence.NewStoreError("List", "execution", "", err)
	}

	filtered := make([]*models.WorkflowExecution, 0, len(all))

	for _, execution := range all {
		if opts.WorkflowID != "" && execution.WorkflowID != opts.WorkflowID {
			continue
		}

		if opts.Status != nil && execution.Status != *opts.Status {
			continue
		}

		filtered = append(filtered, execution)
	}

	// Newest first, matching the live dashboard ordering.
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].StartedAt.After(filtered[j].StartedAt)
	})

	totalCount := int64(len(filtered))

	startIdx := opts.Offset
	if startIdx >= len(filtered) {
		return &persistence.ExecutionListResult{
			Executions:  []*models.WorkflowExecution{},
			TotalCount:  totalCount,
			HasNextPage: false,
		}, nil
	}

	endIdx := min(startIdx+opts.Limit, len(filtered))

	return &persistence.ExecutionListResult{
		Executions:  filtered[startIdx:endIdx],
		TotalCount:  totalCount,
		HasNextPage: endIdx < len(filtered),
	}, nil
}

func (r *ExecutionRepository) GetByID(_ context.Context, id string) (*models.WorkflowExecution, error) {
	execution, err := r.store.get(id)
	if err != nil {
		return nil, persistence.NewStoreError("GetByID", "execution", id, err)
	}

	if execution == nil {
		return nil, persistence.ErrExecutionNotFound
	}

	return execution, nil
}

func (r *ExecutionRepository) Save(_ context.Context, execution *models.WorkflowExecution) error {
	if err := r.store.save(execution.ID, execution); err != nil {
		return persistence.NewStoreError("Save", "execution", execution.ID, err)
	}

	return nil
}
