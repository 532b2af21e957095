package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// Workflow manages workflow definitions and their JSON import/export.
type Workflow struct {
	persistence persistence.Persistence
}

func NewWorkflow(persistence persistence.Persistence) *Workflow {
	return &Workflow{persistence: persistence}
}

// HealthCheck checks the health of the persistence layer.
func (s *Workflow) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	if err := s.persistence.HealthCheck(ctx); err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

func (s *Workflow) List(ctx context.Context) ([]*models.Workflow, error) {
	workflows, err := s.persistence.Workflows().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	return workflows, nil
}

func (s *Workflow) FetchByID(ctx context.Context, id string) (*models.Workflow, error) {
	return s.persistence.Workflows().GetByID(ctx, id)
}

func (s *Workflow) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow.Name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now().UTC()

	if workflow.ID == "" {
		workflow.ID = uuid.New().String()
	}

	if workflow.Steps == nil {
		workflow.Steps = []*models.WorkflowStep{}
	}

	workflow.CreatedAt = now
	workflow.UpdatedAt = now

	if err := s.persistence.Workflows().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return workflow, nil
}

func (s *Workflow) Update(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if workflow.Name == "" {
		return nil, ErrNameRequired
	}

	existing, err := s.persistence.Workflows().GetByID(ctx, workflow.ID)
	if err != nil {
		return nil, err
	}

	workflow.CreatedAt = existing.CreatedAt
	workflow.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Workflows().Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("failed to save workflow: %w", err)
	}

	return workflow, nil
}

func (s *Workflow) Delete(ctx context.Context, id string) error {
	return s.persistence.Workflows().Delete(ctx, id)
}

// Export serializes a workflow for download as a standalone JSON document.
func (s *Workflow) Export(ctx context.Context, id string) ([]byte, error) {
	workflow, err := s.persistence.Workflows().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(workflow, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode workflow: %w", err)
	}

	return data, nil
}

// Import creates a workflow from an uploaded JSON document. A fresh ID is
// assigned so an import never overwrites an existing definition.
func (s *Workflow) Import(ctx context.Context, data []byte) (*models.Workflow, error) {
	var workflow models.Workflow
	if err := json.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	workflow.ID = uuid.New().String()

	return s.Create(ctx, &workflow)
}
