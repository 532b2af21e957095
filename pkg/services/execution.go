package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aihub/hubadmin/pkg/events"
	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// Execution serves the read-only execution projection and relays operator
// cancel/pause requests to the engine over the event bus. The engine owns
// every status transition; this service only mirrors them.
type Execution struct {
	persistence persistence.Persistence
	publisher   EventPublisher
}

func NewExecution(persistence persistence.Persistence, publisher EventPublisher) *Execution {
	return &Execution{
		persistence: persistence,
		publisher:   publisher,
	}
}

// ListExecutionsRequest filters and pages the projection listing.
type ListExecutionsRequest struct {
	WorkflowID string
	Status     *models.ExecutionStatus
	Limit      int `validate:"min=0,max=100"`
	Offset     int `validate:"min=0"`
}

func (s *Execution) List(ctx context.Context, req ListExecutionsRequest) (*persistence.ExecutionListResult, error) {
	if req.Status != nil {
		switch *req.Status {
		case models.ExecutionStatusPending, models.ExecutionStatusRunning,
			models.ExecutionStatusPaused, models.ExecutionStatusCompleted,
			models.ExecutionStatusFailed, models.ExecutionStatusCancelled:
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
	}

	result, err := s.persistence.Executions().List(ctx, persistence.ListExecutionsOptions{
		WorkflowID: req.WorkflowID,
		Status:     req.Status,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}

	return result, nil
}

func (s *Execution) FetchByID(ctx context.Context, id string) (*models.WorkflowExecution, error) {
	return s.persistence.Executions().GetByID(ctx, id)
}

// RequestCancel relays a cancel to the engine. Finished executions reject
// the request instead of publishing a no-op event.
func (s *Execution) RequestCancel(ctx context.Context, id string) error {
	execution, err := s.persistence.Executions().GetByID(ctx, id)
	if err != nil {
		return err
	}

	if execution.Status.IsTerminal() {
		return ErrExecutionFinished
	}

	event := events.ExecutionCancelRequested{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.ExecutionCancelRequestedEvent,
			Timestamp: time.Now().UTC(),
		},
		ExecutionID: id,
	}

	if err := s.publisher.Publish(ctx, id, event); err != nil {
		return fmt.Errorf("failed to publish cancel request: %w", err)
	}

	return nil
}

// RequestPause relays a pause to the engine.
func (s *Execution) RequestPause(ctx context.Context, id string) error {
	execution, err := s.persistence.Executions().GetByID(ctx, id)
	if err != nil {
		return err
	}

	if execution.Status.IsTerminal() {
		return ErrExecutionFinished
	}

	event := events.ExecutionPauseRequested{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.ExecutionPauseRequestedEvent,
			Timestamp: time.Now().UTC(),
		},
		ExecutionID: id,
	}

	if err := s.publisher.Publish(ctx, id, event); err != nil {
		return fmt.Errorf("failed to publish pause request: %w", err)
	}

	return nil
}

// Ingest applies one engine-side state change to the projection. Wired as
// the bus handler for execution update events.
func (s *Execution) Ingest(ctx context.Context, execution *models.WorkflowExecution) error {
	if execution.ID == "" {
		return fmt.Errorf("%w: execution id required", ErrInvalidRequest)
	}

	execution.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Executions().Save(ctx, execution); err != nil {
		return fmt.Errorf("failed to save execution: %w", err)
	}

	return nil
}

// AttachBus registers the projection ingest on the event bus.
func (s *Execution) AttachBus(bus EventSubscriber) error {
	return bus.Handle(events.ExecutionUpdatedEvent, func(ctx context.Context, event any) error {
		updated, ok := event.(*events.ExecutionUpdated)
		if !ok {
			return nil
		}

		execution := updated.Execution

		return s.Ingest(ctx, &execution)
	})
}
