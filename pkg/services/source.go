package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aihub/hubadmin/pkg/events"
	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// Source manages content source configurations. Config blobs are checked
// against the JSON schema registered for the source type before any write.
type Source struct {
	persistence persistence.Persistence
	publisher   EventPublisher
}

func NewSource(persistence persistence.Persistence, publisher EventPublisher) *Source {
	return &Source{
		persistence: persistence,
		publisher:   publisher,
	}
}

func (s *Source) List(ctx context.Context) ([]*models.Source, error) {
	sources, err := s.persistence.Sources().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	return sources, nil
}

func (s *Source) FetchByID(ctx context.Context, id string) (*models.Source, error) {
	return s.persistence.Sources().GetByID(ctx, id)
}

// ConfigSchema exposes the JSON schema for one connector type so editors
// can render the right form.
func (s *Source) ConfigSchema(sourceType models.SourceType) (map[string]any, error) {
	schema, err := models.SourceConfigSchema(sourceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSourceType, sourceType)
	}

	return schema, nil
}

func (s *Source) Create(ctx context.Context, source *models.Source) (*models.Source, error) {
	if err := s.validate(source); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if source.ID == "" {
		source.ID = uuid.New().String()
	}

	source.CreatedAt = now
	source.UpdatedAt = now

	if err := s.persistence.Sources().Save(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to save source: %w", err)
	}

	s.notify(ctx, source.ID, "created")

	return source, nil
}

func (s *Source) Update(ctx context.Context, source *models.Source) (*models.Source, error) {
	if err := s.validate(source); err != nil {
		return nil, err
	}

	existing, err := s.persistence.Sources().GetByID(ctx, source.ID)
	if err != nil {
		return nil, err
	}

	source.CreatedAt = existing.CreatedAt
	source.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Sources().Save(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to save source: %w", err)
	}

	s.notify(ctx, source.ID, "updated")

	return source, nil
}

func (s *Source) SetEnabled(ctx context.Context, id string, enabled bool) (*models.Source, error) {
	source, err := s.persistence.Sources().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	source.Enabled = enabled
	source.UpdatedAt = time.Now().UTC()

	if err := s.persistence.Sources().Save(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to save source: %w", err)
	}

	s.notify(ctx, id, "updated")

	return source, nil
}

func (s *Source) Delete(ctx context.Context, id string) error {
	if err := s.persistence.Sources().Delete(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, id, "deleted")

	return nil
}

func (s *Source) validate(source *models.Source) error {
	if err := source.Validate(); err != nil {
		if errors.Is(err, models.ErrMissingDefaultLocale) {
			return ErrMissingDefaultLocale
		}

		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	if _, err := models.SourceConfigSchema(source.Type); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSourceType, source.Type)
	}

	if err := models.ValidateSourceConfig(source.Type, source.Config); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	return nil
}

func (s *Source) notify(ctx context.Context, id, action string) {
	if s.publisher == nil {
		return
	}

	event := events.SourceChanged{EntityChanged: events.EntityChanged{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      events.SourceChangedEvent,
			Timestamp: time.Now().UTC(),
		},
		EntityID: id,
		Action:   action,
	}}

	_ = s.publisher.Publish(ctx, id, event)
}
