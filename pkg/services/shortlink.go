package services

import (
	"context"
	"fmt"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

// ShortLink manages the server-generated redirect codes. The admin surface
// lists and deletes links and test-resolves codes.
type ShortLink struct {
	persistence persistence.Persistence
}

func NewShortLink(persistence persistence.Persistence) *ShortLink {
	return &ShortLink{persistence: persistence}
}

func (s *ShortLink) List(ctx context.Context) ([]*models.ShortLink, error) {
	links, err := s.persistence.ShortLinks().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list short links: %w", err)
	}

	return links, nil
}

// Resolve looks up a code and counts the hit.
func (s *ShortLink) Resolve(ctx context.Context, code string) (*models.ShortLink, error) {
	link, err := s.persistence.ShortLinks().GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	link.Hits++

	if err := s.persistence.ShortLinks().Save(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to record short link hit: %w", err)
	}

	return link, nil
}

func (s *ShortLink) Delete(ctx context.Context, code string) error {
	return s.persistence.ShortLinks().Delete(ctx, code)
}
