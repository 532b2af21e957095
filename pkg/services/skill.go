package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aihub/hubadmin/pkg/models"
	"github.com/aihub/hubadmin/pkg/persistence"
)

const skillManifestName = "manifest.json"

// Skill manages installable capability packages. Packages are zip archives
// carrying a manifest.json at the archive root; only the manifest metadata
// is persisted.
type Skill struct {
	persistence persistence.Persistence
	publisher   EventPublisher
}

func NewSkill(persistence persistence.Persistence, publisher EventPublisher) *Skill {
	return &Skill{
		persistence: persistence,
		publisher:   publisher,
	}
}

func (s *Skill) List(ctx context.Context) ([]*models.Skill, error) {
	skills, err := s.persistence.Skills().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	return skills, nil
}

func (s *Skill) FetchByID(ctx context.Context, id string) (*models.Skill, error) {
	return s.persistence.Skills().GetByID(ctx, id)
}

// Install reads a skill package, validates its manifest, and registers the
// skill. Installing an already-installed skill ID fails with
// ErrSkillAlreadyExists; use Upgrade to replace an installed skill.
func (s *Skill) Install(ctx context.Context, pkg []byte) (*models.Skill, error) {
	manifest, err := readManifest(pkg)
	if err != nil {
		return nil, err
	}

	existing, err := s.persistence.Skills().GetByID(ctx, manifest.ID)
	if err != nil && !persistence.IsSkillNotFound(err) {
		return nil, fmt.Errorf("failed to check for existing skill: %w", err)
	}

	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrSkillAlreadyExists, manifest.ID)
	}

	now := time.Now().UTC()
	skill := &models.Skill{
		ID:          manifest.ID,
		Name:        manifest.Name,
		Description: manifest.Description,
		Version:     manifest.Version,
		Author:      manifest.Author,
		InstalledAt: now,
		UpdatedAt:   now,
	}

	if err := s.persistence.Skills().Save(ctx, skill); err != nil {
		return nil, fmt.Errorf("failed to save skill: %w", err)
	}

	return skill, nil
}

// Upgrade replaces an installed skill with the package's version, keeping
// the original install timestamp.
func (s *Skill) Upgrade(ctx context.Context, pkg []byte) (*models.Skill, error) {
	manifest, err := readManifest(pkg)
	if err != nil {
		return nil, err
	}

	existing, err := s.persistence.Skills().GetByID(ctx, manifest.ID)
	if err != nil {
		return nil, err
	}

	skill := &models.Skill{
		ID:          manifest.ID,
		Name:        manifest.Name,
		Description: manifest.Description,
		Version:     manifest.Version,
		Author:      manifest.Author,
		InstalledAt: existing.InstalledAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.persistence.Skills().Save(ctx, skill); err != nil {
		return nil, fmt.Errorf("failed to save skill: %w", err)
	}

	return skill, nil
}

func (s *Skill) Delete(ctx context.Context, id string) error {
	return s.persistence.Skills().Delete(ctx, id)
}

// readManifest extracts and validates the manifest.json from a skill
// package. All archive problems surface as ErrInvalidSkillPackage so
// handlers can map them to a client error.
func readManifest(pkg []byte) (*models.SkillManifest, error) {
	reader, err := zip.NewReader(bytes.NewReader(pkg), int64(len(pkg)))
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip archive: %w", ErrInvalidSkillPackage, err)
	}

	file, err := reader.Open(skillManifestName)
	if err != nil {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidSkillPackage, skillManifestName)
	}
	defer file.Close()

	var manifest models.SkillManifest
	if err := json.NewDecoder(file).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("%w: malformed %s: %w", ErrInvalidSkillPackage, skillManifestName, err)
	}

	if manifest.ID == "" || manifest.Version == "" {
		return nil, fmt.Errorf("%w: manifest requires id and version", ErrInvalidSkillPackage)
	}

	if err := manifest.Name.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSkillPackage, err)
	}

	return &manifest, nil
}
