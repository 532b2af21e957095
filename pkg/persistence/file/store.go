package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// store reads and writes one JSON document per entity under dir.
// Writes go through a temp file plus rename so readers never observe a
// partially written document.
type store[T any] struct {
	dir string
}

func newStore[T any](root, entity string) *store[T] {
	return &store[T]{dir: filepath.Join(root, entity)}
}

func (s *store[T]) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

func (s *store[T]) list() ([]*T, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*T{}, nil
		}

		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	items := make([]*T, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		item, err := s.get(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}

		if item != nil {
			items = append(items, item)
		}
	}

	return items, nil
}

// get returns nil, nil when the document does not exist; typed repositories
// map that to their sentinel not-found error.
func (s *store[T]) get(id string) (*T, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read %s: %w", s.path(id), err)
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path(id), err)
	}

	return &item, nil
}

func (s *store[T]) save(id string, item *T) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.dir, err)
	}

	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", id, err)
	}

	tmp, err := os.CreateTemp(s.dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to replace %s: %w", s.path(id), err)
	}

	return nil
}

// delete reports whether a document was actually removed.
func (s *store[T]) delete(id string) (bool, error) {
	err := os.Remove(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("failed to delete %s: %w", s.path(id), err)
	}

	return true, nil
}
