// Package cmd provides common initialization functions for command-line
// applications.
package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aihub/hubadmin/pkg/persistence"
	"github.com/aihub/hubadmin/pkg/persistence/file"
	"github.com/aihub/hubadmin/pkg/persistence/postgresql"
)

// NewPersistence builds the store the database URL selects: postgres:// for
// PostgreSQL, anything else for the file store.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		store, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			panic(err)
		}

		return store
	default:
		return file.NewPersistence(databaseURL)
	}
}

// BackupRoot returns the directory backing a file store, or "" when the
// store has no exportable directory.
func BackupRoot(store persistence.Persistence) string {
	if filestore, ok := store.(*file.Persistence); ok {
		return filestore.Root()
	}

	return ""
}
