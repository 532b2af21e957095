// Package maintenance provides backup, secret rotation, and cache upkeep
// for the admin service.
package maintenance

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidArchive = errors.New("invalid backup archive")

// ExportBackup writes a zip archive of every document under the file
// persistence root. Paths inside the archive are relative to the root.
func ExportBackup(w io.Writer, root string) error {
	writer := zip.NewWriter(w)

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			return nil
		}

		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		target, err := writer.Create(filepath.ToSlash(relative))
		if err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", relative, err)
		}

		source, err := os.Open(path)
		if err != nil {
			return err
		}
		defer source.Close()

		_, err = io.Copy(target, source)

		return err
	})
	if err != nil {
		return fmt.Errorf("failed to export backup: %w", err)
	}

	return writer.Close()
}

// ImportBackup restores an archive produced by ExportBackup into the file
// persistence root. Entries escaping the root or carrying non-document
// names are rejected before anything is written.
func ImportBackup(archive []byte, root string) error {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("%w: not a zip archive: %w", ErrInvalidArchive, err)
	}

	for _, file := range reader.File {
		if err := validateEntryName(file.Name); err != nil {
			return err
		}
	}

	for _, file := range reader.File {
		if err := restoreEntry(file, root); err != nil {
			return err
		}
	}

	return nil
}

func validateEntryName(name string) error {
	if !strings.HasSuffix(name, ".json") {
		return fmt.Errorf("%w: unexpected entry %s", ErrInvalidArchive, name)
	}

	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return fmt.Errorf("%w: entry %s escapes the restore root", ErrInvalidArchive, name)
	}

	return nil
}

func restoreEntry(file *zip.File, root string) error {
	target := filepath.Join(root, filepath.FromSlash(file.Name))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to restore %s: %w", file.Name, err)
	}

	source, err := file.Open()
	if err != nil {
		return fmt.Errorf("%w: unreadable entry %s: %w", ErrInvalidArchive, file.Name, err)
	}
	defer source.Close()

	destination, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to restore %s: %w", file.Name, err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return fmt.Errorf("failed to restore %s: %w", file.Name, err)
	}

	return nil
}
