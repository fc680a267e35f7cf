// Package staging manages the scratch directory holding the most recent
// upload and its generated workbook. One submission owns the directory at a
// time: the previous contents are cleared before a new file is staged.
package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputFilename is the fixed name of the generated workbook on disk.
const OutputFilename = "output.xlsx"

type Workspace struct {
	dir string
}

// New creates (or reuses) the staging directory.
func New(dir string) (*Workspace, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

func (w *Workspace) Dir() string {
	return w.dir
}

// Stage clears the workspace and writes the uploaded payload under a
// sanitized version of its declared filename. Returns the staged path.
func (w *Workspace) Stage(filename string, data []byte) (string, error) {
	if err := w.Clear(); err != nil {
		return "", err
	}

	name := SanitizeFilename(filename)
	if name == "" {
		name = "upload"
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	return path, nil
}

// StoreOutput writes the generated workbook next to the staged upload.
func (w *Workspace) StoreOutput(data []byte) (string, error) {
	path := filepath.Join(w.dir, OutputFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("store output: %w", err)
	}
	return path, nil
}

// Clear removes every regular file in the workspace.
func (w *Workspace) Clear() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("read staging dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(w.dir, entry.Name())); err != nil {
			return fmt.Errorf("clear staging dir: %w", err)
		}
	}
	return nil
}

// Release removes the whole workspace. Called on shutdown.
func (w *Workspace) Release() error {
	return os.RemoveAll(w.dir)
}

// SanitizeFilename strips any path components and characters outside a
// conservative allow-list.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
