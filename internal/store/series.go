// Package store persists the stats time series as a JSON file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/yanxi456/code-stats/internal/domain"
)

// FileStore reads and writes a domain.Series as the complete content of a
// single JSON file. It assumes a single writer; the scheduler that triggers
// runs is responsible for not overlapping them.
type FileStore struct {
	path   string
	logger *log.Logger
}

// NewFileStore creates a FileStore for the given path.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the persisted series. A missing file is first-run
// initialization and yields an empty series. Unparsable content also yields
// an empty series with a warning: prior history is discarded rather than
// failing the scheduled run.
func (s *FileStore) Load() (domain.Series, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Printf("Stats file %s does not exist, starting a new series.\n", s.path)
		return domain.Series{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file %s: %w", s.path, err)
	}
	var series domain.Series
	if err := json.Unmarshal(data, &series); err != nil {
		s.logger.Printf("Warning: stats file %s is not a valid series (%v), resetting to empty.\n", s.path, err)
		return domain.Series{}, nil
	}
	return series, nil
}

// Save rewrites the file with the full series. It writes to a temporary
// file in the same directory and renames it into place so a crashed run
// never leaves a truncated file behind.
func (s *FileStore) Save(series domain.Series) error {
	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal series: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close stats file: %w", err)
	}
	// CreateTemp uses 0600; the chart fetches this file, so make it
	// world-readable like a plain write would.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set stats file permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace stats file %s: %w", s.path, err)
	}
	s.logger.Printf("Stats file %s updated, %d records.\n", s.path, len(series))
	return nil
}
