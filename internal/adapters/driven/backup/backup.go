// Package backup persists pre-mutation snapshots of history files to
// the local filesystem. A snapshot is written before any remote write;
// reconciliation aborts a point when its snapshot cannot be stored.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
)

// timestampLayout names snapshots down to the second, so repeated runs
// against the same point never overwrite an earlier snapshot.
const timestampLayout = "20060102_150405"

// Ensure Store implements the interface.
var _ driven.BackupStore = (*Store)(nil)

// Store writes snapshots under a root directory, one subdirectory per
// point.
type Store struct {
	root string
	now  func() time.Time
}

// NewStore creates a backup store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{
		root: dir,
		now:  time.Now,
	}
}

// Write stores content as a timestamped snapshot for a point and returns
// the path it was written to. The snapshot is a byte-exact copy of the
// fetched content.
func (s *Store) Write(pointNumber, fileName, content string) (string, error) {
	dir := filepath.Join(s.root, "Point_"+pointNumber)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("original_%s_%s.txt",
		strings.ReplaceAll(fileName, ".txt", ""), s.now().Format(timestampLayout))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write backup file: %w", err)
	}
	return path, nil
}

// Root returns the directory snapshots are written under.
func (s *Store) Root() string {
	return s.root
}
