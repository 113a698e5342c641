// Package results persists reconcile run reports as JSON on the local
// filesystem.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
)

const reportFileName = "processing_results.json"

var _ driven.ResultSink = (*FileSink)(nil)

// FileSink writes the results report to a fixed file inside an output
// directory, replacing the previous snapshot on every write.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to processing_results.json inside
// dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{path: filepath.Join(dir, reportFileName)}
}

// Write replaces the stored report with the given snapshot.
func (s *FileSink) Write(report *domain.ResultsReport) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results report: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write results report: %w", err)
	}
	return nil
}

// Path returns the report file location.
func (s *FileSink) Path() string {
	return s.path
}
