package driven

import "github.com/cadastral-labs/pointhist-cli/internal/core/domain"

// ResultSink persists the cumulative results report of a reconcile run.
// The report is rewritten after every processed point so an interrupted
// run leaves an accurate record behind.
type ResultSink interface {
	// Write replaces the stored report with the given snapshot.
	Write(report *domain.ResultsReport) error

	// Path returns the report file location.
	Path() string
}
