package domain

import "time"

// RunKind identifies which pipeline produced a run.
type RunKind string

const (
	// RunKindAppend is a history append run driven by an observation CSV.
	RunKindAppend RunKind = "append"

	// RunKindReconcile is a date reconciliation run driven by a date range.
	RunKindReconcile RunKind = "reconcile"
)

// PointOutcome records the result of processing one point during a run.
type PointOutcome struct {
	// PointNumber identifies the processed point.
	PointNumber string

	// ItemID is the metadata list item ID. Zero for append runs,
	// which are driven by the CSV rather than the list.
	ItemID int

	// Success reports whether the point was fully processed.
	Success bool

	// Error holds the failure reason. Empty on success.
	Error string
}

// Run captures the stored record of one pipeline execution.
type Run struct {
	ID        string
	Kind      RunKind
	StartedAt time.Time
	EndedAt   time.Time
	Succeeded int
	Failed    int
	Skipped   int
}

// RunSummary aggregates the outcomes of a pipeline execution.
type RunSummary struct {
	RunID     string
	Kind      RunKind
	StartedAt time.Time
	EndedAt   time.Time

	// Outcomes holds one entry per processed point, in processing order.
	Outcomes []PointOutcome

	// Skipped counts CSV rows that were not processed because a
	// required field was empty. Always zero for reconcile runs.
	Skipped int
}

// Succeeded counts successfully processed points.
func (s *RunSummary) Succeeded() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Success {
			n++
		}
	}
	return n
}

// Failed counts points that could not be processed.
func (s *RunSummary) Failed() int {
	return len(s.Outcomes) - s.Succeeded()
}

// ResultEntry identifies one point in the results checkpoint file.
type ResultEntry struct {
	ID     int    `json:"id"`
	Number string `json:"number"`
}

// ResultsReport mirrors the checkpoint file persisted after every point of
// a reconcile run. It is inspectable progress data, not resume state.
type ResultsReport struct {
	Successful []ResultEntry `json:"successful"`
	Failed     []ResultEntry `json:"failed"`
}

// NewResultsReport returns an empty report.
// Both slices are non-nil so the file always shows arrays.
func NewResultsReport() *ResultsReport {
	return &ResultsReport{
		Successful: []ResultEntry{},
		Failed:     []ResultEntry{},
	}
}

// Record appends an outcome to the matching result list.
func (r *ResultsReport) Record(outcome PointOutcome) {
	entry := ResultEntry{ID: outcome.ItemID, Number: outcome.PointNumber}
	if outcome.Success {
		r.Successful = append(r.Successful, entry)
	} else {
		r.Failed = append(r.Failed, entry)
	}
}
