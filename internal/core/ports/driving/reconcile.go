package driving

import (
	"context"
	"time"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// ReconcileRequest selects which points a reconciliation run covers.
type ReconcileRequest struct {
	// Start is the inclusive lower bound on date-added.
	Start time.Time

	// End is the inclusive upper bound. Nil leaves the range open.
	End *time.Time

	// MaxPoints caps how many points are processed. Zero means no limit.
	MaxPoints int
}

// DateReconciler drives the date reconciliation pipeline: for every point
// added in the range, the dated surveyor lines of its history file are
// rewritten to the point's date-added.
type DateReconciler interface {
	// Reconcile processes the selected points sequentially. Per-point
	// failures are recorded in the summary; only the range query itself
	// failing fails the run.
	Reconcile(ctx context.Context, req ReconcileRequest) (*domain.RunSummary, error)
}
