package driven

import (
	"context"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// RunStore records pipeline runs and their per-point outcomes for later
// inspection.
type RunStore interface {
	// SaveRun creates or updates a run record.
	SaveRun(ctx context.Context, run *domain.Run) error

	// GetRun retrieves a run by ID.
	// Returns domain.ErrNotFound when no such run exists.
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	// RecordOutcome logs one per-point outcome for a run.
	RecordOutcome(ctx context.Context, runID string, outcome domain.PointOutcome) error

	// GetOutcomes returns the outcomes of a run in processing order.
	GetOutcomes(ctx context.Context, runID string) ([]domain.PointOutcome, error)

	// PruneRuns removes old runs beyond the retention limit, keeping the
	// most recent 'keep' runs and their outcomes.
	PruneRuns(ctx context.Context, keep int) error
}
