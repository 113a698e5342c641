package driving

import (
	"context"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// RunHistory exposes stored pipeline runs for inspection.
type RunHistory interface {
	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.Run, error)

	// Get returns a run and its per-point outcomes.
	Get(ctx context.Context, id string) (*domain.Run, []domain.PointOutcome, error)

	// Prune removes old runs, keeping the most recent 'keep'.
	Prune(ctx context.Context, keep int) error
}
