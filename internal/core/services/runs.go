package services

import (
	"context"
	"fmt"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
)

// Ensure RunHistoryService implements the interface.
var _ driving.RunHistory = (*RunHistoryService)(nil)

// RunHistoryService exposes stored pipeline runs for inspection.
type RunHistoryService struct {
	store driven.RunStore
}

// NewRunHistoryService creates a new run history service.
func NewRunHistoryService(store driven.RunStore) *RunHistoryService {
	return &RunHistoryService{store: store}
}

// List returns the most recent runs, newest first.
func (s *RunHistoryService) List(ctx context.Context, limit int) ([]domain.Run, error) {
	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns a run and its per-point outcomes.
func (s *RunHistoryService) Get(ctx context.Context, id string) (*domain.Run, []domain.PointOutcome, error) {
	run, err := s.store.GetRun(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get run: %w", err)
	}

	outcomes, err := s.store.GetOutcomes(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get run outcomes: %w", err)
	}
	return run, outcomes, nil
}

// Prune removes old runs, keeping the most recent 'keep'.
func (s *RunHistoryService) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return domain.ErrInvalidInput
	}
	if err := s.store.PruneRuns(ctx, keep); err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}
