package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

func TestRunHistoryService_List(t *testing.T) {
	store := newMockRunStore()
	_ = store.SaveRun(context.Background(), &domain.Run{
		ID:        "run-1",
		Kind:      domain.RunKindAppend,
		StartedAt: time.Now(),
	})
	service := NewRunHistoryService(store)

	runs, err := service.List(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunHistoryService_Get(t *testing.T) {
	t.Run("returns run with outcomes", func(t *testing.T) {
		store := newMockRunStore()
		_ = store.SaveRun(context.Background(), &domain.Run{ID: "run-1", Kind: domain.RunKindReconcile})
		_ = store.RecordOutcome(context.Background(), "run-1",
			domain.PointOutcome{PointNumber: "101", Success: true})
		service := NewRunHistoryService(store)

		run, outcomes, err := service.Get(context.Background(), "run-1")

		require.NoError(t, err)
		assert.Equal(t, domain.RunKindReconcile, run.Kind)
		require.Len(t, outcomes, 1)
		assert.Equal(t, "101", outcomes[0].PointNumber)
	})

	t.Run("unknown run", func(t *testing.T) {
		service := NewRunHistoryService(newMockRunStore())

		_, _, err := service.Get(context.Background(), "missing")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRunHistoryService_Prune(t *testing.T) {
	t.Run("negative keep is invalid", func(t *testing.T) {
		service := NewRunHistoryService(newMockRunStore())

		err := service.Prune(context.Background(), -1)

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("delegates to the store", func(t *testing.T) {
		service := NewRunHistoryService(newMockRunStore())

		err := service.Prune(context.Background(), 5)

		assert.NoError(t, err)
	})
}
