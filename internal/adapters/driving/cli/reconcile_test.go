package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
)

// mockReconciler implements driving.DateReconciler for testing.
type mockReconciler struct {
	req     driving.ReconcileRequest
	summary *domain.RunSummary
	err     error
}

func (m *mockReconciler) Reconcile(_ context.Context, req driving.ReconcileRequest) (*domain.RunSummary, error) {
	m.req = req
	return m.summary, m.err
}

func setupReconcileTest(t *testing.T, reconciler *mockReconciler) func() {
	t.Helper()
	t.Setenv("SHAREPOINT_PASSWORD", "hunter2")

	oldProfile := profileService
	oldFactory := reconcilerFactory
	profileService = &mockProfileService{profile: testProfile()}
	reconcilerFactory = func(_ *domain.Profile, _ domain.Credentials) (driving.DateReconciler, error) {
		return reconciler, nil
	}
	return func() {
		profileService = oldProfile
		reconcilerFactory = oldFactory
		reconcileStart = ""
		reconcileEnd = ""
		reconcileMax = 0
	}
}

func emptySummary() *domain.RunSummary {
	started := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	return &domain.RunSummary{
		RunID:     "run-1",
		Kind:      domain.RunKindReconcile,
		StartedAt: started,
		EndedAt:   started.Add(time.Second),
	}
}

func TestReconcileCmd_Use(t *testing.T) {
	assert.Equal(t, "reconcile", reconcileCmd.Use)
}

func TestReconcileCmd_ParsesDateRange(t *testing.T) {
	reconciler := &mockReconciler{summary: emptySummary()}
	cleanup := setupReconcileTest(t, reconciler)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"reconcile", "--start", "06/01/2024", "--end", "06/30/2024", "--max", "25",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), reconciler.req.Start)
	require.NotNil(t, reconciler.req.End)
	// End bound covers the whole end day
	assert.Equal(t, time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC), *reconciler.req.End)
	assert.Equal(t, 25, reconciler.req.MaxPoints)
	assert.Contains(t, buf.String(), "/tmp/output")
}

func TestReconcileCmd_OpenEndedRange(t *testing.T) {
	reconciler := &mockReconciler{summary: emptySummary()}
	cleanup := setupReconcileTest(t, reconciler)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"reconcile", "--start", "06/01/2024"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Nil(t, reconciler.req.End)
	assert.Zero(t, reconciler.req.MaxPoints)
}

func TestReconcileCmd_RejectsBadStartDate(t *testing.T) {
	cleanup := setupReconcileTest(t, &mockReconciler{summary: emptySummary()})
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"reconcile", "--start", "2024-06-01"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected MM/DD/YYYY")
}

func TestReconcileCmd_RejectsBadEndDate(t *testing.T) {
	cleanup := setupReconcileTest(t, &mockReconciler{summary: emptySummary()})
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"reconcile", "--start", "06/01/2024", "--end", "June 30"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected MM/DD/YYYY")
}

func TestReconcileCmd_FailsWithoutFactory(t *testing.T) {
	cleanup := setupReconcileTest(t, &mockReconciler{})
	defer cleanup()
	reconcilerFactory = nil

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"reconcile", "--start", "06/01/2024"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reconcile service not configured")
}
