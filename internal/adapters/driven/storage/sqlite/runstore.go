package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun creates or updates a run record.
func (s *runStore) SaveRun(ctx context.Context, run *domain.Run) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, started_at, ended_at, succeeded, failed, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			succeeded = excluded.succeeded,
			failed = excluded.failed,
			skipped = excluded.skipped
	`, run.ID, string(run.Kind),
		run.StartedAt.UTC().Format(time.RFC3339),
		formatNullableTime(run.EndedAt),
		run.Succeeded, run.Failed, run.Skipped)

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *runStore) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, kind, started_at, ended_at, succeeded, failed, skipped
		FROM runs WHERE id = ?
	`, id)

	return scanRun(row)
}

// ListRuns returns the most recent runs, newest first.
func (s *runStore) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, kind, started_at, ended_at, succeeded, failed, skipped
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRunRows(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}

	return runs, nil
}

// RecordOutcome logs one per-point outcome for a run.
func (s *runStore) RecordOutcome(ctx context.Context, runID string, outcome domain.PointOutcome) error {
	if runID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO run_points (run_id, point_number, item_id, success, error)
		VALUES (?, ?, ?, ?, ?)
	`, runID, outcome.PointNumber, outcome.ItemID,
		boolToInt(outcome.Success), nullString(outcome.Error))

	if err != nil {
		return fmt.Errorf("recording outcome: %w", err)
	}
	return nil
}

// GetOutcomes returns the outcomes of a run in processing order.
func (s *runStore) GetOutcomes(ctx context.Context, runID string) ([]domain.PointOutcome, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT point_number, item_id, success, error
		FROM run_points
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []domain.PointOutcome //nolint:prealloc // size unknown from query
	for rows.Next() {
		var o domain.PointOutcome
		var success int
		var errMsg sql.NullString
		if err := rows.Scan(&o.PointNumber, &o.ItemID, &success, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Success = success == 1
		if errMsg.Valid {
			o.Error = errMsg.String
		}
		outcomes = append(outcomes, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcomes: %w", err)
	}

	return outcomes, nil
}

// PruneRuns removes old runs beyond the retention limit.
// Keeps the most recent 'keep' runs; outcomes cascade away with their run.
func (s *runStore) PruneRuns(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM runs
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (ORDER BY started_at DESC) as rn
				FROM runs
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanRun scans a single run row.
func scanRun(row *sql.Row) (*domain.Run, error) {
	var run domain.Run
	var kind, startedAt string
	var endedAt sql.NullString

	if err := row.Scan(&run.ID, &kind, &startedAt, &endedAt,
		&run.Succeeded, &run.Failed, &run.Skipped); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Kind = domain.RunKind(kind)
	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		run.StartedAt = t
	}
	run.EndedAt = parseNullableTime(endedAt)

	return &run, nil
}

// scanRunRows scans a run from *sql.Rows.
func scanRunRows(rows *sql.Rows) (*domain.Run, error) {
	var run domain.Run
	var kind, startedAt string
	var endedAt sql.NullString

	if err := rows.Scan(&run.ID, &kind, &startedAt, &endedAt,
		&run.Succeeded, &run.Failed, &run.Skipped); err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Kind = domain.RunKind(kind)
	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		run.StartedAt = t
	}
	run.EndedAt = parseNullableTime(endedAt)

	return &run, nil
}

// formatNullableTime formats a time to RFC3339 string, or returns nil for zero time.
func formatNullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// parseNullableTime parses a nullable RFC3339 string to time.Time.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{} // Return zero time on parse error
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
