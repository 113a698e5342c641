package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
	"github.com/cadastral-labs/pointhist-cli/internal/logger"
)

// Ensure ReconcileService implements the interface.
var _ driving.DateReconciler = (*ReconcileService)(nil)

// ReconcileService drives the date reconciliation pipeline. Points are
// processed strictly one at a time; the results checkpoint is rewritten
// after every point so an interrupted run leaves an accurate record.
type ReconcileService struct {
	repo    driven.Repository
	backups driven.BackupStore
	results driven.ResultSink
	runs    driven.RunStore
}

// NewReconcileService creates a new reconcile service.
// The run store is optional; pass nil to skip run history recording.
func NewReconcileService(
	repo driven.Repository,
	backups driven.BackupStore,
	results driven.ResultSink,
	runs driven.RunStore,
) *ReconcileService {
	return &ReconcileService{
		repo:    repo,
		backups: backups,
		results: results,
		runs:    runs,
	}
}

// Reconcile processes every point added in the requested range.
// A failing range query is logged and yields a zero-point summary, not
// an error; per-point failures are recorded and processing continues.
func (s *ReconcileService) Reconcile(
	ctx context.Context, req driving.ReconcileRequest,
) (*domain.RunSummary, error) {
	points, err := s.repo.PointsAddedBetween(ctx, req.Start, req.End)
	if err != nil {
		logger.Error("date range query failed: %v", err)
		points = nil
	}

	if req.MaxPoints > 0 && len(points) > req.MaxPoints {
		logger.Info("limiting run to the first %d of %d points", req.MaxPoints, len(points))
		points = points[:req.MaxPoints]
	}

	summary := &domain.RunSummary{
		RunID:     uuid.NewString(),
		Kind:      domain.RunKindReconcile,
		StartedAt: time.Now(),
	}
	logger.Info("reconciling %d points", len(points))

	report := domain.NewResultsReport()
	for _, point := range points {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome := s.processPoint(ctx, point)
		summary.Outcomes = append(summary.Outcomes, outcome)
		report.Record(outcome)

		// Checkpoint after every point, not at the end of the run.
		if err := s.results.Write(report); err != nil {
			logger.Warn("write results checkpoint: %v", err)
		}
		s.recordOutcome(ctx, summary.RunID, outcome)
	}

	summary.EndedAt = time.Now()
	s.saveRun(ctx, summary)
	return summary, nil
}

// processPoint rewrites the dated surveyor lines of one point's history
// file to the point's date-added.
func (s *ReconcileService) processPoint(ctx context.Context, point domain.PointRecord) domain.PointOutcome {
	fail := func(err error) domain.PointOutcome {
		logger.Error("point %s: %v", point.PointNumber, err)
		return domain.PointOutcome{
			PointNumber: point.PointNumber,
			ItemID:      point.ItemID,
			Error:       err.Error(),
		}
	}

	newDate, err := domain.ParseItemDate(point.DateAdded)
	if err != nil {
		return fail(err)
	}

	file, err := s.repo.FindTextFile(ctx, point.PointNumber)
	if err != nil {
		return fail(err)
	}

	content, err := s.repo.FileContent(ctx, point.PointNumber, file.Name)
	if err != nil {
		return fail(err)
	}

	// Hard precondition: no remote mutation without a local snapshot.
	backupPath, err := s.backups.Write(point.PointNumber, file.Name, content)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", domain.ErrBackupFailed, err))
	}
	logger.Info("point %s: original backed up to %s", point.PointNumber, backupPath)

	patched, patchedLines := domain.PatchHistoryDates(content, newDate)
	if patchedLines == 0 {
		return fail(domain.ErrNoLinesPatched)
	}
	logger.Info("point %s: %d dated line(s) rewritten to %s",
		point.PointNumber, patchedLines, newDate.Format(domain.EntryDateLayout))

	// The write targets the canonical name even when the rename fails.
	fileName := file.Name
	if !domain.IsCanonicalFileName(fileName, point.PointNumber) {
		canonical := domain.HistoryFileName(point.PointNumber)
		if err := s.repo.RenameFile(ctx, point.PointNumber, fileName, canonical); err != nil {
			logger.Warn("point %s: rename failed, updating content anyway: %v", point.PointNumber, err)
		}
		fileName = canonical
	}

	if err := s.repo.UpdateFile(ctx, point.PointNumber, fileName, patched); err != nil {
		return fail(err)
	}

	return domain.PointOutcome{
		PointNumber: point.PointNumber,
		ItemID:      point.ItemID,
		Success:     true,
	}
}

func (s *ReconcileService) recordOutcome(ctx context.Context, runID string, outcome domain.PointOutcome) {
	if s.runs == nil {
		return
	}
	if err := s.runs.RecordOutcome(ctx, runID, outcome); err != nil {
		logger.Warn("record outcome for point %s: %v", outcome.PointNumber, err)
	}
}

func (s *ReconcileService) saveRun(ctx context.Context, summary *domain.RunSummary) {
	if s.runs == nil {
		return
	}
	run := &domain.Run{
		ID:        summary.RunID,
		Kind:      summary.Kind,
		StartedAt: summary.StartedAt,
		EndedAt:   summary.EndedAt,
		Succeeded: summary.Succeeded(),
		Failed:    summary.Failed(),
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		logger.Warn("save run %s: %v", run.ID, err)
	}
}
