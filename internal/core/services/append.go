package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driving"
	"github.com/cadastral-labs/pointhist-cli/internal/logger"
)

// Ensure AppendService implements the interface.
var _ driving.HistoryAppender = (*AppendService)(nil)

// watchSettleDelay gives the exporting application time to finish writing
// a CSV before it is picked up.
const watchSettleDelay = 500 * time.Millisecond

// AppendService drives the observation append pipeline. Each CSV row is
// processed fully, including all repository calls, before the next row
// begins. A row failure never stops the run.
type AppendService struct {
	repo driven.Repository
	runs driven.RunStore
}

// NewAppendService creates a new append service.
// The run store is optional; pass nil to skip run history recording.
func NewAppendService(repo driven.Repository, runs driven.RunStore) *AppendService {
	return &AppendService{
		repo: repo,
		runs: runs,
	}
}

// Append processes every observation row of the CSV sequentially.
// Only the CSV itself being unreadable fails the run.
func (s *AppendService) Append(ctx context.Context, req driving.AppendRequest) (*domain.RunSummary, error) {
	rows, err := ReadObservationsFile(req.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}

	summary := &domain.RunSummary{
		RunID:     uuid.NewString(),
		Kind:      domain.RunKindAppend,
		StartedAt: time.Now(),
	}
	logger.Info("processing %d observation rows from %s", len(rows), req.CSVPath)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if row.Err != nil {
			logger.Warn("line %d: %v, row skipped", row.Line, row.Err)
			summary.Skipped++
			continue
		}

		outcome := s.processObservation(ctx, row.Observation, req)
		summary.Outcomes = append(summary.Outcomes, outcome)
		s.recordOutcome(ctx, summary.RunID, outcome)
	}

	summary.EndedAt = time.Now()
	s.saveRun(ctx, summary)
	return summary, nil
}

// processObservation runs one CSV row through lookup, compose and write.
func (s *AppendService) processObservation(
	ctx context.Context, obs domain.Observation, req driving.AppendRequest,
) domain.PointOutcome {
	point := obs.PointNumber

	// Best-effort enrichment: a missing or unreachable monument entry
	// just leaves the parenthetical out of the entry.
	monType, err := s.repo.MonumentType(ctx, point)
	if err != nil {
		logger.Debug("monument type for point %s unavailable: %v", point, err)
	} else {
		obs.MonumentType = monType
	}

	// Any failure to locate or fetch the current file degrades to the
	// fresh-file path, matching the create-or-update contract.
	existing, fileName := s.existingContent(ctx, point)

	content := domain.ComposeHistoryContent(obs, domain.EntryOptions{
		Observer: req.Observer,
		Initials: req.Initials,
		Permit:   req.Permit,
	}, existing)

	if existing != "" {
		err = s.repo.UpdateFile(ctx, point, fileName, content)
	} else {
		err = s.repo.CreateFile(ctx, point, domain.HistoryFileName(point), content)
	}
	if err != nil {
		logger.Error("point %s: %v", point, err)
		return domain.PointOutcome{PointNumber: point, Error: err.Error()}
	}

	logger.Info("point %s history updated", point)
	return domain.PointOutcome{PointNumber: point, Success: true}
}

// existingContent fetches the current history file content for a point.
// Returns empty content when the folder has no text file or any request
// fails; the caller then takes the create path.
func (s *AppendService) existingContent(ctx context.Context, point string) (content, fileName string) {
	file, err := s.repo.FindTextFile(ctx, point)
	if err != nil {
		if !errors.Is(err, domain.ErrNoTextFile) {
			logger.Warn("point %s: could not check existing file: %v", point, err)
		}
		return "", ""
	}

	content, err = s.repo.FileContent(ctx, point, file.Name)
	if err != nil {
		logger.Warn("point %s: could not fetch existing content: %v", point, err)
		return "", ""
	}
	return content, file.Name
}

// Watch processes each observation CSV dropped into dir, one file at a
// time, until the context is cancelled.
func (s *AppendService) Watch(ctx context.Context, dir string, req driving.AppendRequest) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Info("watching %s for observation CSVs", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isNewCSV(event) {
				continue
			}
			time.Sleep(watchSettleDelay)
			s.processDropped(ctx, event.Name, req)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// processDropped runs one dropped CSV and logs its summary.
func (s *AppendService) processDropped(ctx context.Context, path string, req driving.AppendRequest) {
	req.CSVPath = path
	summary, err := s.Append(ctx, req)
	if err != nil {
		logger.Error("processing %s: %v", path, err)
		return
	}
	logger.Info("%s: %d succeeded, %d failed, %d skipped",
		filepath.Base(path), summary.Succeeded(), summary.Failed(), summary.Skipped)
}

// isNewCSV reports whether the event is a CSV appearing in the watched
// directory. Moves into the directory surface as Create events. Hidden
// files are ignored.
func isNewCSV(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}

// recordOutcome stores one outcome in the run history, when configured.
func (s *AppendService) recordOutcome(ctx context.Context, runID string, outcome domain.PointOutcome) {
	if s.runs == nil {
		return
	}
	if err := s.runs.RecordOutcome(ctx, runID, outcome); err != nil {
		logger.Warn("record outcome for point %s: %v", outcome.PointNumber, err)
	}
}

// saveRun stores the run record in the run history, when configured.
func (s *AppendService) saveRun(ctx context.Context, summary *domain.RunSummary) {
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
		Skipped:   summary.Skipped,
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		logger.Warn("save run %s: %v", run.ID, err)
	}
}
