package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
	"github.com/cadastral-labs/pointhist-cli/internal/core/ports/driven"
)

// mockRepository implements driven.Repository with an in-memory folder
// per point. Per-operation error hooks simulate service failures.
type mockRepository struct {
	mu sync.Mutex

	// files maps point number -> file name -> content.
	files map[string]map[string]string

	// monumentTypes maps point number -> description.
	monumentTypes map[string]string

	// points returned by PointsAddedBetween.
	points    []domain.PointRecord
	pointsErr error

	monumentErr error
	findErr     error
	contentErr  error
	createErr   error
	updateErr   error
	renameErr   error

	// calls records operation names in invocation order.
	calls []string
}

var _ driven.Repository = (*mockRepository)(nil)

func newMockRepository() *mockRepository {
	return &mockRepository{
		files:         make(map[string]map[string]string),
		monumentTypes: make(map[string]string),
	}
}

func (m *mockRepository) addFile(point, name, content string) {
	if m.files[point] == nil {
		m.files[point] = make(map[string]string)
	}
	m.files[point][name] = content
}

// hasFolder reports whether any file exists for the point. Safe to call
// while the repository is in use from another goroutine.
func (m *mockRepository) hasFolder(point string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files[point]) > 0
}

func (m *mockRepository) MonumentType(_ context.Context, point string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "MonumentType")
	if m.monumentErr != nil {
		return "", m.monumentErr
	}
	monType, ok := m.monumentTypes[point]
	if !ok || monType == "" {
		return "", domain.ErrNotFound
	}
	return monType, nil
}

func (m *mockRepository) FindTextFile(_ context.Context, point string) (*domain.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "FindTextFile")
	if m.findErr != nil {
		return nil, m.findErr
	}
	for name := range m.files[point] {
		if strings.HasSuffix(strings.ToLower(name), ".txt") {
			return &domain.FileInfo{Name: name}, nil
		}
	}
	return nil, domain.ErrNoTextFile
}

func (m *mockRepository) FileContent(_ context.Context, point, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "FileContent")
	if m.contentErr != nil {
		return "", m.contentErr
	}
	content, ok := m.files[point][name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return content, nil
}

func (m *mockRepository) CreateFile(_ context.Context, point, name, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "CreateFile")
	if m.createErr != nil {
		return m.createErr
	}
	m.addFile(point, name, content)
	return nil
}

func (m *mockRepository) UpdateFile(_ context.Context, point, name, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "UpdateFile")
	if m.updateErr != nil {
		return m.updateErr
	}
	m.addFile(point, name, content)
	return nil
}

func (m *mockRepository) RenameFile(_ context.Context, point, oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "RenameFile")
	if m.renameErr != nil {
		return m.renameErr
	}
	if content, ok := m.files[point][oldName]; ok {
		delete(m.files[point], oldName)
		m.addFile(point, newName, content)
	}
	return nil
}

func (m *mockRepository) PointsAddedBetween(
	_ context.Context, _ time.Time, _ *time.Time,
) ([]domain.PointRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "PointsAddedBetween")
	if m.pointsErr != nil {
		return nil, m.pointsErr
	}
	return m.points, nil
}

// mockBackupStore records written snapshots in memory.
type mockBackupStore struct {
	writes   map[string]string // "point/file" -> content
	writeErr error
}

var _ driven.BackupStore = (*mockBackupStore)(nil)

func newMockBackupStore() *mockBackupStore {
	return &mockBackupStore{writes: make(map[string]string)}
}

func (m *mockBackupStore) Write(point, fileName, content string) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}
	m.writes[point+"/"+fileName] = content
	return "/backups/Point_" + point + "/" + fileName, nil
}

func (m *mockBackupStore) Root() string { return "/backups" }

// mockResultSink keeps every written report snapshot.
type mockResultSink struct {
	snapshots []domain.ResultsReport
	writeErr  error
}

var _ driven.ResultSink = (*mockResultSink)(nil)

func (m *mockResultSink) Write(report *domain.ResultsReport) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	snapshot := domain.ResultsReport{
		Successful: append([]domain.ResultEntry{}, report.Successful...),
		Failed:     append([]domain.ResultEntry{}, report.Failed...),
	}
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

func (m *mockResultSink) Path() string { return "/output/processing_results.json" }

// mockRunStore records runs and outcomes in memory.
type mockRunStore struct {
	runs     map[string]*domain.Run
	outcomes map[string][]domain.PointOutcome
}

var _ driven.RunStore = (*mockRunStore)(nil)

func newMockRunStore() *mockRunStore {
	return &mockRunStore{
		runs:     make(map[string]*domain.Run),
		outcomes: make(map[string][]domain.PointOutcome),
	}
}

func (m *mockRunStore) SaveRun(_ context.Context, run *domain.Run) error {
	if run == nil {
		return domain.ErrInvalidInput
	}
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}

func (m *mockRunStore) GetRun(_ context.Context, id string) (*domain.Run, error) {
	run, ok := m.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return run, nil
}

func (m *mockRunStore) ListRuns(_ context.Context, limit int) ([]domain.Run, error) {
	runs := make([]domain.Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, *run)
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *mockRunStore) RecordOutcome(_ context.Context, runID string, outcome domain.PointOutcome) error {
	m.outcomes[runID] = append(m.outcomes[runID], outcome)
	return nil
}

func (m *mockRunStore) GetOutcomes(_ context.Context, runID string) ([]domain.PointOutcome, error) {
	return m.outcomes[runID], nil
}

func (m *mockRunStore) PruneRuns(_ context.Context, _ int) error {
	return nil
}

// errTransport simulates a connection-level failure.
var errTransport = errors.New("connection refused")
