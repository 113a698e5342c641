package driven

import (
	"context"
	"time"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// Repository provides access to the remote document library that holds
// one folder per survey point, each containing a history text file.
type Repository interface {
	// MonumentType looks up the monument description recorded for a point
	// in the library metadata list. Returns domain.ErrNotFound when the
	// point has no entry or the entry carries no description.
	MonumentType(ctx context.Context, pointNumber string) (string, error)

	// FindTextFile returns the first .txt file in the point's folder.
	// The extension match ignores case. Returns domain.ErrNoTextFile
	// when the folder holds no text file.
	FindTextFile(ctx context.Context, pointNumber string) (*domain.FileInfo, error)

	// FileContent fetches the raw text of a file in the point's folder.
	FileContent(ctx context.Context, pointNumber, fileName string) (string, error)

	// CreateFile creates a new file in the point's folder.
	CreateFile(ctx context.Context, pointNumber, fileName, content string) error

	// UpdateFile overwrites an existing file in the point's folder.
	UpdateFile(ctx context.Context, pointNumber, fileName, content string) error

	// RenameFile renames a file within the point's folder, overwriting
	// any file already carrying the new name.
	RenameFile(ctx context.Context, pointNumber, oldName, newName string) error

	// PointsAddedBetween returns the points whose date-added falls within
	// the range. A nil end leaves the range open-ended.
	PointsAddedBetween(ctx context.Context, start time.Time, end *time.Time) ([]domain.PointRecord, error)
}
