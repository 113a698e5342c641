package driving

import (
	"context"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// AppendRequest carries everything a history append run needs beyond the
// stored profile.
type AppendRequest struct {
	// CSVPath is the observation export to process.
	// Ignored by Watch, which derives paths from the watched directory.
	CSVPath string

	// Observer is the full name recorded in each entry.
	Observer string

	// Initials are recorded in each entry's initials column.
	Initials string

	// Permit is the monument permit number. May be empty.
	Permit string
}

// HistoryAppender drives the observation append pipeline: one history
// entry per valid CSV row, created or appended in the remote library.
type HistoryAppender interface {
	// Append processes every observation row of the CSV sequentially.
	// Row failures are recorded in the summary; only the CSV itself
	// being unreadable fails the run.
	Append(ctx context.Context, req AppendRequest) (*domain.RunSummary, error)

	// Watch processes each observation CSV that appears in dir, one file
	// at a time, until the context is cancelled.
	Watch(ctx context.Context, dir string, req AppendRequest) error
}
