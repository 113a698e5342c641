package driven

// BackupStore persists pre-mutation snapshots of history files.
// A snapshot must exist on local disk before any remote write happens.
type BackupStore interface {
	// Write stores content as a timestamped snapshot for a point and
	// returns the path it was written to.
	Write(pointNumber, fileName, content string) (string, error)

	// Root returns the directory snapshots are written under.
	Root() string
}
