package domain

import "strings"

// PointRecord is a survey point entry from the document library metadata list.
type PointRecord struct {
	// ItemID is the numeric list item identifier.
	ItemID int

	// PointNumber identifies the survey point, without the "Point " prefix.
	PointNumber string

	// DateAdded is the raw added timestamp from the list metadata.
	// Parse it with ParseItemDate when a calendar date is needed.
	DateAdded string
}

// FileInfo describes a file within a point folder.
type FileInfo struct {
	// Name is the file leaf name, e.g. "Point 1234.txt".
	Name string

	// ServerRelativePath is the full server-relative path to the file.
	ServerRelativePath string
}

// HistoryFileName returns the canonical history file name for a point.
func HistoryFileName(pointNumber string) string {
	return "Point " + pointNumber + ".txt"
}

// IsCanonicalFileName reports whether name already matches the canonical
// history file name for the point. The comparison ignores case.
func IsCanonicalFileName(name, pointNumber string) bool {
	return strings.EqualFold(name, HistoryFileName(pointNumber))
}

// PointNumberFromLeaf derives a point number from a file or folder leaf name
// by stripping the "Point " prefix. Leaf names without the prefix are
// returned unchanged.
func PointNumberFromLeaf(leaf string) string {
	return strings.TrimSpace(strings.TrimPrefix(leaf, "Point "))
}
