package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// EntryDateLayout is the MM/DD/YYYY layout used for dates inside history files.
const EntryDateLayout = "01/02/2006"

// initialsMarker tags history lines written on behalf of the county surveyor.
// Only lines carrying this marker are eligible for date reconciliation.
const initialsMarker = "CMS"

var (
	anyDatePattern    = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	markerDatePattern = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+` + initialsMarker)
)

// headerSeparator underlines the column header of a new history file.
var headerSeparator = strings.Repeat("-", 89)

// EntryOptions carries the run-level details stamped into every history entry.
type EntryOptions struct {
	// Observer is the full name of the person who observed the monument.
	Observer string

	// Initials are recorded in the entry's initials column.
	Initials string

	// Permit is the monument permit number facilitated by the work order.
	// Empty when the work order had no permit.
	Permit string

	// Today overrides the entry date. Zero means the current date.
	Today time.Time
}

func (o EntryOptions) today() time.Time {
	if o.Today.IsZero() {
		return time.Now()
	}
	return o.Today
}

// NewHistoryEntry renders one observation as a history file entry.
// The layout is fixed: files produced decades apart must line up.
func NewHistoryEntry(obs Observation, opts EntryOptions) string {
	permitText := ""
	if opts.Permit != "" {
		permitText = opts.Permit + " "
	}
	monumentTypeText := ""
	if obs.MonumentType != "" {
		monumentTypeText = " (" + obs.MonumentType + ")"
	}
	locationText := fmt.Sprintf("Section %s, %s", obs.Section, obs.TownshipRange)

	entry := fmt.Sprintf("\n\n%s\t%s\tThis monument%s was observed with VRS (%s) using %s and Geoid18",
		opts.today().Format(EntryDateLayout), opts.Initials, monumentTypeText, obs.DocumentNum, obs.ControlUsed)
	entry += fmt.Sprintf("\n\t\t\tas part of WO %s. The purpose of this work order was to facilitate %s",
		obs.WorkOrder, permitText)
	entry += fmt.Sprintf("\n\t\t\t%s. Monument observed by %s on %s.\n\n",
		locationText, opts.Observer, obs.DateObserved)
	return entry
}

// ComposeHistoryContent produces the full file content for an observation.
// When existing content is given the entry is appended to it with trailing
// whitespace stripped first. Otherwise a fresh file with the standard header
// is produced.
func ComposeHistoryContent(obs Observation, opts EntryOptions, existing string) string {
	entry := NewHistoryEntry(obs, opts)

	if existing != "" {
		return strings.TrimRightFunc(existing, unicode.IsSpace) + entry
	}

	return fmt.Sprintf("\n    POINT HISTORY FILE: for point %s\n\n(mm/dd/yyyy) \t(initials)\t\tACTION/REMARKS\n%s\n%s",
		obs.PointNumber, headerSeparator, entry)
}

// PatchHistoryDates rewrites the date column of every history line carrying
// the surveyor marker to newDate. Lines are eligible when they contain the
// marker and any MM/DD/YYYY date. All other lines pass through untouched.
// Returns the patched content and the number of eligible lines.
func PatchHistoryDates(content string, newDate time.Time) (string, int) {
	newDateStr := newDate.Format(EntryDateLayout)

	lines := strings.Split(content, "\n")
	patched := 0
	for i, line := range lines {
		if strings.Contains(line, initialsMarker) && anyDatePattern.MatchString(line) {
			lines[i] = markerDatePattern.ReplaceAllString(line, newDateStr+"\t\t"+initialsMarker)
			patched++
		}
	}

	return strings.Join(lines, "\n"), patched
}

// ParseItemDate parses a date value as returned by the metadata list.
// Accepts full timestamps ("2024-06-15T00:00:00Z") and bare dates
// ("2024-06-15"); anything after the first 'T' is ignored.
func ParseItemDate(value string) (time.Time, error) {
	s := value
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidInput, value)
	}
	return t, nil
}
