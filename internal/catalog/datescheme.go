package catalog

import (
	"fmt"
	"time"
)

// DateEntry describes one calendar day of a lookup range. The string fields
// are zero-padded so they can be substituted directly into path templates.
type DateEntry struct {
	// Key is the 8-digit compact day (YYYYMMDD).
	Key string
	// Year is the 4-digit year.
	Year string
	// DayOfYear is the 3-digit 1-based ordinal day (001-366).
	DayOfYear string
	// Month is the 2-digit month (01-12).
	Month string
}

// DateScheme expands [start, stop] into one entry per calendar day, inclusive
// of both endpoints after flooring to day granularity. Entries are emitted in
// ascending date order so downstream glob construction is deterministic.
func DateScheme(start, stop time.Time) ([]DateEntry, error) {
	if start.After(stop) {
		return nil, fmt.Errorf("%w: start %s is after stop %s",
			ErrInvalidRange, start.UTC().Format(time.RFC3339), stop.UTC().Format(time.RFC3339))
	}

	first := floorDay(start)
	last := floorDay(stop)

	var entries []DateEntry
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		entries = append(entries, DateEntry{
			Key:       day.Format("20060102"),
			Year:      day.Format("2006"),
			DayOfYear: fmt.Sprintf("%03d", day.YearDay()),
			Month:     day.Format("01"),
		})
	}

	return entries, nil
}

// floorDay truncates an instant to midnight UTC of its calendar day.
func floorDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
