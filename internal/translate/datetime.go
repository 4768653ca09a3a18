// Package translate converts between the catalog's internal types and the
// STAC representations served to callers.
package translate

import (
	"fmt"
	"strings"
	"time"

	"github.com/rkm/sar-coloc/internal/catalog"
)

// queryTimeFormats are the timestamp shapes accepted from callers: RFC3339,
// the archives' compact form, and a bare date.
var queryTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseQueryTime parses a user-supplied instant: RFC3339, a bare date, or the
// 14-character compact archive form. Returns time in UTC.
func ParseQueryTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time string")
	}

	if len(s) == 14 {
		return catalog.ParseCompactTime(s)
	}

	var lastErr error
	for _, format := range queryTimeFormats {
		t, err := time.ParseInLocation(format, s, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}

	return time.Time{}, fmt.Errorf("unparseable time %q: %w", s, lastErr)
}

// FormatTime formats an instant as RFC3339 for STAC properties.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
