package catalog

import (
	"fmt"
	"time"
)

// compactTimeLayout is the fixed-width timestamp format embedded in archive
// filenames (YYYYMMDDHHMMSS).
const compactTimeLayout = "20060102150405"

// ParseCompactTime parses a 14-character compact timestamp (YYYYMMDDHHMMSS)
// into a UTC instant. Archive timestamps carry no timezone marker and are UTC
// by convention. Invalid calendar or clock fields fail rather than wrap.
func ParseCompactTime(s string) (time.Time, error) {
	if len(s) != len(compactTimeLayout) {
		return time.Time{}, fmt.Errorf("%w: %q has %d characters, want 14 (YYYYMMDDHHMMSS)",
			ErrMalformedTimestamp, s, len(s))
	}

	t, err := time.ParseInLocation(compactTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, s, err)
	}

	return t, nil
}
