package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPeriodicStep is the cadence used by ResolvePeriodic when none is
// configured. Hourly matches the granularity of the reanalysis archives this
// resolver was built for.
const DefaultPeriodicStep = 60 * time.Minute

// ResolvePeriodic steps through the reference interval at the given cadence
// and resolves the path template against each cursor instant, collecting the
// covering resource files. The cursor loop includes the stop instant, so a
// valid interval always yields at least one resolution attempt. Output is
// deduplicated by basename in first-resolution order.
func ResolvePeriodic(ref Interval, template string, step time.Duration, lister Lister) ([]string, error) {
	if ref.Start.After(ref.Stop) {
		return nil, fmt.Errorf("%w: start %s is after stop %s",
			ErrInvalidRange, ref.Start.UTC().Format(time.RFC3339), ref.Stop.UTC().Format(time.RFC3339))
	}
	if step <= 0 {
		step = DefaultPeriodicStep
	}

	seen := make(map[string]bool)
	var out []string

	for cursor := ref.Start; !cursor.After(ref.Stop); cursor = cursor.Add(step) {
		matches, err := lister.List(ExpandTemplate(template, cursor))
		if err != nil {
			return nil, fmt.Errorf("periodic resolution at %s: %w", cursor.UTC().Format(time.RFC3339), err)
		}
		for _, m := range matches {
			base := filepath.Base(m)
			if seen[base] {
				continue
			}
			seen[base] = true
			out = append(out, m)
		}
	}

	return out, nil
}

// ExpandTemplate substitutes the strftime-style calendar placeholders used by
// the archive root registry (%Y, %m, %d, %j, %H, %M) against an instant.
func ExpandTemplate(template string, t time.Time) string {
	u := t.UTC()
	r := strings.NewReplacer(
		"%Y", u.Format("2006"),
		"%m", u.Format("01"),
		"%d", u.Format("02"),
		"%H", u.Format("15"),
		"%M", u.Format("04"),
		"%j", fmt.Sprintf("%03d", u.YearDay()),
	)
	return r.Replace(template)
}
