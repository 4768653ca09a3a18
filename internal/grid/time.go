package grid

import (
	"fmt"
	"strings"
	"time"

	"github.com/rkm/sar-coloc/internal/catalog"
)

// cfEpochLayouts are the reference-instant formats seen in CF "units"
// attributes like "seconds since 1990-01-01 00:00:00".
var cfEpochLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// TimeInterval derives a product's temporal coverage from the min/max of its
// time coordinate. Used for swath archives (HY2) whose filenames carry no
// usable timestamps.
func TimeInterval(g Grid) (catalog.Interval, error) {
	values, err := g.Coord("time")
	if err != nil {
		return catalog.Interval{}, err
	}
	if len(values) == 0 {
		return catalog.Interval{}, fmt.Errorf("time coordinate is empty")
	}

	units, ok := g.VarAttr("time", "units")
	if !ok {
		return catalog.Interval{}, fmt.Errorf("time coordinate has no units attribute")
	}

	epoch, scale, err := parseCFUnits(units)
	if err != nil {
		return catalog.Interval{}, err
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	return catalog.Interval{
		Start: epoch.Add(time.Duration(minV * float64(scale))),
		Stop:  epoch.Add(time.Duration(maxV * float64(scale))),
	}, nil
}

// parseCFUnits decodes a CF time units attribute ("<unit> since <instant>")
// into its reference epoch and the duration of one unit.
func parseCFUnits(units string) (time.Time, time.Duration, error) {
	fields := strings.Fields(units)
	if len(fields) < 3 || !strings.EqualFold(fields[1], "since") {
		return time.Time{}, 0, fmt.Errorf("unsupported time units %q", units)
	}

	var scale time.Duration
	switch strings.ToLower(strings.TrimSuffix(fields[0], "s")) {
	case "second", "sec":
		scale = time.Second
	case "minute", "min":
		scale = time.Minute
	case "hour", "hr":
		scale = time.Hour
	case "day":
		scale = 24 * time.Hour
	default:
		return time.Time{}, 0, fmt.Errorf("unsupported time unit %q in %q", fields[0], units)
	}

	instant := strings.Join(fields[2:], " ")
	for _, layout := range cfEpochLayouts {
		if epoch, err := time.ParseInLocation(layout, instant, time.UTC); err == nil {
			return epoch, scale, nil
		}
	}

	return time.Time{}, 0, fmt.Errorf("unparseable epoch in time units %q", units)
}
