package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SyntheticStopOffset is the assumed acquisition length for archives whose
// filenames encode only a start time (RS2, RCM). It is a fixed domain
// approximation, not a measured value, and may need revisiting per sensor.
const SyntheticStopOffset = 5 * time.Minute

// Interval is a product's temporal coverage, start <= stop.
type Interval struct {
	Start time.Time
	Stop  time.Time
}

// Intersects reports whether the two intervals overlap under closed-interval
// semantics: touching endpoints count as overlap.
func (iv Interval) Intersects(other Interval) bool {
	return !iv.Stop.Before(other.Start) && !iv.Start.After(other.Stop)
}

// Candidate is a discovered product path with its temporal coverage derived
// lazily from the basename.
type Candidate struct {
	Path string

	interval *Interval
}

// Interval returns the candidate's temporal coverage, extracting it from the
// filename on first use.
func (c *Candidate) Interval() (Interval, error) {
	if c.interval == nil {
		iv, err := ExtractInterval(c.Path)
		if err != nil {
			return Interval{}, err
		}
		c.interval = &iv
	}
	return *c.interval, nil
}

// SensorTag identifies a (sensor, processing level) filename convention. Tags
// are derived once at the boundary from the basename; parsing below never
// re-sniffs the name.
type SensorTag string

const (
	TagS1L1 SensorTag = "S1/L1"
	TagS1L2 SensorTag = "S1/L2"
	TagRS2  SensorTag = "RS2/L1"
	TagRCM  SensorTag = "RCM/L1"
	TagSMOS SensorTag = "SMOS/L3"
	TagL2NC SensorTag = "L2/NC"
)

// Convention is an immutable token-splitting rule for one (sensor, level)
// naming scheme.
type Convention struct {
	// Separator splits the basename into fields.
	Separator string
	// StartField is the 0-based index of the start timestamp token, or of the
	// date token when TimeField is set.
	StartField int
	// TimeField is the index of a separate clock token joined to StartField's
	// date token, or -1 when the start token is self-contained.
	TimeField int
	// StopField is the index of the explicit stop token, or -1 when the stop
	// is synthesized as start + SyntheticStopOffset.
	StopField int
}

// conventions maps each sensor/level tag to its extraction rule.
var conventions = map[SensorTag]Convention{
	TagS1L1: {Separator: "_", StartField: 4, TimeField: -1, StopField: 5},
	TagS1L2: {Separator: "-", StartField: 4, TimeField: -1, StopField: 5},
	TagL2NC: {Separator: "-", StartField: 4, TimeField: -1, StopField: 5},
	TagRS2:  {Separator: "_", StartField: 5, TimeField: 6, StopField: -1},
	TagRCM:  {Separator: "_", StartField: 5, TimeField: 6, StopField: -1},
	TagSMOS: {Separator: "_", StartField: 4, TimeField: -1, StopField: 5},
}

// TagFor derives the convention tag for a product basename. Filenames that
// match no known sensor prefix fail with ErrUnrecognizedConvention.
func TagFor(basename string) (SensorTag, error) {
	upper := strings.ToUpper(basename)
	isNC := strings.HasSuffix(upper, ".NC")

	switch {
	case strings.HasPrefix(upper, "S1"):
		if isNC {
			return TagS1L2, nil
		}
		return TagS1L1, nil
	case strings.HasPrefix(upper, "RS2"):
		return TagRS2, nil
	case strings.HasPrefix(upper, "RCM"):
		return TagRCM, nil
	case strings.HasPrefix(upper, "SM_"), strings.HasPrefix(upper, "WM_"):
		return TagSMOS, nil
	case isNC:
		return TagL2NC, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnrecognizedConvention, basename)
}

// ExtractInterval derives a product's temporal coverage from its filename.
// The offending path is attached to every failure since a bad name indicates
// a catalog inconsistency, not a transient condition.
func ExtractInterval(path string) (Interval, error) {
	base := filepath.Base(path)

	tag, err := TagFor(base)
	if err != nil {
		return Interval{}, err
	}

	iv, err := conventions[tag].extract(base)
	if err != nil {
		return Interval{}, fmt.Errorf("%s: %w", path, err)
	}
	return iv, nil
}

func (c Convention) extract(basename string) (Interval, error) {
	fields := strings.Split(basename, c.Separator)

	maxField := c.StartField
	if c.TimeField > maxField {
		maxField = c.TimeField
	}
	if c.StopField > maxField {
		maxField = c.StopField
	}
	if len(fields) <= maxField {
		return Interval{}, fmt.Errorf("%w: %q has %d %q-separated fields, want at least %d",
			ErrUnrecognizedConvention, basename, len(fields), c.Separator, maxField+1)
	}

	var startToken string
	if c.TimeField >= 0 {
		startToken = fields[c.StartField] + fields[c.TimeField]
	} else {
		startToken = compactToken(fields[c.StartField])
	}

	start, err := ParseCompactTime(startToken)
	if err != nil {
		return Interval{}, err
	}

	if c.StopField < 0 {
		return Interval{Start: start, Stop: start.Add(SyntheticStopOffset)}, nil
	}

	stop, err := ParseCompactTime(compactToken(fields[c.StopField]))
	if err != nil {
		return Interval{}, err
	}

	return Interval{Start: start, Stop: stop}, nil
}

// compactToken strips the date/time separator from tokens like
// "20230615T120000" (or the lower-case variant used by level-2 names),
// yielding the 14-character compact form.
func compactToken(tok string) string {
	tok = strings.Replace(tok, "T", "", 1)
	return strings.Replace(tok, "t", "", 1)
}
