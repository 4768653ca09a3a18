package catalog

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/rkm/sar-coloc/internal/config"
)

// Lister is the discovery collaborator: it lists path strings matching a
// shell glob pattern. Empty results are normal, not an error. Implementations
// wrapping a remote store with a deadline should treat a timeout as "no match
// for this pattern" and let partial results propagate.
type Lister interface {
	List(pattern string) ([]string, error)
}

// GlobLister implements Lister over the local filesystem.
type GlobLister struct{}

// List returns the paths matching pattern, in lexical order.
func (GlobLister) List(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// Resolver turns (sensor, interval) queries into candidate product lists by
// expanding the sensor's archive root templates over each calendar day of the
// interval and filtering the discovered paths. It holds no mutable state
// beyond its configuration and is safe for concurrent use.
type Resolver struct {
	roots  *config.RootRegistry
	lister Lister
	step   time.Duration
	logger *slog.Logger
}

// NewResolver creates a Resolver over the given root registry and discovery
// collaborator.
func NewResolver(roots *config.RootRegistry, lister Lister, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		roots:  roots,
		lister: lister,
		step:   DefaultPeriodicStep,
		logger: logger,
	}
}

// WithPeriodicStep sets the cadence used for periodic (reanalysis) archives.
func (r *Resolver) WithPeriodicStep(step time.Duration) *Resolver {
	if step > 0 {
		r.step = step
	}
	return r
}

// Search resolves every candidate product for the sensor that may overlap the
// reference interval. Reprocessed archives are collapsed to their newest
// generation and, where the filename convention carries timestamps, candidates
// outside the reference window are discarded. Sensors whose coverage lives in
// the product content (HY2 swaths, ERA5 grids) are returned day-filtered only;
// their intervals are resolved downstream from the opened grid.
func (r *Resolver) Search(sensor string, ref Interval) ([]*Candidate, error) {
	sensor = strings.ToUpper(strings.TrimSpace(sensor))

	roots := r.roots.Get(sensor)
	if roots == nil {
		return nil, fmt.Errorf("%w: no archive roots registered for sensor %q",
			ErrUnrecognizedConvention, sensor)
	}

	if sensor == config.SensorERA5 {
		return r.searchPeriodic(roots, ref)
	}

	paths, err := r.Discover(roots, ref)
	if err != nil {
		return nil, err
	}

	if sensor == config.SensorSMOS {
		paths = DedupGenerations(paths)
	}

	candidates := make([]*Candidate, len(paths))
	for i, p := range paths {
		candidates[i] = &Candidate{Path: p}
	}

	if sensor == config.SensorHY2 {
		// Swath coverage comes from the opened grid's time coordinate, not
		// from the name; day-granular discovery is the only filter here.
		return candidates, nil
	}

	kept, err := FilterByTime(candidates, ref)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("search resolved",
		"sensor", sensor,
		"discovered", len(paths),
		"kept", len(kept),
	)

	return kept, nil
}

// Discover expands the root templates over every calendar day of the interval
// and unions the matches. Pattern order is day-ascending, then root-registry
// level order, then template order; duplicate paths across overlapping day
// windows are eliminated keeping the first occurrence.
func (r *Resolver) Discover(roots *config.SensorRoots, ref Interval) ([]string, error) {
	entries, err := DateScheme(ref.Start, ref.Stop)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var paths []string

	for _, entry := range entries {
		for _, level := range roots.Levels {
			for _, template := range level.Templates {
				pattern := expandEntry(template, entry)
				matches, err := r.lister.List(pattern)
				if err != nil {
					return nil, fmt.Errorf("discovery for pattern %q: %w", pattern, err)
				}
				for _, m := range matches {
					if seen[m] {
						continue
					}
					seen[m] = true
					paths = append(paths, m)
				}
			}
		}
	}

	return paths, nil
}

// ResolveProductFile resolves a level-2 product directory to its single
// netcdf payload. More than one match is a structural catalog inconsistency.
func (r *Resolver) ResolveProductFile(dir string) (string, error) {
	matches, err := r.lister.List(filepath.Join(dir, "*.nc"))
	if err != nil {
		return "", fmt.Errorf("listing product directory %q: %w", dir, err)
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no level-2 netcdf file in product directory %q", dir)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%w: %d netcdf files in %q", ErrAmbiguousProduct, len(matches), dir)
}

// searchPeriodic handles fixed-cadence gridded archives: each root template is
// stepped through the interval and resolved to its covering files.
func (r *Resolver) searchPeriodic(roots *config.SensorRoots, ref Interval) ([]*Candidate, error) {
	var candidates []*Candidate
	for _, level := range roots.Levels {
		for _, template := range level.Templates {
			paths, err := ResolvePeriodic(ref, template, r.step, r.lister)
			if err != nil {
				return nil, err
			}
			for _, p := range paths {
				candidates = append(candidates, &Candidate{Path: p})
			}
		}
	}
	return candidates, nil
}

// expandEntry substitutes the calendar placeholders of a root template
// against one day of the date scheme.
func expandEntry(template string, e DateEntry) string {
	r := strings.NewReplacer(
		"%Y", e.Year,
		"%m", e.Month,
		"%d", e.Key[6:8],
		"%j", e.DayOfYear,
	)
	return r.Replace(template)
}
