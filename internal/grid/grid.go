// Package grid provides the grid-opening collaborator: named coordinate
// arrays and attribute metadata read from product files, behind a capability
// interface selected per sensor family.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedResolution is returned when a requested coordinate-dimension
// name does not exist in a reanalysis grid at the given resolution.
var ErrUnsupportedResolution = errors.New("unsupported grid resolution")

// Grid exposes the parts of an opened product the catalog core reads: named
// dimensions, 1-D coordinate arrays, and string attributes. The measurement
// content itself is never touched here.
type Grid interface {
	// Dimensions returns the named dimensions of the grid.
	Dimensions() []string

	// Coord reads a named coordinate array as float64 values.
	Coord(name string) ([]float64, error)

	// Attr reads a global string attribute. The second return is false when
	// the attribute is absent.
	Attr(name string) (string, bool)

	// VarAttr reads a string attribute of a named variable.
	VarAttr(variable, name string) (string, bool)

	// Close releases the underlying file.
	Close() error
}

// Opener opens a product path as a Grid.
type Opener interface {
	Open(path string) (Grid, error)
}

// Registry maps sensor families to their grid openers. Selection happens once
// here, at the boundary; nothing downstream re-sniffs paths to pick a reader.
type Registry struct {
	openers map[string]Opener
}

// NewRegistry creates an empty opener registry.
func NewRegistry() *Registry {
	return &Registry{
		openers: make(map[string]Opener),
	}
}

// Register associates a sensor family with an opener, replacing any previous
// registration.
func (r *Registry) Register(sensor string, opener Opener) {
	r.openers[strings.ToUpper(sensor)] = opener
}

// Open opens a product path with the opener registered for the sensor.
func (r *Registry) Open(sensor, path string) (Grid, error) {
	opener, ok := r.openers[strings.ToUpper(sensor)]
	if !ok {
		return nil, fmt.Errorf("no grid opener registered for sensor %q", sensor)
	}
	return opener.Open(path)
}

// DefaultRegistry returns a registry with the netcdf opener bound to every
// sensor family whose products are netcdf grids.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	opener := NetCDFOpener{}
	for _, sensor := range []string{"SMOS", "HY2", "ERA5", "S1", "RS2", "RCM"} {
		registry.Register(sensor, opener)
	}
	return registry
}

// ResolutionAxis returns the coordinate name for an axis at a given
// resolution in a dual-resolution reanalysis grid. ERA5 publishes two axis
// sets, e.g. "longitude025" (0.25 degrees) and "longitude050" (0.5 degrees).
func ResolutionAxis(g Grid, axis string, resolution float64) (string, error) {
	name := axis + resolutionSuffix(resolution)
	for _, dim := range g.Dimensions() {
		if dim == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: no dimension %q for resolution %g", ErrUnsupportedResolution, name, resolution)
}

// resolutionSuffix renders a resolution as its 3-character dimension suffix:
// 0.25 -> "025", 0.5 -> "050".
func resolutionSuffix(resolution float64) string {
	s := strings.ReplaceAll(fmt.Sprintf("%g", resolution), ".", "")
	for len(s) < 3 {
		s += "0"
	}
	return s
}
