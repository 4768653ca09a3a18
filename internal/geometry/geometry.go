// Package geometry normalizes product coordinate arrays around the ±180°
// longitude seam and derives comparable footprint polygons.
package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/rkm/sar-coloc/internal/grid"
	"github.com/rkm/sar-coloc/pkg/geojson"
)

// footprintAttr is the attribute some archives store a well-known-text
// footprint polygon under.
const footprintAttr = "footprint"

// lonNames and latNames are the coordinate names probed when deriving a
// footprint from grid corners.
var (
	lonNames = []string{"lon", "longitude"}
	latNames = []string{"lat", "latitude"}
)

// CrossesAntemeridian reports whether a longitude array straddles the ±180°
// seam. The heuristic is a spread greater than 180°, which assumes no product
// spans more than half the globe in longitude; a product with a true extent
// beyond 180° would be misdetected. Known limitation, inherited from the
// archives this was built against.
func CrossesAntemeridian(lon []float64) bool {
	if len(lon) == 0 {
		return false
	}

	minLon, maxLon := lon[0], lon[0]
	for _, v := range lon[1:] {
		if v < minLon {
			minLon = v
		}
		if v > maxLon {
			maxLon = v
		}
	}

	return maxLon-minLon > 180
}

// NormalizeLongitudes rewraps a seam-crossing longitude array into a
// contiguous [-180, 180) frame: v -> ((v + 180) mod 360) - 180. Arrays with
// no detected crossing are returned as-is (the function is idempotent), so
// values exactly on the 0/360 boundary land at -180. When axis is true the
// array is a 1-D coordinate axis and is re-sorted ascending after remapping;
// 2-D swath grids must keep their sample order.
func NormalizeLongitudes(lon []float64, axis bool) []float64 {
	out := make([]float64, len(lon))
	copy(out, lon)

	if !CrossesAntemeridian(out) {
		return out
	}

	for i, v := range out {
		out[i] = math.Mod(math.Mod(v+180, 360)+360, 360) - 180
	}

	if axis {
		sort.Float64s(out)
	}

	return out
}

// Footprint returns the footprint polygon for an opened grid. A stored
// well-known-text footprint attribute takes precedence; otherwise the polygon
// is synthesized from the four geometric corners of the coordinate axes, in
// the fixed order (first-along, first-across), (first-along, last-across),
// (last-along, last-across), (last-along, first-across).
func Footprint(g grid.Grid) (*geojson.Geometry, error) {
	if wkt, ok := g.Attr(footprintAttr); ok {
		geom, err := geojson.FromWKT(wkt)
		if err != nil {
			return nil, fmt.Errorf("stored footprint attribute: %w", err)
		}
		return geom, nil
	}

	lon, err := coordByNames(g, lonNames)
	if err != nil {
		return nil, err
	}
	lat, err := coordByNames(g, latNames)
	if err != nil {
		return nil, err
	}
	if len(lon) == 0 || len(lat) == 0 {
		return nil, fmt.Errorf("empty coordinate axes")
	}

	lon = NormalizeLongitudes(lon, true)

	first, last := 0, len(lat)-1
	left, right := 0, len(lon)-1
	ring := [][]float64{
		{lon[left], lat[first]},
		{lon[right], lat[first]},
		{lon[right], lat[last]},
		{lon[left], lat[last]},
	}

	return geojson.NewPolygonFromRing(ring)
}

// coordByNames reads the first coordinate array present under any of the
// candidate names.
func coordByNames(g grid.Grid, names []string) ([]float64, error) {
	var lastErr error
	for _, name := range names {
		values, err := g.Coord(name)
		if err == nil {
			return values, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("no coordinate found under %v: %w", names, lastErr)
}
