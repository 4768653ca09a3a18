package geometry

import (
	"fmt"
	"reflect"
	"testing"
)

// stubGrid satisfies grid.Grid with fixed coordinates and attributes.
type stubGrid struct {
	coords map[string][]float64
	attrs  map[string]string
}

func (g *stubGrid) Dimensions() []string { return nil }

func (g *stubGrid) Coord(name string) ([]float64, error) {
	values, ok := g.coords[name]
	if !ok {
		return nil, fmt.Errorf("coordinate %q: not found", name)
	}
	return values, nil
}

func (g *stubGrid) Attr(name string) (string, bool) {
	v, ok := g.attrs[name]
	return v, ok
}

func (g *stubGrid) VarAttr(variable, name string) (string, bool) { return "", false }

func (g *stubGrid) Close() error { return nil }

func TestCrossesAntemeridian(t *testing.T) {
	tests := []struct {
		name   string
		lon    []float64
		expect bool
	}{
		{
			name:   "empty array",
			lon:    nil,
			expect: false,
		},
		{
			name:   "contiguous pacific swath",
			lon:    []float64{150, 155, 160, 165},
			expect: false,
		},
		{
			name:   "seam crossing in signed frame",
			lon:    []float64{170, 175, -170, -175},
			expect: true,
		},
		{
			name:   "spread of exactly 180 does not count",
			lon:    []float64{-90, 0, 90},
			expect: false,
		},
		{
			name:   "seam crossing in 0-360 frame",
			lon:    []float64{0.25, 0.5, 359.5, 359.75},
			expect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CrossesAntemeridian(tt.lon); got != tt.expect {
				t.Errorf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestNormalizeLongitudes(t *testing.T) {
	tests := []struct {
		name   string
		lon    []float64
		axis   bool
		expect []float64
	}{
		{
			name:   "no crossing returned unchanged",
			lon:    []float64{150, 155, 160},
			axis:   true,
			expect: []float64{150, 155, 160},
		},
		{
			name:   "swath order preserved",
			lon:    []float64{170, 175, -170, -175},
			axis:   false,
			expect: []float64{170, 175, -170, -175},
		},
		{
			name:   "axis re-sorted after remap",
			lon:    []float64{0, 90, 180, 270},
			axis:   true,
			expect: []float64{-180, -90, 0, 90},
		},
		{
			name: "0-360 frame crossing remapped",
			lon:  []float64{350, 355, 0.5, 5},
			axis: false,
			// 350 and 355 wrap to the negative side of the seam.
			expect: []float64{-10, -5, 0.5, 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLongitudes(tt.lon, tt.axis)
			if !reflect.DeepEqual(got, tt.expect) {
				t.Errorf("expected %v, got %v", tt.expect, got)
			}
		})
	}
}

func TestNormalizeLongitudesIsIdempotent(t *testing.T) {
	inputs := [][]float64{
		{150, 155, 160},
		{170, 175, -170, -175},
		{350, 355, 0.5, 5},
	}

	for _, lon := range inputs {
		once := NormalizeLongitudes(lon, false)
		twice := NormalizeLongitudes(once, false)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("normalize(%v) is not idempotent: %v then %v", lon, once, twice)
		}
	}
}

func TestNormalizeLongitudesDoesNotMutateInput(t *testing.T) {
	lon := []float64{170, 175, -170, -175}
	original := make([]float64, len(lon))
	copy(original, lon)

	NormalizeLongitudes(lon, false)
	if !reflect.DeepEqual(lon, original) {
		t.Errorf("input was mutated: %v", lon)
	}
}

func TestFootprintFromStoredAttribute(t *testing.T) {
	g := &stubGrid{
		attrs: map[string]string{
			"footprint": "POLYGON((-150 60,-145 60,-145 65,-150 65,-150 60))",
		},
	}

	geom, err := Footprint(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.Type != "Polygon" {
		t.Errorf("expected Polygon, got %s", geom.Type)
	}

	rings, err := geom.Polygon()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rings[0]) != 5 {
		t.Errorf("expected 5 ring points, got %d", len(rings[0]))
	}
}

func TestFootprintFromCorners(t *testing.T) {
	g := &stubGrid{
		coords: map[string][]float64{
			"lon": {-150, -149, -148, -145},
			"lat": {60, 61, 62, 65},
		},
	}

	geom, err := Footprint(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rings, err := geom.Polygon()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := [][]float64{
		{-150, 60},
		{-145, 60},
		{-145, 65},
		{-150, 65},
		{-150, 60},
	}
	if !reflect.DeepEqual(rings[0], expect) {
		t.Errorf("expected ring %v, got %v", expect, rings[0])
	}
}

func TestFootprintProbesCoordinateNames(t *testing.T) {
	g := &stubGrid{
		coords: map[string][]float64{
			"longitude": {10, 11, 12},
			"latitude":  {50, 51, 52},
		},
	}

	geom, err := Footprint(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.Type != "Polygon" {
		t.Errorf("expected Polygon, got %s", geom.Type)
	}
}

func TestFootprintNormalizesSeamCrossingAxis(t *testing.T) {
	g := &stubGrid{
		coords: map[string][]float64{
			"lon": {0, 90, 180, 270, 359},
			"lat": {10, 11, 12},
		},
	}

	geom, err := Footprint(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rings, err := geom.Polygon()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, point := range rings[0] {
		if point[0] < -180 || point[0] >= 180 {
			t.Errorf("ring longitude %g outside [-180, 180)", point[0])
		}
	}
}

func TestFootprintErrors(t *testing.T) {
	tests := []struct {
		name string
		grid *stubGrid
	}{
		{
			name: "malformed stored footprint",
			grid: &stubGrid{attrs: map[string]string{"footprint": "POLYGON((broken"}},
		},
		{
			name: "missing longitude coordinate",
			grid: &stubGrid{coords: map[string][]float64{"lat": {60, 65}}},
		},
		{
			name: "missing latitude coordinate",
			grid: &stubGrid{coords: map[string][]float64{"lon": {-150, -145}}},
		},
		{
			name: "empty coordinate axes",
			grid: &stubGrid{coords: map[string][]float64{"lon": {}, "lat": {}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Footprint(tt.grid); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
