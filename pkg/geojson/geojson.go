// Package geojson provides the GeoJSON geometry types and WKT codec used for
// product footprints.
package geojson

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Geometry represents a GeoJSON geometry object.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Point returns the coordinates as a Point [lon, lat].
// Returns error if geometry is not a Point.
func (g *Geometry) Point() ([]float64, error) {
	if g.Type != "Point" {
		return nil, fmt.Errorf("geometry is not a Point, got %s", g.Type)
	}
	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Point coordinates: %w", err)
	}
	if len(coords) < 2 {
		return nil, fmt.Errorf("invalid Point coordinates: expected at least 2 values, got %d", len(coords))
	}
	return coords, nil
}

// Polygon returns the coordinates as a Polygon [][][lon, lat].
// Returns error if geometry is not a Polygon.
func (g *Geometry) Polygon() ([][][]float64, error) {
	if g.Type != "Polygon" {
		return nil, fmt.Errorf("geometry is not a Polygon, got %s", g.Type)
	}
	var coords [][][]float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Polygon coordinates: %w", err)
	}
	return coords, nil
}

// NewPolygonFromRing creates a single-ring polygon geometry from an ordered
// list of [lon, lat] corners. The ring is closed by repeating the first
// corner if the input does not already close itself.
func NewPolygonFromRing(ring [][]float64) (*Geometry, error) {
	if len(ring) < 3 {
		return nil, fmt.Errorf("polygon ring needs at least 3 corners, got %d", len(ring))
	}
	for i, point := range ring {
		if len(point) < 2 {
			return nil, fmt.Errorf("invalid corner %d: expected [lon, lat]", i)
		}
	}

	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		closed := make([][]float64, len(ring), len(ring)+1)
		copy(closed, ring)
		ring = append(closed, []float64{first[0], first[1]})
	}

	coordsJSON, err := json.Marshal([][][]float64{ring})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal polygon coordinates: %w", err)
	}

	return &Geometry{
		Type:        "Polygon",
		Coordinates: coordsJSON,
	}, nil
}

// ComputeBBox computes the bounding box of a geometry.
// Returns [west, south, east, north].
func ComputeBBox(g *Geometry) ([]float64, error) {
	if g == nil {
		return nil, fmt.Errorf("geometry is nil")
	}

	minLon, minLat := math.Inf(1), math.Inf(1)
	maxLon, maxLat := math.Inf(-1), math.Inf(-1)

	switch g.Type {
	case "Point":
		coords, err := g.Point()
		if err != nil {
			return nil, err
		}
		return []float64{coords[0], coords[1], coords[0], coords[1]}, nil

	case "Polygon":
		coords, err := g.Polygon()
		if err != nil {
			return nil, err
		}
		for _, ring := range coords {
			for _, point := range ring {
				if len(point) < 2 {
					continue
				}
				minLon = math.Min(minLon, point[0])
				maxLon = math.Max(maxLon, point[0])
				minLat = math.Min(minLat, point[1])
				maxLat = math.Max(maxLat, point[1])
			}
		}

	default:
		return nil, fmt.Errorf("unsupported geometry type: %s", g.Type)
	}

	if math.IsInf(minLon, 0) || math.IsInf(minLat, 0) {
		return nil, fmt.Errorf("failed to compute bounding box: no valid coordinates found")
	}

	return []float64{minLon, minLat, maxLon, maxLat}, nil
}

// ToWKT converts a GeoJSON geometry to WKT format.
// Supports Point and Polygon.
func ToWKT(g *Geometry) (string, error) {
	if g == nil {
		return "", fmt.Errorf("geometry is nil")
	}

	switch g.Type {
	case "Point":
		coords, err := g.Point()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("POINT(%s %s)", formatFloat(coords[0]), formatFloat(coords[1])), nil

	case "Polygon":
		coords, err := g.Polygon()
		if err != nil {
			return "", err
		}
		var rings []string
		for _, ring := range coords {
			points := make([]string, len(ring))
			for i, point := range ring {
				if len(point) < 2 {
					return "", fmt.Errorf("invalid point in polygon ring: expected at least 2 coordinates")
				}
				points[i] = fmt.Sprintf("%s %s", formatFloat(point[0]), formatFloat(point[1]))
			}
			rings = append(rings, "("+strings.Join(points, ",")+")")
		}
		return "POLYGON(" + strings.Join(rings, ",") + ")", nil
	}

	return "", fmt.Errorf("unsupported geometry type for WKT conversion: %s", g.Type)
}

// FromWKT parses a WKT string into a GeoJSON geometry.
// Supports Point and Polygon (the forms stored in footprint attributes).
func FromWKT(wkt string) (*Geometry, error) {
	wkt = strings.TrimSpace(wkt)
	if wkt == "" {
		return nil, fmt.Errorf("empty WKT string")
	}

	upperWKT := strings.ToUpper(wkt)
	switch {
	case strings.HasPrefix(upperWKT, "POINT"):
		return parsePointWKT(wkt)
	case strings.HasPrefix(upperWKT, "POLYGON"):
		return parsePolygonWKT(wkt)
	}

	return nil, fmt.Errorf("unsupported WKT geometry type")
}

func parsePointWKT(wkt string) (*Geometry, error) {
	start := strings.Index(wkt, "(")
	end := strings.LastIndex(wkt, ")")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("invalid POINT WKT format")
	}

	coords, err := parseCoordPair(strings.TrimSpace(wkt[start+1 : end]))
	if err != nil {
		return nil, fmt.Errorf("failed to parse POINT coordinates: %w", err)
	}

	coordsJSON, err := json.Marshal(coords)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal point coordinates: %w", err)
	}

	return &Geometry{
		Type:        "Point",
		Coordinates: coordsJSON,
	}, nil
}

func parsePolygonWKT(wkt string) (*Geometry, error) {
	start := strings.Index(wkt, "(")
	end := strings.LastIndex(wkt, ")")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("invalid POLYGON WKT format")
	}

	rings, err := parseRings(wkt[start+1 : end])
	if err != nil {
		return nil, fmt.Errorf("failed to parse POLYGON rings: %w", err)
	}

	coordsJSON, err := json.Marshal(rings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal polygon coordinates: %w", err)
	}

	return &Geometry{
		Type:        "Polygon",
		Coordinates: coordsJSON,
	}, nil
}

// parseCoordPair parses a coordinate pair "lon lat" into [lon, lat].
func parseCoordPair(s string) ([]float64, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid coordinate pair: %s", s)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %s", parts[0])
	}

	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %s", parts[1])
	}

	return []float64{lon, lat}, nil
}

// parseRings parses the ring list of a polygon body like
// "(lon lat,lon lat,...),(...)".
func parseRings(s string) ([][][]float64, error) {
	ringStrings, err := splitByParentheses(strings.TrimSpace(s))
	if err != nil {
		return nil, err
	}
	if len(ringStrings) == 0 {
		return nil, fmt.Errorf("polygon has no rings")
	}

	rings := make([][][]float64, 0, len(ringStrings))
	for _, ringStr := range ringStrings {
		ring, err := parseRing(ringStr)
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
	}

	return rings, nil
}

// parseRing parses a ring string like "(lon lat,lon lat,...)".
func parseRing(s string) ([][]float64, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("ring must be enclosed in parentheses")
	}

	coordPairs := strings.Split(s[1:len(s)-1], ",")
	ring := make([][]float64, 0, len(coordPairs))
	for _, pair := range coordPairs {
		coords, err := parseCoordPair(pair)
		if err != nil {
			return nil, err
		}
		ring = append(ring, coords)
	}

	return ring, nil
}

// splitByParentheses splits a string into substrings enclosed by parentheses.
func splitByParentheses(s string) ([]string, error) {
	var result []string
	var current strings.Builder
	depth := 0

	for i, ch := range s {
		switch ch {
		case '(':
			current.WriteRune(ch)
			depth++
		case ')':
			current.WriteRune(ch)
			depth--
			if depth == 0 {
				result = append(result, current.String())
				current.Reset()
			} else if depth < 0 {
				return nil, fmt.Errorf("unmatched closing parenthesis at position %d", i)
			}
		default:
			if depth > 0 {
				current.WriteRune(ch)
			}
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("unmatched parentheses")
	}

	return result, nil
}

// formatFloat formats a float64 for WKT output.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
