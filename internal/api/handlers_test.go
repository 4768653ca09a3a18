package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rkm/sar-coloc/internal/catalog"
	"github.com/rkm/sar-coloc/internal/config"
	"github.com/rkm/sar-coloc/internal/stac"
)

// mapLister resolves glob patterns against a fixed pattern -> paths map.
type mapLister struct {
	matches map[string][]string
}

func (m mapLister) List(pattern string) ([]string, error) {
	return m.matches[pattern], nil
}

func testServer(t *testing.T, matches map[string][]string) http.Handler {
	t.Helper()

	registry := config.NewRootRegistry()
	for _, roots := range []*config.SensorRoots{
		{
			Sensor: config.SensorS1,
			Levels: []config.LevelRoots{
				{Name: "L1", Templates: []string{"/s1/L1/%Y/%j/S1*"}},
			},
		},
		{
			Sensor: config.SensorERA5,
			Levels: []config.LevelRoots{
				{Templates: []string{"/era5/%Y/%m/era_5-copernicus__%Y%m%d.nc"}},
			},
		},
	} {
		if err := registry.Add(roots); err != nil {
			t.Fatalf("failed to register roots: %v", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := catalog.NewResolver(registry, mapLister{matches: matches}, logger)

	cfg := &config.Config{}
	handlers := NewHandlers(cfg, resolver, registry, logger)
	return NewRouter(handlers, logger)
}

func doRequest(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, testServer(t, nil), "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestLanding(t *testing.T) {
	rec := doRequest(t, testServer(t, nil), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		ID      string   `json:"id"`
		Sensors []string `json:"sensors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.ID != "sar-coloc-catalog" {
		t.Errorf("unexpected id %q", body.ID)
	}
	if len(body.Sensors) != 2 {
		t.Errorf("expected 2 sensors, got %v", body.Sensors)
	}
}

func TestSensors(t *testing.T) {
	rec := doRequest(t, testServer(t, nil), "/sensors")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Sensors []struct {
			Sensor string   `json:"sensor"`
			Levels []string `json:"levels"`
		} `json:"sensors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Sensors) != 2 {
		t.Fatalf("expected 2 sensors, got %d", len(body.Sensors))
	}
	if body.Sensors[0].Sensor != "S1" {
		t.Errorf("expected S1 first, got %q", body.Sensors[0].Sensor)
	}
	if len(body.Sensors[0].Levels) != 1 || body.Sensors[0].Levels[0] != "L1" {
		t.Errorf("unexpected S1 levels %v", body.Sensors[0].Levels)
	}
	// ERA5 has no level split.
	if len(body.Sensors[1].Levels) != 0 {
		t.Errorf("expected no ERA5 levels, got %v", body.Sensors[1].Levels)
	}
}

func TestSearch(t *testing.T) {
	matches := map[string][]string{
		"/s1/L1/2021/252/S1*": {
			"/s1/L1/2021/252/S1A_IW_GRDH_1SDV_20210909T130650_20210909T130715_039605_04AE83_C34F.SAFE",
			"/s1/L1/2021/252/S1B_IW_GRDH_1SDV_20210909T235000_20210909T235025_028644_036BDA_1A2B.SAFE",
		},
	}

	rec := doRequest(t, testServer(t, matches),
		"/search?sensor=S1&start=2021-09-09T13:00:00Z&stop=2021-09-09T14:00:00Z")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("expected geo+json content type, got %q", ct)
	}

	var body stac.ItemCollection
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection, got %q", body.Type)
	}
	if body.NumberReturned != 1 {
		t.Fatalf("expected 1 item, got %d", body.NumberReturned)
	}

	item := body.Features[0]
	if item.Id != "S1A_IW_GRDH_1SDV_20210909T130650_20210909T130715_039605_04AE83_C34F" {
		t.Errorf("unexpected item id %q", item.Id)
	}
	if item.Collection != "s1" {
		t.Errorf("expected collection s1, got %q", item.Collection)
	}
	if item.Properties["start_datetime"] != "2021-09-09T13:06:50Z" {
		t.Errorf("unexpected start_datetime %v", item.Properties["start_datetime"])
	}
}

func TestSearchEmptyWindow(t *testing.T) {
	rec := doRequest(t, testServer(t, nil),
		"/search?sensor=S1&start=2021-09-09T13:00:00Z&stop=2021-09-09T14:00:00Z")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body stac.ItemCollection
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.NumberReturned != 0 {
		t.Errorf("expected empty collection, got %d items", body.NumberReturned)
	}
}

func TestSearchParameterErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{
			name: "missing sensor",
			path: "/search?start=2021-09-09T13:00:00Z&stop=2021-09-09T14:00:00Z",
		},
		{
			name: "missing start",
			path: "/search?sensor=S1&stop=2021-09-09T14:00:00Z",
		},
		{
			name: "garbage stop",
			path: "/search?sensor=S1&start=2021-09-09T13:00:00Z&stop=tomorrow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, testServer(t, nil), tt.path)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}

			var body Error
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if body.Code != "InvalidParameterValue" {
				t.Errorf("expected InvalidParameterValue, got %q", body.Code)
			}
		})
	}
}

func TestSearchInvalidRange(t *testing.T) {
	rec := doRequest(t, testServer(t, nil),
		"/search?sensor=S1&start=2021-09-10T00:00:00Z&stop=2021-09-09T00:00:00Z")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for inverted window, got %d", rec.Code)
	}
}

func TestSearchUnknownSensor(t *testing.T) {
	rec := doRequest(t, testServer(t, nil),
		"/search?sensor=MODIS&start=2021-09-09T13:00:00Z&stop=2021-09-09T14:00:00Z")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var body Error
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Code != "NotFound" {
		t.Errorf("expected NotFound, got %q", body.Code)
	}
}

func TestNotFoundRoute(t *testing.T) {
	rec := doRequest(t, testServer(t, nil), "/nonexistent")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := testServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/search", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	rec := doRequest(t, testServer(t, nil), "/health")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}
