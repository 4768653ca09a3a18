package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rkm/sar-coloc/internal/catalog"
	"github.com/rkm/sar-coloc/internal/config"
	"github.com/rkm/sar-coloc/internal/stac"
	"github.com/rkm/sar-coloc/internal/translate"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	cfg      *config.Config
	resolver *catalog.Resolver
	roots    *config.RootRegistry
	logger   *slog.Logger
}

// NewHandlers creates the handler set for the catalog service.
func NewHandlers(cfg *config.Config, resolver *catalog.Resolver, roots *config.RootRegistry, logger *slog.Logger) *Handlers {
	return &Handlers{
		cfg:      cfg,
		resolver: resolver,
		roots:    roots,
		logger:   logger,
	}
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Landing handles GET /.
func (h *Handlers) Landing(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"id":          "sar-coloc-catalog",
		"title":       "Collocation catalog",
		"description": "Temporal candidate resolution for earth-observation product collocation",
		"sensors":     h.roots.Sensors(),
	})
}

// sensorInfo describes one registered sensor in the /sensors response.
type sensorInfo struct {
	Sensor string   `json:"sensor"`
	Levels []string `json:"levels,omitempty"`
}

// Sensors handles GET /sensors: the registered archive root sensors and
// their processing levels.
func (h *Handlers) Sensors(w http.ResponseWriter, r *http.Request) {
	infos := make([]sensorInfo, 0, h.roots.Count())
	for _, name := range h.roots.Sensors() {
		roots := h.roots.Get(name)
		info := sensorInfo{Sensor: name}
		for _, level := range roots.Levels {
			if level.Name != "" {
				info.Levels = append(info.Levels, level.Name)
			}
		}
		infos = append(infos, info)
	}
	WriteJSON(w, http.StatusOK, map[string]any{"sensors": infos})
}

// Search handles GET /search?sensor=...&start=...&stop=...: every candidate
// product for the sensor overlapping the requested window, as a STAC
// ItemCollection.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sensor := q.Get("sensor")
	if sensor == "" {
		WriteInvalidParameter(w, "sensor parameter is required")
		return
	}

	start, err := translate.ParseQueryTime(q.Get("start"))
	if err != nil {
		WriteInvalidParameter(w, "invalid start parameter: "+err.Error())
		return
	}

	stop, err := translate.ParseQueryTime(q.Get("stop"))
	if err != nil {
		WriteInvalidParameter(w, "invalid stop parameter: "+err.Error())
		return
	}

	ref := catalog.Interval{Start: start, Stop: stop}
	candidates, err := h.resolver.Search(sensor, ref)
	if err != nil {
		h.writeSearchError(w, sensor, err)
		return
	}

	items := make([]*stac.Item, 0, len(candidates))
	for _, c := range candidates {
		// Swath and reanalysis products carry no filename interval; they are
		// emitted without temporal properties.
		var interval *catalog.Interval
		if iv, err := c.Interval(); err == nil {
			interval = &iv
		}

		item, err := translate.CandidateToItem(c.Path, interval, sensor)
		if err != nil {
			h.logger.Error("failed to translate candidate",
				"path", c.Path,
				"error", err,
			)
			WriteInternalError(w, "failed to translate candidate")
			return
		}
		items = append(items, item)
	}

	WriteGeoJSON(w, http.StatusOK, stac.NewItemCollection(items))
}

// writeSearchError maps catalog errors to HTTP statuses.
func (h *Handlers) writeSearchError(w http.ResponseWriter, sensor string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidRange),
		errors.Is(err, catalog.ErrMalformedTimestamp):
		WriteBadRequest(w, err.Error())
	case errors.Is(err, catalog.ErrUnrecognizedConvention):
		WriteNotFound(w, "unknown sensor "+sensor)
	default:
		h.logger.Error("search failed",
			"sensor", sensor,
			"error", err,
		)
		WriteInternalError(w, "search failed")
	}
}
