package translate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rkm/sar-coloc/internal/catalog"
	"github.com/rkm/sar-coloc/internal/stac"
	"github.com/rkm/sar-coloc/pkg/geojson"
)

// CandidateToItem converts a resolved candidate path to a STAC item. The
// interval is optional: swath and reanalysis products resolve their coverage
// from the opened grid, not the filename, and are emitted without temporal
// properties. The collection is the sensor name, lower-cased.
func CandidateToItem(path string, interval *catalog.Interval, sensor string) (*stac.Item, error) {
	if path == "" {
		return nil, fmt.Errorf("candidate path is empty")
	}

	base := filepath.Base(path)
	itemID := strings.TrimSuffix(base, filepath.Ext(base))

	item := stac.NewItem(itemID, strings.ToLower(sensor))
	item.Properties["platform"] = strings.ToLower(sensor)

	// STAC requires either datetime or start_datetime/end_datetime. Coverage
	// is a range, so datetime stays null.
	item.Properties["datetime"] = nil
	if interval != nil {
		item.Properties["start_datetime"] = FormatTime(interval.Start)
		item.Properties["end_datetime"] = FormatTime(interval.Stop)
	}

	item.Assets["data"] = &stac.Asset{
		Href:  path,
		Title: base,
		Type:  assetMediaType(base),
		Roles: []string{"data"},
	}

	return item, nil
}

// WithFootprint attaches a footprint polygon and its bounding box to an item.
func WithFootprint(item *stac.Item, footprint *geojson.Geometry) (*stac.Item, error) {
	if footprint == nil {
		return item, nil
	}

	item.Geometry = footprint

	bbox, err := geojson.ComputeBBox(footprint)
	if err != nil {
		return nil, fmt.Errorf("footprint bbox: %w", err)
	}
	item.Bbox = bbox

	return item, nil
}

// assetMediaType maps a product basename to its asset media type.
func assetMediaType(basename string) string {
	switch strings.ToLower(filepath.Ext(basename)) {
	case ".nc":
		return "application/x-netcdf"
	case ".safe":
		return "application/octet-stream"
	}
	return "application/octet-stream"
}
