package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Supported sensor names.
const (
	SensorS1   = "S1"
	SensorRS2  = "RS2"
	SensorRCM  = "RCM"
	SensorSMOS = "SMOS"
	SensorHY2  = "HY2"
	SensorERA5 = "ERA5"
)

// SensorRoots describes the archive root templates for one sensor, optionally
// split by processing level. Templates carry strftime-style calendar
// placeholders (%Y, %m, %d, %j) substituted per lookup day. This is external
// configuration, typically loaded from JSON files; the catalog engine never
// derives paths itself.
type SensorRoots struct {
	Sensor string       `json:"sensor"`
	Levels []LevelRoots `json:"levels"`
}

// LevelRoots holds the glob templates for one processing level. Name is empty
// for sensors without a level split.
type LevelRoots struct {
	Name      string   `json:"name,omitempty"`
	Templates []string `json:"templates"`
}

// RootRegistry holds the sensor root definitions indexed by sensor name,
// preserving registration order for deterministic pattern expansion.
type RootRegistry struct {
	sensors map[string]*SensorRoots
	order   []string
}

// NewRootRegistry creates a new empty root registry.
func NewRootRegistry() *RootRegistry {
	return &RootRegistry{
		sensors: make(map[string]*SensorRoots),
	}
}

// Add registers a sensor's roots. Returns an error if the sensor is already
// registered.
func (r *RootRegistry) Add(roots *SensorRoots) error {
	if roots == nil {
		return fmt.Errorf("cannot add nil sensor roots")
	}

	sensor := strings.ToUpper(roots.Sensor)
	if _, exists := r.sensors[sensor]; exists {
		return fmt.Errorf("sensor %q already registered", sensor)
	}

	r.sensors[sensor] = roots
	r.order = append(r.order, sensor)
	return nil
}

// Get retrieves a sensor's roots by name. Returns nil if not registered.
func (r *RootRegistry) Get(sensor string) *SensorRoots {
	return r.sensors[strings.ToUpper(sensor)]
}

// Has checks if a sensor is registered.
func (r *RootRegistry) Has(sensor string) bool {
	_, exists := r.sensors[strings.ToUpper(sensor)]
	return exists
}

// Sensors returns all registered sensor names in registration order.
func (r *RootRegistry) Sensors() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of registered sensors.
func (r *RootRegistry) Count() int {
	return len(r.sensors)
}

// DefaultRoots returns the built-in archive registry for the CERSAT datawork
// mounts. Deployments with different mounts override these via LoadRoots.
func DefaultRoots() *RootRegistry {
	registry := NewRootRegistry()

	defaults := []*SensorRoots{
		{
			Sensor: SensorS1,
			Levels: []LevelRoots{
				{Name: "L1", Templates: []string{
					"/home/datawork-cersat-public/cache/project/mpc-sentinel1/data/esa/sentinel-1*/L1/*/S1*/%Y/%j/S1*",
				}},
				{Name: "L2", Templates: []string{
					"/home/datawork-cersat-public/cache/project/mpc-sentinel1/data/esa/sentinel-1*/L2/*/S1*/%Y/%j/S1*",
				}},
			},
		},
		{
			Sensor: SensorRS2,
			Levels: []LevelRoots{
				{Name: "L1", Templates: []string{
					"/home/datawork-cersat-public/cache/project/sarwing/data/RS2/L1/VV_VH/%Y/%j/RS2*",
				}},
				{Name: "L2", Templates: []string{
					"/home/datawork-cersat-public/cache/public/ftp/project/sarwing/processings/c39e79a/default/RS2/%Y/%j/*/RS2*",
				}},
			},
		},
		{
			Sensor: SensorRCM,
			Levels: []LevelRoots{
				{Name: "L1", Templates: []string{
					"/home/datawork-cersat-public/cache/project/sarwing/data/RCM/L1/VV_VH/%Y/%j/RCM*",
				}},
			},
		},
		{
			Sensor: SensorSMOS,
			Levels: []LevelRoots{
				{Templates: []string{
					"/home/ref-smoswind-public/data/v3.0/l3/data/reprocessing/%Y/%j/*.nc",
					"/home/ref-smoswind-public/data/v3.0/l3/data/nrt/%Y/%j/*.nc",
				}},
			},
		},
		{
			Sensor: SensorHY2,
			Levels: []LevelRoots{
				{Templates: []string{
					"/home/datawork-cersat-public/provider/knmi/satellite/l2b/hy-2*/hscat/25km/data/%Y/%j/*.nc",
				}},
			},
		},
		{
			Sensor: SensorERA5,
			Levels: []LevelRoots{
				{Templates: []string{
					"/home/ref-ecmwf/ERA5/%Y/%m/era_5-copernicus__%Y%m%d.nc",
				}},
			},
		},
	}

	for _, roots := range defaults {
		// Registration cannot collide within the built-in set.
		_ = registry.Add(roots)
	}

	return registry
}

// LoadRoots loads sensor root definitions from JSON files in the specified
// directory. Only files with a .json extension are processed.
func LoadRoots(rootsDir string) (*RootRegistry, error) {
	registry := NewRootRegistry()

	info, err := os.Stat(rootsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to access roots directory %q: %w", rootsDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("roots path %q is not a directory", rootsDir)
	}

	entries, err := os.ReadDir(rootsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read roots directory %q: %w", rootsDir, err)
	}

	loadedCount := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		filename := entry.Name()
		if !strings.HasSuffix(strings.ToLower(filename), ".json") {
			continue
		}

		filePath := filepath.Join(rootsDir, filename)
		roots, err := loadRootsFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load sensor roots from %q: %w", filePath, err)
		}

		if err := registry.Add(roots); err != nil {
			return nil, fmt.Errorf("failed to register sensor roots from %q: %w", filePath, err)
		}

		loadedCount++
	}

	if loadedCount == 0 {
		return nil, fmt.Errorf("no sensor root files found in %q", rootsDir)
	}

	return registry, nil
}

// loadRootsFile loads a single sensor root definition from a JSON file.
func loadRootsFile(filePath string) (*SensorRoots, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var roots SensorRoots
	if err := json.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := validateRoots(&roots); err != nil {
		return nil, fmt.Errorf("invalid sensor root definition: %w", err)
	}

	return &roots, nil
}

// validateRoots checks that a sensor root definition is usable.
func validateRoots(r *SensorRoots) error {
	if r.Sensor == "" {
		return fmt.Errorf("sensor name is required")
	}

	if len(r.Levels) == 0 {
		return fmt.Errorf("sensor %q must define at least one level", r.Sensor)
	}

	for i, level := range r.Levels {
		if len(level.Templates) == 0 {
			return fmt.Errorf("sensor %q level[%d] must define at least one template", r.Sensor, i)
		}
		for j, template := range level.Templates {
			if template == "" {
				return fmt.Errorf("sensor %q level[%d] template[%d] is empty", r.Sensor, i, j)
			}
		}
	}

	return nil
}
