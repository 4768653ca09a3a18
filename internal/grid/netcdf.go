package grid

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// NetCDFOpener opens netcdf products (CDF or HDF5 layout) with the pure-Go
// reader.
type NetCDFOpener struct{}

// Open opens the file at path as a Grid.
func (NetCDFOpener) Open(path string) (Grid, error) {
	group, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open netcdf file %q: %w", path, err)
	}
	return &ncGrid{group: group}, nil
}

// ncGrid adapts a netcdf group to the Grid interface.
type ncGrid struct {
	group api.Group
}

func (g *ncGrid) Dimensions() []string {
	return g.group.ListDimensions()
}

func (g *ncGrid) Coord(name string) ([]float64, error) {
	vg, err := g.group.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("coordinate %q: %w", name, err)
	}

	values, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("reading coordinate %q: %w", name, err)
	}

	return toFloat64s(name, values)
}

func (g *ncGrid) Attr(name string) (string, bool) {
	return attrString(g.group.Attributes(), name)
}

func (g *ncGrid) VarAttr(variable, name string) (string, bool) {
	vg, err := g.group.GetVarGetter(variable)
	if err != nil {
		return "", false
	}
	return attrString(vg.Attributes(), name)
}

func (g *ncGrid) Close() error {
	g.group.Close()
	return nil
}

// attrString reads an attribute as a string, tolerating the scalar-vs-slice
// representations the netcdf reader produces.
func attrString(attrs api.AttributeMap, name string) (string, bool) {
	if attrs == nil {
		return "", false
	}
	value, ok := attrs.Get(name)
	if !ok {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case []string:
		if len(v) == 1 {
			return v[0], true
		}
	}
	return "", false
}

// toFloat64s widens the numeric slice types the netcdf reader returns for
// coordinate variables.
func toFloat64s(name string, values any) ([]float64, error) {
	switch v := values.(type) {
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int16:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case float64:
		return []float64{v}, nil
	case float32:
		return []float64{float64(v)}, nil
	}
	return nil, fmt.Errorf("coordinate %q has unsupported type %T", name, values)
}
