package climate

import (
	"fmt"
	"math"
	"time"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// ERA5 time axis: hours since 1900-01-01 00:00:00 UTC.
// TZ=UTC date --date="1900-01-01 00:00:00" +%s
const unixSecs1900 = -2208988800

// Scanner reads a monthly reanalysis file: latitude, longitude, and time
// axes plus a set of named gridded variables.
type Scanner struct {
	nc   api.Group
	lats []float64
	lons []float64
	ts   []time.Time
	vars []string
}

// Open opens a NetCDF reanalysis file and resolves its axes. vars names the
// gridded variables to read later (e.g. "t2m", "tp").
func Open(filePath string, vars []string) (*Scanner, error) {
	nc, err := netcdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	s := &Scanner{nc: nc, vars: vars}

	if s.lats, err = axisValues(nc, "latitude"); err != nil {
		nc.Close()
		return nil, err
	}
	if s.lons, err = axisValues(nc, "longitude"); err != nil {
		nc.Close()
		return nil, err
	}

	// Time-invariant files (geopotential) have no time axis.
	if hours, err := axisValues(nc, "time"); err == nil {
		s.ts = make([]time.Time, len(hours))
		for i, h := range hours {
			s.ts[i] = time.Unix(int64(h)*3600+unixSecs1900, 0).UTC()
		}
	}

	return s, nil
}

// axisValues reads a 1-D coordinate variable as float64, whatever its
// on-disk type.
func axisValues(nc api.Group, name string) ([]float64, error) {
	vg, err := nc.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("axis %s: %w", name, err)
	}
	v, err := vg.Values()
	if err != nil {
		return nil, fmt.Errorf("axis %s values: %w", name, err)
	}

	switch vals := v.(type) {
	case []float64:
		return vals, nil
	case []float32:
		out := make([]float64, len(vals))
		for i, x := range vals {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(vals))
		for i, x := range vals {
			out[i] = float64(x)
		}
		return out, nil
	case []int64:
		out := make([]float64, len(vals))
		for i, x := range vals {
			out[i] = float64(x)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("axis %s: unsupported type %T", name, v)
	}
}

// Close closes the underlying file.
func (s *Scanner) Close() {
	s.nc.Close()
}

// Summary returns dataset shape information suitable for structured logging.
func (s *Scanner) Summary() []any {
	return []any{
		"vars", s.vars,
		"tsCnt", len(s.ts),
		"latCnt", len(s.lats),
		"lonCnt", len(s.lons),
	}
}

// ReadAll loads every requested variable into memory. Monthly reanalysis
// extracts over two countries are small; streaming is not worth it here.
func (s *Scanner) ReadAll() (*Grid, error) {
	g := &Grid{
		Lats:  s.lats,
		Lons:  s.lons,
		Times: s.ts,
		Vars:  make(map[string][][][]float64, len(s.vars)),
	}
	for _, name := range s.vars {
		cube, err := s.readVar(name)
		if err != nil {
			return nil, err
		}
		g.Vars[name] = cube
	}
	return g, nil
}

// readVar reads one time × lat × lon variable, unpacking int16 payloads via
// their scale_factor/add_offset attributes.
func (s *Scanner) readVar(name string) ([][][]float64, error) {
	v, err := s.nc.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("variable %s: %w", name, err)
	}

	switch vals := v.Values.(type) {
	case [][][]float64:
		return vals, nil
	case [][][]float32:
		return cube32to64(vals), nil
	case [][][]int16:
		scale, offset, fill := packing(v.Attributes)
		return unpackCube(vals, scale, offset, fill), nil
	case [][]float64:
		// Time-invariant field (geopotential without a time axis).
		return [][][]float64{vals}, nil
	case [][]float32:
		return cube32to64([][][]float32{vals}), nil
	case [][]int16:
		scale, offset, fill := packing(v.Attributes)
		return unpackCube([][][]int16{vals}, scale, offset, fill), nil
	default:
		return nil, fmt.Errorf("variable %s: unsupported type %T", name, v.Values)
	}
}

// packing reads the CF packing attributes, defaulting to identity.
func packing(attrs api.AttributeMap) (scale, offset float64, fill int16) {
	scale, offset, fill = 1, 0, math.MinInt16
	if attrs == nil {
		return scale, offset, fill
	}
	if v, ok := attrs.Get("scale_factor"); ok {
		scale = attrFloat(v, scale)
	}
	if v, ok := attrs.Get("add_offset"); ok {
		offset = attrFloat(v, offset)
	}
	if v, ok := attrs.Get("_FillValue"); ok {
		if f, isInt := v.(int16); isInt {
			fill = f
		}
	}
	return scale, offset, fill
}

func attrFloat(v any, fallback float64) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case []float64:
		if len(x) > 0 {
			return x[0]
		}
	case []float32:
		if len(x) > 0 {
			return float64(x[0])
		}
	}
	return fallback
}

func cube32to64(in [][][]float32) [][][]float64 {
	out := make([][][]float64, len(in))
	for t := range in {
		out[t] = make([][]float64, len(in[t]))
		for la := range in[t] {
			row := make([]float64, len(in[t][la]))
			for lo, x := range in[t][la] {
				row[lo] = float64(x)
			}
			out[t][la] = row
		}
	}
	return out
}

func unpackCube(in [][][]int16, scale, offset float64, fill int16) [][][]float64 {
	out := make([][][]float64, len(in))
	for t := range in {
		out[t] = make([][]float64, len(in[t]))
		for la := range in[t] {
			row := make([]float64, len(in[t][la]))
			for lo, x := range in[t][la] {
				if x == fill {
					row[lo] = math.NaN()
					continue
				}
				row[lo] = float64(x)*scale + offset
			}
			out[t][la] = row
		}
	}
	return out
}
