package climate

import (
	"fmt"
	"math"
	"time"

	"github.com/stakelab-org/stakelab/dataset"
)

// ============================================================================
// EXTRACTION — Matching Gridded Climate to Stake Locations
// ============================================================================
// For every stake measurement, the nearest grid cell provides the monthly
// values of each climate variable over the hydrological year ending in the
// measurement year. The geopotential grid provides the altitude of the
// climate cell, and the difference between that altitude and the stake
// elevation is appended as a feature of its own.
// ============================================================================

// AttachOptions configures climate extraction.
type AttachOptions struct {
	Vars         []string // variables to extract, e.g. ["t2m", "tp"]
	ConvertUnits bool     // temperature Kelvin → Celsius
}

// hydroMonth maps a hydrological-month index (0 = Oct of year-1) to the
// calendar year and month for a balance year.
func hydroMonth(year, idx int) (int, time.Month) {
	m := time.October + time.Month(idx)
	if m > time.December {
		return year, m - 12
	}
	return year - 1, m
}

// Attach extracts per-stake monthly climate covariates from grid, plus the
// climate-cell altitude from the geopotential grid geo (pass nil to skip).
// New columns: "<var>_<mon>" for each variable and hydrological month,
// ALTITUDE_CLIMATE, and ELEVATION_DIFFERENCE. Rows without coordinates or a
// year keep NaN covariates.
func Attach(tbl *dataset.Table, grid *Grid, geo *Grid, opts AttachOptions) error {
	for _, name := range opts.Vars {
		if _, ok := grid.Vars[name]; !ok {
			return fmt.Errorf("climate grid is missing variable %q", name)
		}
	}
	if geo != nil {
		if _, ok := geo.Vars["z"]; !ok {
			return fmt.Errorf("geopotential grid is missing variable %q", "z")
		}
	}

	for i := 0; i < tbl.Len(); i++ {
		lat := tbl.Value(i, dataset.ColLat)
		lon := tbl.Value(i, dataset.ColLon)
		year := tbl.Observation(i).Year()
		located := !math.IsNaN(lat) && !math.IsNaN(lon)

		var laIdx, loIdx int
		if located {
			laIdx, loIdx = grid.NearestCell(lat, lon)
		}

		for _, name := range opts.Vars {
			for m, mon := range dataset.HydroMonths {
				val := math.NaN()
				if located && year != 0 {
					cy, cm := hydroMonth(year, m)
					if t := grid.TimeIndex(cy, cm); t >= 0 {
						val = grid.At(name, t, laIdx, loIdx)
					}
				}
				if opts.ConvertUnits && name == "t2m" && !math.IsNaN(val) {
					val -= 273.15
				}
				tbl.SetValue(i, dataset.MonthlyColumn(name, mon), val)
			}
		}

		if geo != nil {
			alt := math.NaN()
			if located {
				gla, glo := geo.NearestCell(lat, lon)
				if z := geo.At("z", 0, gla, glo); !math.IsNaN(z) {
					alt = GeopotentialHeight(z)
				}
			}
			tbl.SetValue(i, dataset.ColClimateAltitude, alt)
			tbl.SetValue(i, dataset.ColElevationDiff, alt-tbl.Value(i, dataset.ColElevation))
		}
	}
	return nil
}
