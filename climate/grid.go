package climate

import (
	"math"
	"time"
)

// Grid holds monthly gridded values per variable: time × lat × lon.
type Grid struct {
	Lats  []float64
	Lons  []float64
	Times []time.Time
	Vars  map[string][][][]float64
}

// At returns one cell value, NaN when the variable is absent.
func (g *Grid) At(name string, t, la, lo int) float64 {
	cube, ok := g.Vars[name]
	if !ok || t < 0 || t >= len(cube) {
		return math.NaN()
	}
	return cube[t][la][lo]
}

// NearestCell finds the grid indices of the cell nearest to a stake
// location. Grid longitudes in the 0–360 convention are normalized to
// −180–180 before comparison. A stake outside the grid snaps to the nearest
// edge cell.
func (g *Grid) NearestCell(lat, lon float64) (laIdx, loIdx int) {
	return nearestIndex(g.Lats, lat, false), nearestIndex(g.Lons, lon, true)
}

func nearestIndex(axis []float64, target float64, isLon bool) int {
	best, bestDist := 0, math.Inf(1)
	for i, v := range axis {
		if isLon {
			v = normalizeLon(v)
		}
		if d := math.Abs(v - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// normalizeLon maps a longitude into [-180, 180).
func normalizeLon(lon float64) float64 {
	return math.Mod(lon+180, 360) - 180
}

// TimeIndex finds the time step of a given year and month, or -1 when the
// grid does not cover it. Monthly reanalysis timestamps land on the first of
// the month, but any day within the month matches.
func (g *Grid) TimeIndex(year int, month time.Month) int {
	for i, t := range g.Times {
		if t.Year() == year && t.Month() == month {
			return i
		}
	}
	return -1
}
