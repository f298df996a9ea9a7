package dataset

// ============================================================================
// DATASET TYPES — Stake-Measurement Tables
// ============================================================================
// One Observation per stake, per glacier, per hydrological year. String
// columns (stake ID, glacier, RGI ID, country) live in Labels; numeric
// columns (year, coordinates, balances, topography, monthly climate
// covariates) live in Values. Missing numeric cells are NaN, never zero.
// ============================================================================

import (
	"fmt"
	"math"
	"strconv"
)

// Canonical column names. Norway's headers are renamed to these on load so
// joint analysis never needs to know which country a row came from.
const (
	ColStake     = "STAKE"
	ColGlacier   = "GLACIER"
	ColRGIID     = "RGIId"
	ColCountry   = "COUNTRY"
	ColYear      = "YEAR"
	ColLat       = "POINT_LAT"
	ColLon       = "POINT_LON"
	ColElevation = "POINT_ELEVATION"

	ColWinterBalance = "BALANCE_WINTER"
	ColSummerBalance = "BALANCE_SUMMER"
	ColAnnualBalance = "BALANCE_ANNUAL"

	ColSlope      = "SLOPE"
	ColAspect     = "ASPECT"
	ColBorderDist = "DIST_FROM_BORDER"

	// Filled in by climate.Attach.
	ColClimateAltitude = "ALTITUDE_CLIMATE"
	ColElevationDiff   = "ELEVATION_DIFFERENCE"
)

// Observation is a single stake measurement row.
type Observation struct {
	Labels map[string]string
	Values map[string]float64
}

// Year returns the observation year, or 0 if unset.
func (o Observation) Year() int {
	y := o.Values[ColYear]
	if math.IsNaN(y) {
		return 0
	}
	return int(y)
}

// Table is an ordered collection of observations with cached column keys.
// It satisfies the analysis view interface.
type Table struct {
	obs       []Observation
	labelKeys []string
	valueKeys []string

	// Columns excluded during load, with reasons. Kept for diagnostics.
	Skipped []SkippedColumn
}

// SkippedColumn records why a CSV column was excluded during load.
type SkippedColumn struct {
	Column string
	Reason string
}

// NewTable builds a Table from observations, caching column key order.
func NewTable(obs []Observation) *Table {
	t := &Table{obs: obs}
	t.cacheKeys()
	return t
}

func (t *Table) cacheKeys() {
	t.labelKeys = t.labelKeys[:0]
	t.valueKeys = t.valueKeys[:0]
	labelSeen := make(map[string]bool)
	valueSeen := make(map[string]bool)
	for _, o := range t.obs {
		for k := range o.Labels {
			if !labelSeen[k] {
				labelSeen[k] = true
				t.labelKeys = append(t.labelKeys, k)
			}
		}
		for k := range o.Values {
			if !valueSeen[k] {
				valueSeen[k] = true
				t.valueKeys = append(t.valueKeys, k)
			}
		}
	}
}

func (t *Table) Len() int { return len(t.obs) }

func (t *Table) Label(i int, key string) string {
	if i < 0 || i >= len(t.obs) {
		return ""
	}
	return t.obs[i].Labels[key]
}

func (t *Table) Value(i int, key string) float64 {
	if i < 0 || i >= len(t.obs) {
		return math.NaN()
	}
	v, ok := t.obs[i].Values[key]
	if !ok {
		return math.NaN()
	}
	return v
}

func (t *Table) LabelKeys() []string { return t.labelKeys }
func (t *Table) ValueKeys() []string { return t.valueKeys }

// Observation returns the i-th row. The returned maps are shared, not copied.
func (t *Table) Observation(i int) Observation { return t.obs[i] }

// HasValueKey reports whether any row carries the named numeric column.
func (t *Table) HasValueKey(key string) bool {
	for _, k := range t.valueKeys {
		if k == key {
			return true
		}
	}
	return false
}

// SetValue writes a numeric cell on row i, registering the column key if new.
func (t *Table) SetValue(i int, key string, v float64) {
	if i < 0 || i >= len(t.obs) {
		return
	}
	if t.obs[i].Values == nil {
		t.obs[i].Values = make(map[string]float64)
	}
	t.obs[i].Values[key] = v
	if !t.HasValueKey(key) {
		t.valueKeys = append(t.valueKeys, key)
	}
}

// AddValueColumn appends a full numeric column. The slice length must match
// the row count.
func (t *Table) AddValueColumn(key string, vals []float64) error {
	if len(vals) != len(t.obs) {
		return fmt.Errorf("column %s: %d values for %d rows", key, len(vals), len(t.obs))
	}
	for i, v := range vals {
		t.SetValue(i, key, v)
	}
	return nil
}

// Merge concatenates two tables. Column keys are the union of both; rows keep
// NaN for columns the other table introduced.
func Merge(a, b *Table) *Table {
	obs := make([]Observation, 0, a.Len()+b.Len())
	obs = append(obs, a.obs...)
	obs = append(obs, b.obs...)
	m := NewTable(obs)
	m.Skipped = append(m.Skipped, a.Skipped...)
	m.Skipped = append(m.Skipped, b.Skipped...)
	return m
}

// MeasurementID builds the unique per-measurement key (stake × year) used for
// group-aware splitting.
func (t *Table) MeasurementID(i int) string {
	return t.Label(i, ColStake) + "_" + strconv.Itoa(t.obs[i].Year())
}
