package analysis

import (
	"math"
	"strings"
)

// ============================================================================
// VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The analysis routines never own table data. They read through this
// interface, which dataset.Table implements directly.
//
// Implementations here:
//   SubView  — filtered subset (indices into parent, zero-copy)
//   UnitView — wraps any view, converts units on read
//
// Label and Value are called in tight loops; keep implementations cheap.
// ============================================================================

// View provides indexed access to a stake-measurement table.
type View interface {
	Len() int
	Label(index int, key string) string
	Value(index int, key string) float64
	LabelKeys() []string
	ValueKeys() []string
}

// ============================================================================
// SUB VIEW — filtered subset
// ============================================================================

// SubView is a filtered subset of a parent View. Holds indices into the
// parent, no data copy.
type SubView struct {
	parent  View
	indices []int
}

func newSubView(parent View, indices []int) View {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Label(i int, key string) string {
	if i < 0 || i >= len(v.indices) {
		return ""
	}
	return v.parent.Label(v.indices[i], key)
}

func (v *SubView) Value(i int, key string) float64 {
	if i < 0 || i >= len(v.indices) {
		return math.NaN()
	}
	return v.parent.Value(v.indices[i], key)
}

func (v *SubView) LabelKeys() []string { return v.parent.LabelKeys() }
func (v *SubView) ValueKeys() []string { return v.parent.ValueKeys() }

// ============================================================================
// UNIT VIEW — on-read unit conversion
// ============================================================================

// UnitView wraps a View and converts a family of value columns on read.
// Used when climate covariates were attached in raw reanalysis units:
// temperature columns can be read in Celsius without rewriting the table.
type UnitView struct {
	parent View
	prefix string // value-key prefix selecting the columns to convert
	conv   func(float64) float64
}

// NewUnitView converts every value column whose key starts with prefix
// through conv on read. No data copy.
func NewUnitView(parent View, prefix string, conv func(float64) float64) View {
	return &UnitView{parent: parent, prefix: prefix, conv: conv}
}

// KelvinToCelsius converts absolute temperatures to Celsius.
func KelvinToCelsius(k float64) float64 { return k - 273.15 }

func (v *UnitView) Len() int { return v.parent.Len() }

func (v *UnitView) Label(i int, key string) string {
	return v.parent.Label(i, key)
}

func (v *UnitView) Value(i int, key string) float64 {
	val := v.parent.Value(i, key)
	if strings.HasPrefix(key, v.prefix) && !math.IsNaN(val) {
		return v.conv(val)
	}
	return val
}

func (v *UnitView) LabelKeys() []string { return v.parent.LabelKeys() }
func (v *UnitView) ValueKeys() []string { return v.parent.ValueKeys() }
