package dataset

import (
	"strconv"
	"strings"
	"unicode"
)

// ============================================================================
// COLUMN CLASSIFICATION — Heuristic Role Detection
// ============================================================================
// Inspects raw CSV values and decides, per column: numeric value, string
// label, or skip. Canonical columns (after source renaming) have forced
// roles; everything else is classified by content:
//
//   1. Sample values → detect type (numeric vs string)
//   2. Type + cardinality → classify role (label, value, skip)
//   3. Monthly-suffix pattern → mark climate covariate columns
// ============================================================================

type columnRole int

const (
	roleLabel columnRole = iota
	roleValue
	roleSkipped
)

type columnClass struct {
	header string // header after renaming
	index  int
	role   columnRole

	skipReason  string
	uniqueCount int
	nullCount   int
	isClimate   bool // <var>_<mon> monthly covariate
}

// Canonical columns carry a known role regardless of content. The stake ID is
// a label even though it is near-unique per row; classification by content
// would skip it.
var canonicalLabels = map[string]bool{
	ColStake:   true,
	ColGlacier: true,
	ColRGIID:   true,
	ColCountry: true,
}

var canonicalValues = map[string]bool{
	ColYear:            true,
	ColLat:             true,
	ColLon:             true,
	ColElevation:       true,
	ColWinterBalance:   true,
	ColSummerBalance:   true,
	ColAnnualBalance:   true,
	ColSlope:           true,
	ColAspect:          true,
	ColBorderDist:      true,
	ColClimateAltitude: true,
	ColElevationDiff:   true,
}

// classifyColumns analyzes every column against the sampled rows.
func classifyColumns(headers []string, rows [][]string) []columnClass {
	classes := make([]columnClass, len(headers))
	for i, h := range headers {
		classes[i] = analyzeColumn(h, i, rows)
	}
	return classes
}

func analyzeColumn(header string, index int, rows [][]string) columnClass {
	col := columnClass{header: header, index: index}

	if canonicalLabels[header] {
		col.role = roleLabel
		return col
	}
	if canonicalValues[header] || isMonthlyColumn(header) {
		col.role = roleValue
		col.isClimate = isMonthlyColumn(header)
		return col
	}

	values := make([]string, 0, len(rows))
	uniqueSet := make(map[string]bool)
	numCount := 0

	for _, row := range rows {
		if index >= len(row) {
			col.nullCount++
			continue
		}
		val := strings.TrimSpace(row[index])
		if isNull(val) {
			col.nullCount++
			continue
		}
		values = append(values, val)
		uniqueSet[val] = true
		if isNumeric(val) {
			numCount++
		}
	}
	col.uniqueCount = len(uniqueSet)

	if len(values) == 0 {
		col.role = roleSkipped
		col.skipReason = "all values empty or null"
		return col
	}

	// Numeric if 80%+ of non-null values parse.
	if numCount >= int(float64(len(values))*0.8) {
		col.role = roleValue
		return col
	}

	if col.uniqueCount == len(values) && len(values) > 10 {
		col.role = roleSkipped
		col.skipReason = "unique per row, likely free text"
		return col
	}
	if col.uniqueCount > len(values)/2 && col.uniqueCount > 50 {
		col.role = roleSkipped
		col.skipReason = "high cardinality, not useful for grouping"
		return col
	}

	col.role = roleLabel
	return col
}

func isNull(s string) bool {
	switch strings.ToLower(s) {
	case "", "null", "n/a", "na", "nan", "-9999":
		return true
	}
	return false
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}

// isMonthlyColumn reports whether a header looks like a monthly climate
// covariate: "<var>_<mon>" with a hydrological-year month suffix, e.g.
// "t2m_oct" or "tp_sep".
func isMonthlyColumn(header string) bool {
	i := strings.LastIndex(header, "_")
	if i <= 0 || i == len(header)-1 {
		return false
	}
	return monthIndex(header[i+1:]) >= 0
}

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
// Canonical upper-snake names (renamed headers) pass through untouched.
func toSnakeCase(s string) string {
	if s == strings.ToUpper(s) {
		return s
	}

	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	out := result.String()
	out = strings.ToLower(out)
	out = strings.ReplaceAll(out, " ", "_")
	out = strings.ReplaceAll(out, "-", "_")
	out = strings.ReplaceAll(out, "__", "_")
	return strings.Trim(out, "_")
}
