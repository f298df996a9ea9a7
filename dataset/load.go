package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ============================================================================
// CSV LOADING — Per-Source Header Normalization
// ============================================================================
// Each national dataset ships with its own header naming. A Source carries
// the rename table that maps snake_cased headers onto the canonical column
// names, plus the country label stamped on every row. After loading, tables
// from different sources are column-compatible and can be merged.
// ============================================================================

// Source describes one national stake-measurement dataset.
type Source struct {
	Name    string            // dataset name, for error messages
	Country string            // stamped into the COUNTRY label of each row
	Renames map[string]string // snake_cased header → canonical column name
}

// Iceland is the reference naming; most headers map onto the canonical names
// directly. Balances in the Icelandic dataset are stratigraphic.
var Iceland = Source{
	Name:    "iceland",
	Country: "IS",
	Renames: map[string]string{
		"stake":            ColStake,
		"name":             ColGlacier,
		"rgiid":            ColRGIID,
		"yr":               ColYear,
		"lat":              ColLat,
		"lon":              ColLon,
		"elevation":        ColElevation,
		"bw_stratigraphic": ColWinterBalance,
		"bs_stratigraphic": ColSummerBalance,
		"ba_stratigraphic": ColAnnualBalance,
		"slope":            ColSlope,
		"aspect":           ColAspect,
		"d_from_border":    ColBorderDist,
	},
}

// Norway uses the NVE export naming; everything is renamed to the Icelandic
// scheme before any joint analysis.
var Norway = Source{
	Name:    "norway",
	Country: "NO",
	Renames: map[string]string{
		"stake_id":       ColStake,
		"glacier_name":   ColGlacier,
		"rgi_id":         ColRGIID,
		"year":           ColYear,
		"latitude":       ColLat,
		"longitude":      ColLon,
		"altitude":       ColElevation,
		"balance_winter": ColWinterBalance,
		"balance_summer": ColSummerBalance,
		"balance_netto":  ColAnnualBalance,
		"slope_deg":      ColSlope,
		"aspect_deg":     ColAspect,
		"dist_border":    ColBorderDist,
	},
}

// LoadFile reads a stake-measurement CSV from disk.
func LoadFile(path string, src Source) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s dataset: %w", src.Name, err)
	}
	defer f.Close()
	return Load(f, src)
}

// Load parses stake-measurement CSV data into a Table. Headers are
// snake_cased, renamed per the source, then classified into labels, values,
// and skipped columns. Missing numeric cells become NaN.
func Load(r io.Reader, src Source) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rawHeaders, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s headers: %w", src.Name, err)
	}
	if len(rawHeaders) == 0 {
		return nil, fmt.Errorf("%s: CSV has no columns", src.Name)
	}

	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		key := toSnakeCase(strings.TrimSpace(h))
		if canonical, ok := src.Renames[key]; ok {
			key = canonical
		}
		headers[i] = key
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: CSV has no data rows", src.Name)
	}

	classes := classifyColumns(headers, rows)

	obs := make([]Observation, 0, len(rows))
	for _, row := range rows {
		o := Observation{
			Labels: map[string]string{ColCountry: src.Country},
			Values: make(map[string]float64),
		}
		for _, col := range classes {
			var val string
			if col.index < len(row) {
				val = strings.TrimSpace(row[col.index])
			}
			switch col.role {
			case roleLabel:
				o.Labels[col.header] = val
			case roleValue:
				o.Values[col.header] = parseCell(val)
			}
		}
		obs = append(obs, o)
	}

	tbl := NewTable(obs)
	for _, col := range classes {
		if col.role == roleSkipped {
			tbl.Skipped = append(tbl.Skipped, SkippedColumn{
				Column: col.header,
				Reason: col.skipReason,
			})
		}
	}
	return tbl, nil
}

func parseCell(val string) float64 {
	if isNull(val) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
