package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/plot/plotter"

	"github.com/stakelab-org/stakelab/analysis"
	"github.com/stakelab-org/stakelab/chart"
	"github.com/stakelab-org/stakelab/climate"
	"github.com/stakelab-org/stakelab/dataset"
)

// ============================================================================
// STAKELAB CLI — Fixed Exploration Sequence over Stake Measurements
// ============================================================================

const version = "0.3.0"

func main() {
	icelandPath := flag.String("iceland", "", "Path to the Iceland stake-measurement CSV")
	norwayPath := flag.String("norway", "", "Path to the Norway stake-measurement CSV")
	climatePath := flag.String("climate", "", "Path to the monthly climate reanalysis NetCDF file")
	geoPath := flag.String("geopotential", "", "Path to the geopotential NetCDF file")
	climateVars := flag.String("climate-vars", "t2m,tp", "Comma-separated reanalysis variables to attach")
	rawUnits := flag.Bool("raw-units", false, "Keep reanalysis units (Kelvin); convert on read instead")
	outDir := flag.String("out", "figures", "Directory for SVG chart output")
	save := flag.Bool("save", false, "Write charts to disk (otherwise analyses run without output files)")
	binWidth := flag.Float64("bin-width", 100, "Elevation bin width in metres for hypsometry")
	glaciers := flag.String("glaciers", "", "Comma-separated glacier names to restrict the analysis to")
	testSize := flag.Float64("test-size", 0, "If > 0, report a group-aware train/test split of this size")
	folds := flag.Int("folds", 0, "If > 0, report group k-fold sizes (grouped by RGI ID)")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `stakelab — glaciological stake-measurement analysis

Usage:
  stakelab --iceland iceland.csv --norway norway.csv --save --out figures
  stakelab --iceland iceland.csv --climate era5_monthly.nc --geopotential geo.nc --save
  stakelab --norway norway.csv --glaciers "Nigardsbreen,Engabreen"

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("stakelab %s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *icelandPath == "" && *norwayPath == "" {
		fmt.Fprintln(os.Stderr, "Error: at least one of --iceland or --norway is required")
		flag.Usage()
		os.Exit(1)
	}

	// ── Load and merge ────────────────────────────────────────────────────
	tbl, err := loadTables(logger, *icelandPath, *norwayPath)
	if err != nil {
		logger.Error("load failed", "err", err)
		os.Exit(1)
	}
	for _, s := range tbl.Skipped {
		logger.Info("column skipped", "column", s.Column, "reason", s.Reason)
	}

	// ── Climate attach ────────────────────────────────────────────────────
	vars := splitList(*climateVars)
	if *climatePath != "" {
		if err := attachClimate(logger, tbl, *climatePath, *geoPath, vars, !*rawUnits); err != nil {
			logger.Error("climate attach failed", "err", err)
			os.Exit(1)
		}
	}

	// ── Seasonal aggregates ───────────────────────────────────────────────
	var seasonalCols []string
	if *climatePath != "" {
		for _, v := range vars {
			sm, err := analysis.SeasonalAverages(tbl, v)
			if err != nil {
				logger.Error("seasonal averages failed", "variable", v, "err", err)
				continue
			}
			if err := sm.AppendTo(tbl); err != nil {
				logger.Error("seasonal append failed", "variable", v, "err", err)
				continue
			}
			w, s, a := sm.ColumnNames()
			seasonalCols = append(seasonalCols, w, s, a)
		}
	}

	// ── View selection ────────────────────────────────────────────────────
	var view analysis.View = tbl
	if *rawUnits {
		view = analysis.NewUnitView(view, "t2m", analysis.KelvinToCelsius)
	}
	if *glaciers != "" {
		view = analysis.Apply(view, analysis.Filter{
			Labels: map[string][]string{dataset.ColGlacier: splitList(*glaciers)},
		})
		logger.Info("glacier filter applied", "glaciers", *glaciers, "rows", view.Len())
	}
	if view.Len() == 0 {
		logger.Error("no rows selected")
		os.Exit(1)
	}

	// ── Split report ──────────────────────────────────────────────────────
	reportSplits(logger, tbl, *testSize, *folds)

	// ── Descriptive statistics ────────────────────────────────────────────
	statCols := presentColumns(view, append([]string{
		dataset.ColYear, dataset.ColElevation,
		dataset.ColWinterBalance, dataset.ColSummerBalance, dataset.ColAnnualBalance,
		dataset.ColSlope, dataset.ColAspect, dataset.ColBorderDist,
		dataset.ColClimateAltitude, dataset.ColElevationDiff,
	}, seasonalCols...))
	printDescribe(os.Stdout, analysis.DescribeAll(view, statCols))

	// ── Charts ────────────────────────────────────────────────────────────
	r := chart.NewRenderer(*outDir, *save)
	failed := 0
	run := func(step string, fn func() (string, error)) {
		path, err := fn()
		if err != nil {
			logger.Error(step+" failed", "err", err)
			failed++
			return
		}
		if path != "" {
			logger.Info(step+" written", "path", path)
		}
	}

	run("count heatmap", func() (string, error) {
		rows, cols, counts := countMatrix(view)
		return r.CountHeatmap("measurement_counts", "Stake measurements per glacier and year", rows, cols, counts)
	})
	run("balance histogram", func() (string, error) {
		return r.Histogram("balance_annual_hist", "Annual balance distribution",
			"Annual balance [m w.e.]", analysis.Collect(view, dataset.ColAnnualBalance), 25)
	})
	run("elevation histogram", func() (string, error) {
		return r.Histogram("elevation_hist", "Stake elevation distribution",
			"Elevation [m]", analysis.Collect(view, dataset.ColElevation), 25)
	})
	run("correlation matrix", func() (string, error) {
		keys := presentColumns(view, append([]string{
			dataset.ColElevation, dataset.ColSlope, dataset.ColAspect, dataset.ColBorderDist,
			dataset.ColWinterBalance, dataset.ColSummerBalance, dataset.ColAnnualBalance,
			dataset.ColElevationDiff,
		}, seasonalCols...))
		return r.CorrMatrix("correlation_matrix", "Covariate correlation (pairwise complete)",
			analysis.Correlate(view, keys))
	})
	run("balance time series", func() (string, error) {
		return r.TimeSeries("balance_timeseries", "Mean annual balance by glacier",
			"Annual balance [m w.e.]", balanceSeries(logger, view))
	})
	run("hypsometry counts", func() (string, error) {
		bands, err := analysis.ElevationBands(view, dataset.ColAnnualBalance, *binWidth)
		if err != nil {
			return "", err
		}
		return r.Hypsometry("hypsometry_counts", "Observations per elevation band", "Count", bands, true)
	})
	run("hypsometry balance", func() (string, error) {
		bands, err := analysis.ElevationBands(view, dataset.ColAnnualBalance, *binWidth)
		if err != nil {
			return "", err
		}
		return r.Hypsometry("hypsometry_balance", "Mean annual balance per elevation band",
			"Annual balance [m w.e.]", bands, false)
	})
	run("balance-elevation fit", func() (string, error) {
		fit, err := analysis.LinearFit(view, dataset.ColElevation, dataset.ColAnnualBalance)
		if err != nil {
			return "", err
		}
		xs, ys := analysis.CollectPairs(view, dataset.ColElevation, dataset.ColAnnualBalance)
		return r.ScatterFit("balance_gradient", "Annual balance vs elevation",
			"Elevation [m]", "Annual balance [m w.e.]", xs, ys, fit)
	})

	if failed > 0 {
		logger.Error("analysis finished with failed steps", "failed", failed)
		os.Exit(1)
	}
	logger.Info("analysis finished", "rows", view.Len(), "saved", *save)
}

// loadTables loads whichever national datasets were requested and merges
// them under the canonical column naming.
func loadTables(logger *slog.Logger, icelandPath, norwayPath string) (*dataset.Table, error) {
	var tbl *dataset.Table
	if icelandPath != "" {
		is, err := dataset.LoadFile(icelandPath, dataset.Iceland)
		if err != nil {
			return nil, err
		}
		logger.Info("dataset loaded", "source", dataset.Iceland.Name, "rows", is.Len())
		tbl = is
	}
	if norwayPath != "" {
		no, err := dataset.LoadFile(norwayPath, dataset.Norway)
		if err != nil {
			return nil, err
		}
		logger.Info("dataset loaded", "source", dataset.Norway.Name, "rows", no.Len())
		if tbl == nil {
			tbl = no
		} else {
			tbl = dataset.Merge(tbl, no)
		}
	}
	return tbl, nil
}

// attachClimate opens the reanalysis grids and attaches per-stake monthly
// covariates.
func attachClimate(logger *slog.Logger, tbl *dataset.Table, climatePath, geoPath string, vars []string, convert bool) error {
	sc, err := climate.Open(climatePath, vars)
	if err != nil {
		return err
	}
	defer sc.Close()
	logger.Info("climate summary", sc.Summary()...)

	grid, err := sc.ReadAll()
	if err != nil {
		return err
	}

	var geo *climate.Grid
	if geoPath != "" {
		gs, err := climate.Open(geoPath, []string{"z"})
		if err != nil {
			return err
		}
		defer gs.Close()
		if geo, err = gs.ReadAll(); err != nil {
			return err
		}
	}

	return climate.Attach(tbl, grid, geo, climate.AttachOptions{
		Vars:         vars,
		ConvertUnits: convert,
	})
}

// reportSplits logs group-aware modeling splits when requested.
func reportSplits(logger *slog.Logger, tbl *dataset.Table, testSize float64, folds int) {
	if testSize > 0 {
		s, err := dataset.TrainTestSplit(tbl, testSize, dataset.ColRGIID, 42)
		if err != nil {
			logger.Error("train/test split failed", "err", err)
		} else {
			logger.Info("train/test split", "train", len(s.Train), "test", len(s.Test))
		}
	}
	if folds > 0 {
		fs, err := dataset.GroupKFold(tbl, folds, dataset.ColRGIID)
		if err != nil {
			logger.Error("group k-fold failed", "err", err)
			return
		}
		for i, f := range fs {
			logger.Info("fold", "idx", i, "train", len(f.Train), "test", len(f.Test))
		}
	}
}

// countMatrix builds the glacier × year observation-count matrix.
func countMatrix(view analysis.View) (rowLabels, colLabels []string, counts [][]float64) {
	rowLabels = analysis.UniqueLabels(view, dataset.ColGlacier)
	years := analysis.ObservedYears(view)
	if len(years) == 0 {
		return rowLabels, nil, nil
	}

	colIdx := make(map[int]int)
	for y := years[0]; y <= years[len(years)-1]; y++ {
		colIdx[y] = len(colLabels)
		colLabels = append(colLabels, fmt.Sprintf("%d", y))
	}

	counts = make([][]float64, len(rowLabels))
	for i := range counts {
		counts[i] = make([]float64, len(colLabels))
	}
	rowIdx := make(map[string]int, len(rowLabels))
	for i, g := range rowLabels {
		rowIdx[g] = i
	}

	for i := 0; i < view.Len(); i++ {
		g, ok := rowIdx[view.Label(i, dataset.ColGlacier)]
		y, ok2 := colIdx[int(view.Value(i, dataset.ColYear))]
		if ok && ok2 {
			counts[g][y]++
		}
	}
	return rowLabels, colLabels, counts
}

// balanceSeries builds one gap-broken series of mean annual balance per
// glacier, logging the gaps it finds.
func balanceSeries(logger *slog.Logger, view analysis.View) []chart.Series {
	var out []chart.Series
	for _, g := range analysis.UniqueLabels(view, dataset.ColGlacier) {
		sub := analysis.Apply(view, analysis.Filter{
			Labels: map[string][]string{dataset.ColGlacier: {g}},
		})
		groups := analysis.GroupAndAggregate(sub, []string{dataset.ColYear},
			dataset.ColAnnualBalance, analysis.AggMean, analysis.SortChronological, 0)

		years := analysis.ObservedYears(sub)
		for _, gap := range analysis.YearGaps(years) {
			logger.Info("gap in year series", "glacier", g, "from", gap.From, "to", gap.To, "len", gap.Len)
		}

		meanByYear := make(map[int]float64, len(groups))
		for _, gr := range groups {
			if !math.IsNaN(gr.Value) {
				meanByYear[yearOf(gr.Key)] = gr.Value
			}
		}

		s := chart.Series{Name: g}
		var seg plotter.XYs
		for i, y := range years {
			v, ok := meanByYear[y]
			breakHere := i > 0 && y != years[i-1]+1
			if breakHere && len(seg) > 0 {
				s.Segments = append(s.Segments, seg)
				seg = nil
			}
			if ok {
				seg = append(seg, plotter.XY{X: float64(y), Y: v})
			}
		}
		if len(seg) > 0 {
			s.Segments = append(s.Segments, seg)
		}
		if len(s.Segments) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func yearOf(key string) int {
	var y int
	fmt.Sscanf(key, "%d", &y)
	return y
}

// presentColumns keeps the keys actually present in the view, preserving
// order.
func presentColumns(view analysis.View, keys []string) []string {
	have := make(map[string]bool)
	for _, k := range view.ValueKeys() {
		have[k] = true
	}
	var out []string
	for _, k := range keys {
		if have[k] {
			out = append(out, k)
		}
	}
	return out
}

// printDescribe writes descriptive statistics as an aligned text table.
func printDescribe(w *os.File, stats []analysis.ColumnStats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tn\tmissing\tmean\tstd\tmin\tq1\tmedian\tq3\tmax")
	for _, cs := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			cs.Key, cs.N, cs.Missing,
			num(cs.Mean), num(cs.Std), num(cs.Min), num(cs.Q1),
			num(cs.Median), num(cs.Q3), num(cs.Max))
	}
	tw.Flush()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
