// Package stakelab provides analysis tooling for glaciological stake
// measurements.
//
// Usage:
//
//	import "github.com/stakelab-org/stakelab/dataset"
//	import "github.com/stakelab-org/stakelab/analysis"
//
//	tbl, err := dataset.LoadFile("iceland.csv", dataset.Iceland)
//	groups := analysis.GroupAndAggregate(tbl,
//	    []string{dataset.ColGlacier}, dataset.ColAnnualBalance,
//	    analysis.AggMean, analysis.SortChronological, 0)
//
// The dataset package loads stake-measurement CSVs from Iceland and Norway
// into a common column naming, the climate package attaches monthly
// reanalysis covariates from NetCDF grids, the analysis package holds the
// stateless numeric routines (grouping, seasonal means, gap detection,
// hypsometry, correlation), and the chart package renders the results as
// SVG files. All computation is local; nothing here calls a network service.
package stakelab
