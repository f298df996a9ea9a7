package dataset

// HydroMonths are the month suffixes of the hydrological year, October
// through September. Monthly climate covariate columns are named
// "<var>_<mon>" with these suffixes, in this order.
var HydroMonths = [12]string{
	"oct", "nov", "dec", "jan", "feb", "mar",
	"apr", "may", "jun", "jul", "aug", "sep",
}

// Winter is Oct–Apr, summer May–Sep. The split follows the mass-balance
// convention for the measured glaciers, not the calendar seasons.
const (
	WinterMonthCount = 7
	SummerMonthCount = 5
)

// MonthlyColumn builds the column name for a climate variable in a given
// hydrological month, e.g. MonthlyColumn("t2m", "oct") → "t2m_oct".
func MonthlyColumn(variable, mon string) string {
	return variable + "_" + mon
}

// MonthlyColumns returns the 12 monthly column names of a climate variable in
// hydrological-year order.
func MonthlyColumns(variable string) []string {
	cols := make([]string, len(HydroMonths))
	for i, m := range HydroMonths {
		cols[i] = MonthlyColumn(variable, m)
	}
	return cols
}

// monthIndex returns the position of a month suffix within the hydrological
// year, or -1 if the string is not a month.
func monthIndex(mon string) int {
	for i, m := range HydroMonths {
		if m == mon {
			return i
		}
	}
	return -1
}
