package cleaning

import (
	"fmt"
	"io"
	"text/tabwriter"

	"salespipe/internal/dataset"
)

// summaryColumns are the key metrics described after cleaning
var summaryColumns = []string{"Sales", "Profit", MarginColumn}

// WriteSummary prints describe()-style statistics for the key metric
// columns: count, mean, std, min, quartiles, max. Missing columns are
// simply omitted.
func WriteSummary(w io.Writer, table *dataset.Table) {
	fmt.Fprintln(w, "--- Summary Statistics of Key Metrics ---")

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tcount\tmean\tstd\tmin\t25%\t50%\t75%\tmax")

	for _, name := range summaryColumns {
		col, ok := table.Column(name)
		if !ok || col.Kind != dataset.KindNumeric {
			continue
		}

		count := col.Len() - col.NullCount()
		mean, _ := col.Mean()
		std, _ := col.StdDev()
		min, _ := col.Quantile(0)
		q1, _ := col.Quantile(0.25)
		q2, _ := col.Quantile(0.5)
		q3, _ := col.Quantile(0.75)
		max, _ := col.Quantile(1)

		fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			name, count, mean, std, min, q1, q2, q3, max)
	}

	tw.Flush()
}
