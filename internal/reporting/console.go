package reporting

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"text/tabwriter"

	"salespipe/internal/cleaning"
	"salespipe/internal/dataset"
)

// correlationColumns are the numeric columns of the correlation insight
var correlationColumns = []string{
	"Sales", "Discount", "Quantity", "Profit", cleaning.MarginColumn,
}

// Reporter renders the console insights. Each insight computes
// independently; a failed one is logged with its reason and the rest still
// print.
type Reporter struct {
	out    io.Writer
	logger *slog.Logger
}

// NewReporter creates a console reporter writing to out
func NewReporter(out io.Writer, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{out: out, logger: logger}
}

// Render prints every insight for the prepared table
func (r *Reporter) Render(ctx context.Context, table *dataset.Table) {
	if top, err := TopProductsByProfit(table, 10); err != nil {
		r.skip(ctx, "top products by profit", err)
	} else {
		r.ranked("Top 10 products by total profit", top)
	}

	if bottom, err := BottomProductsByMargin(table, 10); err != nil {
		r.skip(ctx, "bottom products by margin", err)
	} else {
		r.ranked("Bottom 10 products by average margin (%)", bottom)
	}

	if pivot, err := RevenuePivot(table); err != nil {
		r.skip(ctx, "revenue pivot", err)
	} else {
		r.pivot("Revenue by Region x Category", pivot)
	}

	if margins, err := AverageMarginByCategory(table); err != nil {
		r.skip(ctx, "average margin by category", err)
	} else {
		r.ranked("Average margin by category (%)", margins)
	}

	if corr, err := Correlations(table, correlationColumns); err != nil {
		r.skip(ctx, "correlation matrix", err)
	} else {
		r.correlations("Correlation matrix", corr)
	}
}

func (r *Reporter) skip(ctx context.Context, insight string, err error) {
	r.logger.WarnContext(ctx, "insight skipped",
		slog.String("insight", insight),
		slog.String("reason", err.Error()))
	fmt.Fprintf(r.out, "\n%s: unavailable (%v)\n", insight, err)
}

func (r *Reporter) ranked(title string, entries []RankedEntry) {
	fmt.Fprintf(r.out, "\n%s\n", title)
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\t%.2f\n", e.Label, e.Value)
	}
	w.Flush()
}

func (r *Reporter) pivot(title string, p *Pivot) {
	fmt.Fprintf(r.out, "\n%s\n", title)
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "  %s", p.RowName)
	for _, c := range p.Cols {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w)

	for _, row := range p.Rows {
		fmt.Fprintf(w, "  %s", row)
		for _, col := range p.Cols {
			fmt.Fprintf(w, "\t%.2f", p.Cell(row, col))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func (r *Reporter) correlations(title string, m *CorrelationMatrix) {
	fmt.Fprintf(r.out, "\n%s\n", title)
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)

	fmt.Fprint(w, "  ")
	for _, label := range m.Labels {
		fmt.Fprintf(w, "\t%s", label)
	}
	fmt.Fprintln(w)

	for i, label := range m.Labels {
		fmt.Fprintf(w, "  %s", label)
		for j := range m.Labels {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				fmt.Fprint(w, "\t-")
			} else {
				fmt.Fprintf(w, "\t%.3f", v)
			}
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}
