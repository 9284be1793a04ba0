package cleaning

import (
	"context"

	"salespipe/internal/dataset"
	"salespipe/internal/errors"
)

// MarginColumn is the derived row-level ratio added in stage 1
const MarginColumn = "Profit Margin (%)"

// DeriveProfitMargin adds the Profit Margin (%) column:
// Profit / Sales * 100 when both values are present and Sales is non-zero,
// exactly 0 otherwise. No division by zero can occur. Returns a new table;
// errors only when the Sales or Profit column is missing or non-numeric,
// which makes the whole dataset unusable for the pipeline.
func DeriveProfitMargin(ctx context.Context, table *dataset.Table) (*dataset.Table, error) {
	sales, ok := table.Column("Sales")
	if !ok || sales.Kind != dataset.KindNumeric {
		return nil, errors.NewValidationError("table has no numeric Sales column")
	}
	profit, ok := table.Column("Profit")
	if !ok || profit.Kind != dataset.KindNumeric {
		return nil, errors.NewValidationError("table has no numeric Profit column")
	}

	out := table.Clone()
	margin := dataset.NewNumericColumn(MarginColumn, out.NumRows())

	outSales, _ := out.Column("Sales")
	outProfit, _ := out.Column("Profit")
	for i := 0; i < out.NumRows(); i++ {
		s, sOK := outSales.Float(i)
		p, pOK := outProfit.Float(i)
		if !sOK || !pOK || s == 0 {
			margin.SetFloat(i, 0)
			continue
		}
		margin.SetFloat(i, p/s*100)
	}

	if out.HasColumn(MarginColumn) {
		// Re-running the stage recomputes the margin in place
		if err := out.ReplaceColumn(margin); err != nil {
			return nil, err
		}
		return out, nil
	}
	if err := out.AddColumn(margin); err != nil {
		return nil, err
	}
	return out, nil
}
