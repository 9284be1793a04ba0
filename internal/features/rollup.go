package features

import (
	"context"

	"salespipe/internal/dataset"
	"salespipe/internal/errors"
)

// productKey identifies a (region, product) revenue segment
type productKey struct {
	region  string
	product string
}

// AddRevenueRollup sums Sales per (Region, Product Name) and broadcasts the
// segment total to every row as Revenue_Per_Product_Region. Rows with a
// null region or product stay null. Missing prerequisite columns are a
// recoverable feature failure.
func AddRevenueRollup(ctx context.Context, table *dataset.Table) (*dataset.Table, error) {
	region, ok := table.Column("Region")
	if !ok || region.Kind != dataset.KindText {
		return nil, errors.NewFeatureError("revenue_rollup",
			"text Region column required for revenue rollup", nil)
	}
	product, ok := table.Column("Product Name")
	if !ok || product.Kind != dataset.KindText {
		return nil, errors.NewFeatureError("revenue_rollup",
			"text Product Name column required for revenue rollup", nil)
	}
	sales, ok := table.Column("Sales")
	if !ok || sales.Kind != dataset.KindNumeric {
		return nil, errors.NewFeatureError("revenue_rollup",
			"numeric Sales column required for revenue rollup", nil)
	}

	n := table.NumRows()
	totals := make(map[productKey]float64)
	for i := 0; i < n; i++ {
		r, okR := region.Text(i)
		p, okP := product.Text(i)
		if !okR || !okP {
			continue
		}
		if v, ok := sales.Float(i); ok {
			totals[productKey{region: r, product: p}] += v
		}
	}

	revenue := dataset.NewNumericColumn(RevenueRollupColumn, n)
	for i := 0; i < n; i++ {
		r, okR := region.Text(i)
		p, okP := product.Text(i)
		if !okR || !okP {
			continue
		}
		revenue.SetFloat(i, totals[productKey{region: r, product: p}])
	}

	out := table.Clone()
	if err := addOrReplace(out, revenue); err != nil {
		return nil, err
	}
	return out, nil
}
