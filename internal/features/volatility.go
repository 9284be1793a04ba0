package features

import (
	"context"
	"fmt"
	"time"

	"salespipe/internal/dataset"
	"salespipe/internal/errors"
)

// segmentKey identifies a (region, month-of-year) volatility segment
type segmentKey struct {
	region string
	month  time.Month
}

// AddSegmentVolatility computes the population standard deviation of Sales
// per (Region, month-of-year) segment and broadcasts it to every row of the
// segment as Sales_Volatility_Monthly. A segment with a single observation
// has zero dispersion, not an undefined one. Rows with a null region, date
// or sales value stay null.
//
// Missing prerequisite columns are a recoverable feature failure: the
// engine reports them and omits the column.
func AddSegmentVolatility(ctx context.Context, table *dataset.Table, dateColumn string) (*dataset.Table, error) {
	region, ok := table.Column("Region")
	if !ok || region.Kind != dataset.KindText {
		return nil, errors.NewFeatureError("segment_volatility",
			"text Region column required for segment volatility", nil)
	}
	dates, ok := table.Column(dateColumn)
	if !ok || dates.Kind != dataset.KindDate {
		return nil, errors.NewFeatureError("segment_volatility",
			fmt.Sprintf("date index column %q required for segment volatility", dateColumn), nil)
	}
	sales, ok := table.Column("Sales")
	if !ok || sales.Kind != dataset.KindNumeric {
		return nil, errors.NewFeatureError("segment_volatility",
			"numeric Sales column required for segment volatility", nil)
	}

	n := table.NumRows()
	groups := make(map[segmentKey][]float64)
	for i := 0; i < n; i++ {
		r, okR := region.Text(i)
		d, okD := dates.Date(i)
		v, okV := sales.Float(i)
		if !okR || !okD || !okV {
			continue
		}
		key := segmentKey{region: r, month: d.Month()}
		groups[key] = append(groups[key], v)
	}

	stddevs := make(map[segmentKey]float64, len(groups))
	for key, values := range groups {
		stddevs[key] = dataset.PopStdDev(values)
	}

	vol := dataset.NewNumericColumn(VolatilityColumn, n)
	for i := 0; i < n; i++ {
		r, okR := region.Text(i)
		d, okD := dates.Date(i)
		if !okR || !okD {
			continue
		}
		if sd, ok := stddevs[segmentKey{region: r, month: d.Month()}]; ok {
			vol.SetFloat(i, sd)
		}
	}

	out := table.Clone()
	if err := addOrReplace(out, vol); err != nil {
		return nil, err
	}
	return out, nil
}
