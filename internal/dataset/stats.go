package dataset

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the median of the column's present values. The second
// return is false when the column has no present values (an all-null
// column has no defined median). Even-length inputs interpolate between
// the two middle values, matching the usual dataframe convention; gonum's
// empirical quantile takes the lower order statistic instead, so the
// selection is done directly here.
func (c *Column) Median() (float64, bool) {
	values := c.PresentFloats()
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, true
	}
	return sorted[mid], true
}

// Quantile returns the p-quantile (0 ≤ p ≤ 1) of the column's present
// values using linear interpolation between order statistics, the same
// convention dataframe describe() output uses.
func (c *Column) Quantile(p float64) (float64, bool) {
	values := c.PresentFloats()
	if len(values) == 0 || p < 0 || p > 1 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0], true
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1], true
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac, true
}

// Mean returns the mean of the column's present values
func (c *Column) Mean() (float64, bool) {
	values := c.PresentFloats()
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// StdDev returns the sample standard deviation of the present values
func (c *Column) StdDev() (float64, bool) {
	values := c.PresentFloats()
	if len(values) < 2 {
		return 0, false
	}
	return stat.StdDev(values, nil), true
}

// Mode returns the most frequent present value of a text or date column,
// ties broken by first encounter. The second return is false when every
// entry is null.
func (c *Column) Mode() (string, bool) {
	counts := make(map[string]int)
	var order []string

	for i := 0; i < c.Len(); i++ {
		var key string
		switch c.Kind {
		case KindText:
			v, ok := c.Text(i)
			if !ok {
				continue
			}
			key = v
		case KindDate:
			v, ok := c.Date(i)
			if !ok {
				continue
			}
			key = v.Format("2006-01-02")
		default:
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	if len(order) == 0 {
		return "", false
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	return best, true
}

// PopStdDev returns the population standard deviation (divide by N) of the
// given values; zero for a single observation, not undefined.
func PopStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) == 1 {
		return 0
	}
	return stat.PopStdDev(values, nil)
}

// Correlation returns the Pearson correlation of two equal-length value
// slices, pairwise-complete over the validity masks of the two columns.
func Correlation(x, y *Column) (float64, bool) {
	if x.Kind != KindNumeric || y.Kind != KindNumeric || x.Len() != y.Len() {
		return 0, false
	}

	var xs, ys []float64
	for i := 0; i < x.Len(); i++ {
		xv, ok := x.Float(i)
		if !ok {
			continue
		}
		yv, ok := y.Float(i)
		if !ok {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}
	if len(xs) < 2 {
		return 0, false
	}
	return stat.Correlation(xs, ys, nil), true
}
