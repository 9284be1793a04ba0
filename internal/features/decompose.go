package features

import (
	"fmt"

	"salespipe/internal/errors"
)

// Decomposition holds the additive components of the monthly series,
// aligned index-for-index with the months it was computed from.
// Observed = Trend + Seasonal + Residual at every position.
type Decomposition struct {
	Series   *MonthlySeries
	Observed []float64
	Trend    []float64
	Seasonal []float64
	Residual []float64
	Period   int
}

// Decompose runs a classical additive decomposition of the monthly series:
// centered moving-average trend, positionally averaged seasonal pattern
// centered to zero, residual as the remainder. The series must span at
// least two full periods; shorter series are a recoverable feature failure,
// never a run abort.
func Decompose(series *MonthlySeries, period int) (*Decomposition, error) {
	if period < 2 {
		return nil, errors.NewFeatureError("decomposition",
			fmt.Sprintf("seasonal period %d too small", period), nil)
	}
	n := series.Len()
	if n < 2*period {
		return nil, errors.NewFeatureError("decomposition",
			fmt.Sprintf("need at least %d monthly points, have %d", 2*period, n), nil)
	}

	d := &Decomposition{
		Series:   series,
		Observed: append([]float64(nil), series.Sales...),
		Trend:    make([]float64, n),
		Seasonal: make([]float64, n),
		Residual: make([]float64, n),
		Period:   period,
	}

	// Symmetric window needs odd width
	window := period
	if window%2 == 0 {
		window++
	}
	d.Trend = centeredMovingAverage(d.Observed, window)

	detrended := make([]float64, n)
	for i := range detrended {
		detrended[i] = d.Observed[i] - d.Trend[i]
	}

	pattern := seasonalPattern(detrended, period)
	for i := range d.Seasonal {
		d.Seasonal[i] = pattern[i%period]
	}

	for i := range d.Residual {
		d.Residual[i] = d.Observed[i] - d.Trend[i] - d.Seasonal[i]
	}

	return d, nil
}

// centeredMovingAverage smooths with a symmetric window, shrinking the
// window at the edges so every position keeps a value.
func centeredMovingAverage(data []float64, window int) []float64 {
	n := len(data)
	out := make([]float64, n)
	half := window / 2

	for i := 0; i < n; i++ {
		start := i - half
		if start < 0 {
			start = 0
		}
		end := i + half + 1
		if end > n {
			end = n
		}
		var sum float64
		for j := start; j < end; j++ {
			sum += data[j]
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// seasonalPattern averages the detrended values at each position within the
// period and centers the pattern around zero so the seasonal component
// carries no level of its own.
func seasonalPattern(detrended []float64, period int) []float64 {
	pattern := make([]float64, period)
	counts := make([]int, period)
	for i, v := range detrended {
		pos := i % period
		pattern[pos] += v
		counts[pos]++
	}
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
	}

	var sum float64
	for _, v := range pattern {
		sum += v
	}
	mean := sum / float64(period)
	for i := range pattern {
		pattern[i] -= mean
	}
	return pattern
}
