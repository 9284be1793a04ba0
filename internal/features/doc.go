// Package features implements the second pipeline stage: time-indexed
// feature engineering over the cleaned sales table. The Engine resamples
// the daily rows into a monthly series, derives rolling, lag and
// year-over-year values, joins them back onto the daily grain, decomposes
// the monthly series into trend/seasonal/residual components and computes
// per-segment aggregates, then persists the prepared CSV.
package features
