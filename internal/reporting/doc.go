// Package reporting renders the analysis side-channels of the prepared
// table: console insights (ranked products, revenue pivot, category
// margins, correlations) and the chart workbook. Insights degrade
// individually when their source columns are missing; none of them affect
// the persisted pipeline artifacts.
package reporting
