// Package cleaning implements stage 1 of the pipeline: loading the raw
// sales export, filling missing values, normalizing date columns, and
// deriving the profit margin. Each step takes a table and returns a new
// one; the stage persists its result as the cleaned CSV that stage 2
// consumes.
package cleaning
