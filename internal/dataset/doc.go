// Package dataset provides the in-memory rectangular table the pipeline
// stages exchange. Columns carry an explicit Kind tag (numeric, text,
// date) assigned at construction and a validity mask for nulls; all
// per-column dispatch in the cleaning and feature stages keys off the tag
// instead of inspecting values at runtime.
package dataset
