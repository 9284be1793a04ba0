// Package exporter writes pipeline tables to delimited UTF-8 artifacts.
// The cleaned intermediate is written without an index column; the
// prepared output leads with the date index. Nulls are written as empty
// cells so the boundary round-trips the validity masks.
package exporter
