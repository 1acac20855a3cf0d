// Package tui is the interactive results browser for namesearch.
//
// While a scan runs it shows a spinner with batch progress; once the
// aggregated result arrives it switches to a table of names with their
// occurrence counts and first position, filterable with "/".
package tui
