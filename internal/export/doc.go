// Package export writes the station reference data as a single JSON document.
//
// The document has exactly two top-level keys, "schematics" and "staticData",
// each holding its mapping unmodified: same keys, same positional lists, same
// order. Output is indented with four spaces and has no trailing newline. The
// package can also read an exported file back, keeping key order, and report
// every difference from the source data.
package export
