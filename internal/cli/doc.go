// Package cli implements the command-line interface for stationsdata.
//
// The cli package provides the Cobra-based CLI. The root command exports the
// station reference data to stationsdata.json; subcommands list stations, show
// the named fields of one station, verify an exported file against the embedded
// data, and audit the data for irregularities. It coordinates the station and
// export packages.
package cli
