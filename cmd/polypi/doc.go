// Command polypi approximates π with inscribed and circumscribed regular
// polygons and reports how the estimates converge.
//
// Usage:
//
//	polypi [flags]
//
// Settings come from built-in defaults, an optional -config file (YAML or
// TOML), POLYPI_* environment variables and finally flags. By default polypi
// prints the classic 3..384 doubling table, writes convergence.png and the
// polygons_6.png, polygons_12.png and polygons_24.png figures into the
// current directory.
//
// Exit status is 0 when the estimates were computed, even if some artifacts
// could not be written; 1 for invalid configuration or side counts; 2 for
// command-line usage errors.
package main
