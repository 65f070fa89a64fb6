// Package polypi approximates π with the perimeters of regular polygons.
//
// A polygon with n sides drawn inside a circle of unit diameter has a
// perimeter slightly shorter than π; one drawn around the same circle has a
// perimeter slightly longer. Doubling n tightens both bounds quadratically,
// which is how Archimedes bracketed π between 3 10/71 and 3 1/7 with 96 sides.
//
// # Core Features
//
//   - Inscribed (n·sin(π/n)) and circumscribed (n·tan(π/n)) estimators
//   - Atomic series evaluation over any list of side counts
//   - Intervals, error summaries and convergence order analysis
//   - Compact binary archives with Gorilla encoding and optional compression
//   - Console table, convergence chart, polygon figures and JSON reports
//
// # Basic Usage
//
// Single estimates:
//
//	lower, _ := polypi.Inscribed(96)     // 3.1410319509
//	upper, _ := polypi.Circumscribed(96) // 3.1427145996
//
// The classic doubling table, bracketing π:
//
//	s, _ := polypi.EvaluateTable(polypi.ModeBoth)
//	intervals, _ := s.Intervals()
//	for _, iv := range intervals {
//	    fmt.Println(iv.Sides, iv) // 384 [3.141558, 3.141663]
//	}
//
// Storing a series:
//
//	data, _ := polypi.Archive(s)
//	restored, _ := polypi.Unarchive(data)
//
// # Package Layout
//
//   - estimator: the two polygon formulas and polygon geometry
//   - series: evaluation of side-count sequences and their analysis
//   - archive: binary snapshot of a series
//   - compress, format: compression codecs and format identifiers
//   - report: renderers for tables, charts, figures and exports
//
// Side counts below 3 are rejected with ErrInvalidArgument; evaluation never
// returns partial results.
package polypi

import (
	"github.com/arloliu/polypi/archive"
	"github.com/arloliu/polypi/estimator"
	"github.com/arloliu/polypi/series"
)

// ErrInvalidArgument is returned for side counts that do not describe a polygon.
var ErrInvalidArgument = estimator.ErrInvalidArgument

// Mode selects which estimates a series holds.
type Mode = series.Mode

// Evaluation modes.
const (
	ModeInscribed     = series.ModeInscribed
	ModeCircumscribed = series.ModeCircumscribed
	ModeBoth          = series.ModeBoth
)

// Inscribed returns n·sin(π/n), a lower bound of π.
func Inscribed(sides int) (float64, error) {
	return estimator.Inscribed(sides)
}

// Circumscribed returns n·tan(π/n), an upper bound of π.
func Circumscribed(sides int) (float64, error) {
	return estimator.Circumscribed(sides)
}

// Bracket returns the interval [Inscribed(n), Circumscribed(n)] containing π.
func Bracket(sides int) (series.Interval, error) {
	lower, err := estimator.Inscribed(sides)
	if err != nil {
		return series.Interval{}, err
	}
	upper, err := estimator.Circumscribed(sides)
	if err != nil {
		return series.Interval{}, err
	}

	return series.Interval{Sides: sides, Lower: lower, Upper: upper}, nil
}

// Evaluate computes mode's estimates for every side count, in input order.
func Evaluate(sides []int, mode Mode, opts ...series.Option) (*series.Series, error) {
	return series.Evaluate(sides, mode, opts...)
}

// EvaluateTable evaluates the doubling sequence 3, 6, 12, ..., 384.
func EvaluateTable(mode Mode, opts ...series.Option) (*series.Series, error) {
	return series.Evaluate(series.TableSides(), mode, opts...)
}

// Archive encodes s with the default archive settings: Gorilla-encoded
// estimates and Zstd compression.
func Archive(s *series.Series, opts ...archive.Option) ([]byte, error) {
	return archive.Encode(s, opts...)
}

// Unarchive decodes data produced by Archive.
func Unarchive(data []byte) (*series.Series, error) {
	return archive.Decode(data)
}
