package series

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/arloliu/polypi/estimator"
)

// Result is the outcome of one estimator run for one side count.
//
// Results are handed out by value; a Series never exposes its backing storage.
type Result struct {
	// Sides is the polygon side count.
	Sides int
	// Method is the polygon construction that produced Estimate.
	Method estimator.Method
	// Estimate is the approximated value of π.
	Estimate float64
	// Error is |Estimate - reference|.
	Error float64
	// RelativeErrorPercent is 100 · Error / reference.
	RelativeErrorPercent float64
}

// String returns a compact representation of the result.
func (r Result) String() string {
	return fmt.Sprintf("Result{Sides: %d, Method: %s, Estimate: %.10f, Error: %.3e}",
		r.Sides, r.Method, r.Estimate, r.Error)
}

// newResult derives the error fields of an estimate against reference.
func newResult(sides int, method estimator.Method, estimate, reference float64) Result {
	errAbs := math.Abs(estimate - reference)

	return Result{
		Sides:                sides,
		Method:               method,
		Estimate:             estimate,
		Error:                errAbs,
		RelativeErrorPercent: 100 * errAbs / reference,
	}
}

// Series is an ordered, immutable sequence of results from one evaluation run.
type Series struct {
	results   []Result
	mode      Mode
	reference float64
}

// Mode returns the evaluation mode that produced the series.
func (s *Series) Mode() Mode {
	return s.mode
}

// Reference returns the π reference value the errors were computed against.
func (s *Series) Reference() float64 {
	return s.reference
}

// Len returns the number of results.
func (s *Series) Len() int {
	return len(s.results)
}

// At returns the i-th result. It panics if i is out of range.
func (s *Series) At(i int) Result {
	return s.results[i]
}

// All returns an iterator over (index, result) pairs in series order.
func (s *Series) All() iter.Seq2[int, Result] {
	return func(yield func(int, Result) bool) {
		for i, r := range s.results {
			if !yield(i, r) {
				return
			}
		}
	}
}

// Results returns a copy of all results in series order.
func (s *Series) Results() []Result {
	return slices.Clone(s.results)
}

// ByMethod returns the results produced by method, in series order.
func (s *Series) ByMethod(method estimator.Method) []Result {
	out := make([]Result, 0, len(s.results))
	for _, r := range s.results {
		if r.Method == method {
			out = append(out, r)
		}
	}

	return out
}

// Sides returns the evaluated side counts in input order. With ModeBoth each
// side count appears once even though it has two results.
func (s *Series) Sides() []int {
	perSide := len(s.mode.Methods())
	if perSide == 0 {
		perSide = 1
	}

	sides := make([]int, 0, len(s.results)/perSide)
	for i := 0; i < len(s.results); i += perSide {
		sides = append(sides, s.results[i].Sides)
	}

	return sides
}

// Estimates returns the estimate column for method, in series order.
func (s *Series) Estimates(method estimator.Method) []float64 {
	out := make([]float64, 0, len(s.results))
	for _, r := range s.results {
		if r.Method == method {
			out = append(out, r.Estimate)
		}
	}

	return out
}

// String returns a short summary of the series.
func (s *Series) String() string {
	return fmt.Sprintf("Series{Mode: %s, Results: %d, Reference: %.15f}", s.mode, len(s.results), s.reference)
}
