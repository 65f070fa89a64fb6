package series

import (
	"fmt"
	"math"

	"github.com/arloliu/polypi/estimator"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Interval is the bracket [Lower, Upper] around π given by the inscribed and
// circumscribed polygons with the same side count.
type Interval struct {
	Sides int
	Lower float64
	Upper float64
}

// Width returns Upper - Lower, the largest possible error of either bound.
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Contains reports whether v lies within the closed interval.
func (iv Interval) Contains(v float64) bool {
	return iv.Lower <= v && v <= iv.Upper
}

// String formats the interval the way the console table prints it.
func (iv Interval) String() string {
	return fmt.Sprintf("[%.6f, %.6f]", iv.Lower, iv.Upper)
}

// Intervals pairs the inscribed and circumscribed estimates of every side
// count. Only a ModeBoth series carries both bounds; other modes return
// ErrModeMismatch.
func (s *Series) Intervals() ([]Interval, error) {
	if s.mode != ModeBoth {
		return nil, fmt.Errorf("%w: intervals need mode %s, series has %s", ErrModeMismatch, ModeBoth, s.mode)
	}

	out := make([]Interval, 0, len(s.results)/2)
	for i := 0; i+1 < len(s.results); i += 2 {
		lo, hi := s.results[i], s.results[i+1]
		out = append(out, Interval{Sides: lo.Sides, Lower: lo.Estimate, Upper: hi.Estimate})
	}

	return out, nil
}

// Best returns the last result produced by method, which for increasing input
// is the most accurate one. ok is false when the series holds no such result.
func (s *Series) Best(method estimator.Method) (r Result, ok bool) {
	for i := len(s.results) - 1; i >= 0; i-- {
		if s.results[i].Method == method {
			return s.results[i], true
		}
	}

	return Result{}, false
}

// Summary aggregates the error metrics of one method's results.
type Summary struct {
	Method estimator.Method
	// Count is the number of results summarized.
	Count int
	// MeanError, MinError and MaxError describe the absolute errors.
	MeanError float64
	MinError  float64
	MaxError  float64
	// MeanRelativeErrorPercent is the mean of the relative errors.
	MeanRelativeErrorPercent float64
}

// Summarize computes error statistics over the results produced by method.
// Returns ErrInsufficientData when the series has no result for method.
func (s *Series) Summarize(method estimator.Method) (Summary, error) {
	abs, rel := s.errorColumns(method)
	if len(abs) == 0 {
		return Summary{}, fmt.Errorf("%w: no %s results", ErrInsufficientData, method)
	}

	return Summary{
		Method:                   method,
		Count:                    len(abs),
		MeanError:                stat.Mean(abs, nil),
		MinError:                 floats.Min(abs),
		MaxError:                 floats.Max(abs),
		MeanRelativeErrorPercent: stat.Mean(rel, nil),
	}, nil
}

// ConvergenceOrder estimates b in error ≈ a·n^b for method's results.
//
// The fit is a least-squares line through (ln n, ln error), the same power
// model transform used for curve fitting elsewhere. Both polygon formulas have
// error proportional to 1/n², so the returned order is close to -2.
//
// Results with zero error carry no slope information and are skipped. At least
// two points with distinct side counts are required; otherwise
// ErrInsufficientData is returned.
func (s *Series) ConvergenceOrder(method estimator.Method) (float64, error) {
	var xs, ys []float64
	for _, r := range s.results {
		if r.Method != method || r.Error <= 0 {
			continue
		}
		xs = append(xs, math.Log(float64(r.Sides)))
		ys = append(ys, math.Log(r.Error))
	}

	if len(xs) < 2 || floats.Max(xs) == floats.Min(xs) {
		return 0, fmt.Errorf("%w: convergence order needs two distinct %s side counts", ErrInsufficientData, method)
	}

	_, beta := stat.LinearRegression(xs, ys, nil, false)

	return beta, nil
}

func (s *Series) errorColumns(method estimator.Method) (abs, rel []float64) {
	for _, r := range s.results {
		if r.Method == method {
			abs = append(abs, r.Error)
			rel = append(rel, r.RelativeErrorPercent)
		}
	}

	return abs, rel
}
