package series

import (
	"errors"
	"fmt"

	"github.com/arloliu/polypi/estimator"
	"github.com/arloliu/polypi/internal/options"
)

var (
	// ErrUnknownMode indicates a Mode value outside the defined set.
	ErrUnknownMode = errors.New("series: unknown evaluation mode")

	// ErrModeMismatch indicates an analysis that the series' mode cannot support.
	ErrModeMismatch = errors.New("series: operation not supported for this mode")

	// ErrInsufficientData indicates too few results for the requested analysis.
	ErrInsufficientData = errors.New("series: insufficient data")
)

// Evaluate runs the estimators selected by mode over sideCounts and returns
// the resulting series.
//
// Results follow the order of sideCounts; the input is never sorted. With
// ModeBoth every side count yields an inscribed result followed by a
// circumscribed one.
//
// All side counts are validated before any estimate is computed. An empty
// input or any entry below estimator.MinSides fails the whole call with an
// error wrapping estimator.ErrInvalidArgument and a nil series.
//
// Parameters:
//   - sideCounts: polygon side counts, expected in increasing order
//   - mode: which formulas to run
//   - opts: optional settings (WithReference, WithStrictOrdering)
//
// Returns:
//   - *Series: the complete result series
//   - error: validation or configuration error
//
// Example:
//
//	s, err := series.Evaluate([]int{3, 6, 12}, series.ModeInscribed)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(s.At(2).Estimate) // 3.1058285412...
func Evaluate(sideCounts []int, mode Mode, opts ...Option) (*Series, error) {
	cfg := defaultEvaluateConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	methods := mode.Methods()
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}

	if err := validateSideCounts(sideCounts, cfg.StrictOrdering); err != nil {
		return nil, err
	}

	estimators := make([]estimator.Estimator, len(methods))
	for i, m := range methods {
		est, err := estimator.ForMethod(m)
		if err != nil {
			return nil, err
		}
		estimators[i] = est
	}

	results := make([]Result, 0, len(sideCounts)*len(estimators))
	for _, n := range sideCounts {
		for _, est := range estimators {
			v, err := est.Estimate(n)
			if err != nil {
				return nil, err
			}
			results = append(results, newResult(n, est.Method(), v, cfg.Reference))
		}
	}

	return &Series{
		results:   results,
		mode:      mode,
		reference: cfg.Reference,
	}, nil
}

// validateSideCounts checks every entry before any computation starts.
func validateSideCounts(sideCounts []int, strict bool) error {
	if len(sideCounts) == 0 {
		return fmt.Errorf("%w: no side counts given", estimator.ErrInvalidArgument)
	}

	for i, n := range sideCounts {
		if err := estimator.Validate(n); err != nil {
			return fmt.Errorf("side count at index %d: %w", i, err)
		}
		if strict && i > 0 && n <= sideCounts[i-1] {
			return fmt.Errorf("%w: side counts must be strictly increasing, got %d after %d at index %d",
				estimator.ErrInvalidArgument, n, sideCounts[i-1], i)
		}
	}

	return nil
}

// Restore rebuilds a series from its columns, recomputing the error fields
// against reference. Decoders of exported series use it.
//
// The columns must have equal length, every side count must be valid, and every
// method must belong to mode. With ModeBoth the results must come in
// inscribed/circumscribed pairs sharing a side count.
func Restore(mode Mode, reference float64, sides []int, methods []estimator.Method, estimates []float64) (*Series, error) {
	cfg := defaultEvaluateConfig()
	if err := options.Apply(&cfg, WithReference(reference)); err != nil {
		return nil, err
	}

	modeMethods := mode.Methods()
	if len(modeMethods) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, mode)
	}

	if len(sides) != len(methods) || len(sides) != len(estimates) {
		return nil, fmt.Errorf("series: mismatched column lengths: %d sides, %d methods, %d estimates",
			len(sides), len(methods), len(estimates))
	}
	if len(sides)%len(modeMethods) != 0 {
		return nil, fmt.Errorf("series: %d results do not form complete %s groups", len(sides), mode)
	}

	results := make([]Result, len(sides))
	for i := range sides {
		if err := estimator.Validate(sides[i]); err != nil {
			return nil, fmt.Errorf("side count at index %d: %w", i, err)
		}

		want := modeMethods[i%len(modeMethods)]
		if methods[i] != want {
			return nil, fmt.Errorf("series: result %d has method %s, expected %s", i, methods[i], want)
		}
		if i%len(modeMethods) != 0 && sides[i] != sides[i-1] {
			return nil, fmt.Errorf("series: result %d breaks the %s pair for %d sides", i, mode, sides[i-1])
		}

		results[i] = newResult(sides[i], methods[i], estimates[i], cfg.Reference)
	}

	return &Series{
		results:   results,
		mode:      mode,
		reference: cfg.Reference,
	}, nil
}
