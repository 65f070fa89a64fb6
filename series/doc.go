// Package series evaluates the π estimators over an ordered list of polygon
// side counts and derives error metrics for each estimate.
//
// A Series is produced fresh by every call to Evaluate and is never mutated
// afterwards. Results appear in the order the side counts were supplied; with
// ModeBoth each side count contributes an inscribed result followed by a
// circumscribed one.
//
// # Basic Usage
//
//	s, err := series.Evaluate(series.TableSides(), series.ModeBoth)
//	if err != nil {
//	    return err // wraps estimator.ErrInvalidArgument
//	}
//
//	for _, r := range s.Results() {
//	    fmt.Printf("%4d %-13s %.10f  err=%.2e\n", r.Sides, r.Method, r.Estimate, r.Error)
//	}
//
// # Failure Semantics
//
// Every side count is validated before any estimate is computed. A single
// invalid entry fails the whole call and no partial series is returned, so a
// reporting layer can never observe a truncated result.
//
// Ordering is the caller's responsibility: Evaluate does not sort its input.
// WithStrictOrdering turns a non-increasing sequence into an error instead.
//
// # Analysis
//
// Beyond the raw records a Series offers the bracketing interval for each side
// count (ModeBoth), per-method error summaries, and an estimate of the order of
// convergence obtained by fitting error ≈ a·n^b on a log–log scale. Both
// formulas converge quadratically, so b is close to -2.
package series
