// Package estimator approximates π from the perimeter of a regular polygon drawn
// around a circle of diameter 1.
//
// Two closed-form methods are provided:
//
//   - Inscribed: vertices lie on the circle, each side is a chord of length
//     sin(π/n), so the perimeter n·sin(π/n) underestimates π.
//   - Circumscribed: sides are tangent to the circle, each side has length
//     tan(π/n), so the perimeter n·tan(π/n) overestimates π.
//
// Both estimates converge to π as n grows, from below and from above
// respectively. A polygon needs at least three sides; smaller side counts are
// rejected with ErrInvalidArgument.
//
// # Usage
//
//	lower, err := estimator.Inscribed(96)
//	if err != nil {
//	    return err
//	}
//	upper, _ := estimator.Circumscribed(96)
//	fmt.Printf("%.6f < π < %.6f\n", lower, upper)
//
// The Method enum and the Estimator interface let callers pick a formula at
// runtime without branching at every call site:
//
//	est, err := estimator.NewEstimator("circumscribed")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, _ := est.Estimate(384)
//
// All functions are pure and safe for concurrent use.
package estimator
