package estimator

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// MinSides is the smallest side count that forms a polygon.
const MinSides = 3

// ErrInvalidArgument is returned when a side count is below MinSides.
var ErrInvalidArgument = errors.New("estimator: side count must be at least 3")

// Method identifies the polygon construction used to estimate π.
type Method int

const (
	// MethodInscribed places the polygon's vertices on the circle: π ≈ n·sin(π/n).
	MethodInscribed Method = iota
	// MethodCircumscribed makes the polygon's sides tangent to the circle: π ≈ n·tan(π/n).
	MethodCircumscribed
)

// methodNames maps Method to its string representation.
var methodNames = map[Method]string{
	MethodInscribed:     "inscribed",
	MethodCircumscribed: "circumscribed",
}

// methodFromString maps string names to Method.
var methodFromString = map[string]Method{
	"inscribed":     MethodInscribed,
	"circumscribed": MethodCircumscribed,
}

// String returns the string representation of the method.
func (m Method) String() string {
	if name, exists := methodNames[m]; exists {
		return name
	}

	return "unknown"
}

// Valid reports whether m is one of the defined methods.
func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// MethodFromString returns the Method for a given name (case-insensitive).
// Returns Method(-1) for unknown names.
func MethodFromString(name string) Method {
	if method, exists := methodFromString[strings.ToLower(strings.TrimSpace(name))]; exists {
		return method
	}

	return Method(-1)
}

// Methods returns all defined methods in declaration order.
func Methods() []Method {
	return []Method{MethodInscribed, MethodCircumscribed}
}

// Validate checks that sides describes a polygon.
//
// The returned error wraps ErrInvalidArgument and carries the rejected value.
func Validate(sides int) error {
	if sides < MinSides {
		return fmt.Errorf("%w: got %d", ErrInvalidArgument, sides)
	}

	return nil
}

// Inscribed estimates π from the perimeter of a regular polygon with the given
// number of sides inscribed in a circle of diameter 1.
//
// Each side is a chord subtending the central angle 2π/n, so its length is
// 2·R·sin(π/n) = sin(π/n) for R = 0.5 and the perimeter is n·sin(π/n).
// The result is strictly less than π and increases with sides. The increase
// is strict only while float64 can resolve it: from roughly 2·10⁵ sides on,
// consecutive side counts may round to the same value, so for large n the
// sequence is only non-decreasing (Inscribed(198414) == Inscribed(198413)).
// Small n carry rounding too: Inscribed(6) is 2.9999999999999996, not 3.
//
// Returns an error wrapping ErrInvalidArgument when sides < MinSides.
func Inscribed(sides int) (float64, error) {
	if err := Validate(sides); err != nil {
		return 0, err
	}

	return inscribed(sides), nil
}

// Circumscribed estimates π from the perimeter of a regular polygon with the
// given number of sides circumscribed about a circle of diameter 1.
//
// Half of each side is R·tan(π/n), so a full side is tan(π/n) for R = 0.5 and
// the perimeter is n·tan(π/n). The result is strictly greater than π and
// decreases with sides. As with Inscribed, the decrease is strict only while
// float64 can resolve it; for large n consecutive side counts may round to
// the same value. tan(π/n) diverges as n approaches 2, which the MinSides
// check keeps out of reach.
//
// Returns an error wrapping ErrInvalidArgument when sides < MinSides.
func Circumscribed(sides int) (float64, error) {
	if err := Validate(sides); err != nil {
		return 0, err
	}

	return circumscribed(sides), nil
}

// Estimate dispatches to the formula selected by method.
func Estimate(method Method, sides int) (float64, error) {
	est, err := ForMethod(method)
	if err != nil {
		return 0, err
	}

	return est.Estimate(sides)
}

func inscribed(sides int) float64 {
	n := float64(sides)
	return n * math.Sin(math.Pi/n)
}

func circumscribed(sides int) float64 {
	n := float64(sides)
	return n * math.Tan(math.Pi/n)
}

// Estimator is a π estimation strategy.
type Estimator interface {
	// Estimate returns the π approximation for a polygon with the given side count.
	Estimate(sides int) (float64, error)
	// Method returns the construction this estimator implements.
	Method() Method
}

// InscribedEstimator implements Estimator with the inscribed polygon formula.
type InscribedEstimator struct{}

var _ Estimator = InscribedEstimator{}

// Estimate returns n·sin(π/n).
func (InscribedEstimator) Estimate(sides int) (float64, error) {
	return Inscribed(sides)
}

// Method returns MethodInscribed.
func (InscribedEstimator) Method() Method {
	return MethodInscribed
}

// CircumscribedEstimator implements Estimator with the circumscribed polygon formula.
type CircumscribedEstimator struct{}

var _ Estimator = CircumscribedEstimator{}

// Estimate returns n·tan(π/n).
func (CircumscribedEstimator) Estimate(sides int) (float64, error) {
	return Circumscribed(sides)
}

// Method returns MethodCircumscribed.
func (CircumscribedEstimator) Method() Method {
	return MethodCircumscribed
}

// ForMethod returns the Estimator implementing method.
func ForMethod(method Method) (Estimator, error) {
	switch method {
	case MethodInscribed:
		return InscribedEstimator{}, nil
	case MethodCircumscribed:
		return CircumscribedEstimator{}, nil
	default:
		return nil, fmt.Errorf("estimator: unknown method %d", int(method))
	}
}

// NewEstimator creates an estimator by method name.
//
// Supported names (case-insensitive): "inscribed", "circumscribed".
//
// Example:
//
//	est, err := NewEstimator("inscribed")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pi, _ := est.Estimate(96) // 3.14103...
func NewEstimator(name string) (Estimator, error) {
	method := MethodFromString(name)
	if method == Method(-1) {
		supported := make([]string, 0, len(methodNames))
		for _, n := range methodNames {
			supported = append(supported, n)
		}
		slices.Sort(supported)

		return nil, fmt.Errorf("estimator: unknown method %q. Supported methods: %s", name, strings.Join(supported, ", "))
	}

	return ForMethod(method)
}
