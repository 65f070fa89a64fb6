package estimator

import (
	"fmt"
	"math"
)

const (
	// Diameter of the reference circle. With a unit diameter the perimeter is the π estimate.
	Diameter = 1.0
	// Radius of the reference circle.
	Radius = Diameter / 2
)

// Point is a vertex position relative to the circle's center.
type Point struct {
	X, Y float64
}

// SideLength returns the length of one side of the polygon built by method.
func SideLength(method Method, sides int) (float64, error) {
	if err := Validate(sides); err != nil {
		return 0, err
	}

	half := math.Pi / float64(sides)
	switch method {
	case MethodInscribed:
		return 2 * Radius * math.Sin(half), nil
	case MethodCircumscribed:
		return 2 * Radius * math.Tan(half), nil
	default:
		return 0, fmt.Errorf("estimator: unknown method %d", int(method))
	}
}

// VertexRadius returns the distance from the circle's center to each vertex.
//
// Inscribed vertices sit on the circle. Circumscribed vertices sit at
// Radius/cos(π/n) so that every side touches the circle at its midpoint.
func VertexRadius(method Method, sides int) (float64, error) {
	if err := Validate(sides); err != nil {
		return 0, err
	}

	switch method {
	case MethodInscribed:
		return Radius, nil
	case MethodCircumscribed:
		return Radius / math.Cos(math.Pi/float64(sides)), nil
	default:
		return 0, fmt.Errorf("estimator: unknown method %d", int(method))
	}
}

// Vertices returns the polygon's vertices in counter-clockwise order starting
// at angle 0. The polygon is closed implicitly; the first vertex is not repeated.
func Vertices(method Method, sides int) ([]Point, error) {
	r, err := VertexRadius(method, sides)
	if err != nil {
		return nil, err
	}

	step := 2 * math.Pi / float64(sides)
	points := make([]Point, sides)
	for i := range sides {
		angle := step * float64(i)
		points[i] = Point{X: r * math.Cos(angle), Y: r * math.Sin(angle)}
	}

	return points, nil
}
