package series

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/polypi/estimator"
)

var tableSides = [...]int{3, 6, 12, 24, 48, 96, 192, 384}

var denseSides = [...]int{
	3, 4, 5, 6, 7, 8, 9, 10, 12, 14, 16, 18, 20,
	24, 28, 32, 36, 40, 48, 56, 64, 72, 80, 96,
	112, 128, 144, 160, 192, 224, 256, 288, 320, 384,
}

// TableSides returns the classic doubling sequence from the triangle to the
// 384-gon. It is the default input of the console table and the chart's
// highlighted points. Each call returns a fresh slice.
func TableSides() []int {
	return slices.Clone(tableSides[:])
}

// DenseSides returns the same range sampled more finely for smooth
// convergence curves. Each call returns a fresh slice.
func DenseSides() []int {
	return slices.Clone(denseSides[:])
}

// Doubling returns count side counts starting at start, each twice the previous
// one, as in Archimedes' construction (3, 6, 12, ...).
//
// start must be a valid side count and count positive. Doubling stops with an
// error before the values overflow int.
func Doubling(start, count int) ([]int, error) {
	if err := estimator.Validate(start); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", estimator.ErrInvalidArgument, count)
	}

	out := make([]int, count)
	n := start
	for i := range count {
		out[i] = n
		if i+1 < count {
			if n > math.MaxInt/2 {
				return nil, fmt.Errorf("%w: doubling %d overflows after %d steps", estimator.ErrInvalidArgument, start, i+1)
			}
			n *= 2
		}
	}

	return out, nil
}
