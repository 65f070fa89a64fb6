package estimator_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/arloliu/polypi/estimator"
)

// ExampleInscribed shows the lower bound for a hexagon, which is exactly three diameters.
func ExampleInscribed() {
	pi, err := estimator.Inscribed(6)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.10f\n", pi)

	// Output:
	// 3.0000000000
}

// ExampleCircumscribed brackets π with Archimedes' 96-gon.
func ExampleCircumscribed() {
	lower, _ := estimator.Inscribed(96)
	upper, _ := estimator.Circumscribed(96)
	fmt.Printf("%.6f < π < %.6f\n", lower, upper)

	// Output:
	// 3.141032 < π < 3.142715
}

// ExampleNewEstimator selects a formula by name.
func ExampleNewEstimator() {
	est, err := estimator.NewEstimator("circumscribed")
	if err != nil {
		log.Fatal(err)
	}

	for _, n := range []int{3, 6, 12} {
		v, _ := est.Estimate(n)
		fmt.Printf("%s(%d) = %.10f\n", est.Method(), n, v)
	}

	_, err = est.Estimate(2)
	fmt.Println(errors.Is(err, estimator.ErrInvalidArgument))

	// Output:
	// circumscribed(3) = 5.1961524227
	// circumscribed(6) = 3.4641016151
	// circumscribed(12) = 3.2153903092
	// true
}
