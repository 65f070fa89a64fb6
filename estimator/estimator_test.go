package estimator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkUpTo = 2000

func TestInscribedKnownValues(t *testing.T) {
	tests := []struct {
		sides    int
		expected float64
	}{
		{3, 2.5980762114},  // 3 · sin(60°)
		{6, 3.0},           // 6 · sin(30°), see TestInscribedHexagonRounding
		{12, 3.1058285412}, // 12 · sin(15°)
		{96, 3.1410319509}, // Archimedes' lower bound
	}

	for _, tt := range tests {
		got, err := Inscribed(tt.sides)
		require.NoError(t, err)
		assert.InDelta(t, tt.expected, got, 1e-10, "sides=%d", tt.sides)
	}
}

func TestInscribedHexagonRounding(t *testing.T) {
	// sin(π/6) rounds to 0.49999999999999994, so the hexagon lands one ulp
	// below 3.
	got, err := Inscribed(6)
	require.NoError(t, err)
	assert.Equal(t, 2.9999999999999996, got)
	assert.Equal(t, math.Nextafter(3, 0), got)
}

func TestMonotonicityAtFloat64Resolution(t *testing.T) {
	prevIn, err := Inscribed(198_400)
	require.NoError(t, err)
	prevCirc, err := Circumscribed(198_400)
	require.NoError(t, err)

	for n := 198_401; n <= 198_430; n++ {
		in, _ := Inscribed(n)
		circ, _ := Circumscribed(n)
		assert.GreaterOrEqual(t, in, prevIn, "sides=%d", n)
		assert.LessOrEqual(t, circ, prevCirc, "sides=%d", n)
		assert.Less(t, in, math.Pi, "sides=%d", n)
		assert.Greater(t, circ, math.Pi, "sides=%d", n)
		prevIn, prevCirc = in, circ
	}

	// Neighbouring side counts this large can round to the same estimate.
	a, _ := Inscribed(198_413)
	b, _ := Inscribed(198_414)
	assert.Equal(t, a, b)
}

func TestCircumscribedKnownValues(t *testing.T) {
	tests := []struct {
		sides    int
		expected float64
	}{
		{3, 5.1961524227},  // 3 · tan(60°)
		{6, 3.4641016151},  // 6 · tan(30°)
		{12, 3.2153903092}, // 12 · tan(15°)
		{96, 3.1427145996}, // Archimedes' upper bound
	}

	for _, tt := range tests {
		got, err := Circumscribed(tt.sides)
		require.NoError(t, err)
		assert.InDelta(t, tt.expected, got, 1e-10, "sides=%d", tt.sides)
	}
}

func TestEstimatesBracketPi(t *testing.T) {
	for n := MinSides; n <= checkUpTo; n++ {
		lower, err := Inscribed(n)
		require.NoError(t, err)
		upper, err := Circumscribed(n)
		require.NoError(t, err)

		if !(lower < math.Pi && math.Pi < upper) {
			t.Fatalf("sides=%d: expected %v < π < %v", n, lower, upper)
		}
	}
}

func TestEstimatesAreStrictlyMonotonic(t *testing.T) {
	prevLower, _ := Inscribed(MinSides)
	prevUpper, _ := Circumscribed(MinSides)

	for n := MinSides + 1; n <= checkUpTo; n++ {
		lower, _ := Inscribed(n)
		upper, _ := Circumscribed(n)

		if lower <= prevLower {
			t.Fatalf("inscribed not increasing at sides=%d: %v <= %v", n, lower, prevLower)
		}
		if upper >= prevUpper {
			t.Fatalf("circumscribed not decreasing at sides=%d: %v >= %v", n, upper, prevUpper)
		}
		prevLower, prevUpper = lower, upper
	}
}

func TestRejectsDegeneratePolygons(t *testing.T) {
	for _, n := range []int{2, 1, 0, -1, -384, math.MinInt} {
		_, err := Inscribed(n)
		require.ErrorIs(t, err, ErrInvalidArgument, "inscribed sides=%d", n)

		_, err = Circumscribed(n)
		require.ErrorIs(t, err, ErrInvalidArgument, "circumscribed sides=%d", n)
	}
}

func TestValidateMessageCarriesValue(t *testing.T) {
	err := Validate(2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 2")
	assert.NoError(t, Validate(MinSides))
}

func TestConvergence(t *testing.T) {
	lower, err := Inscribed(384)
	require.NoError(t, err)
	upper, err := Circumscribed(384)
	require.NoError(t, err)

	// The gap shrinks as π³/(2n²): ~1.05e-4 at 384 sides, ~2.6e-5 at 768.
	assert.InDelta(t, 1.0514e-4, upper-lower, 1e-7)
	assert.InDelta(t, math.Pi, lower, 1e-4)
	assert.InDelta(t, math.Pi, upper, 1e-4)

	lower, _ = Inscribed(768)
	upper, _ = Circumscribed(768)
	assert.Less(t, upper-lower, 1e-4)
	assert.InDelta(t, 3.14159265, lower, 1e-5)

	lower, _ = Inscribed(100_000)
	upper, _ = Circumscribed(100_000)
	assert.Less(t, upper-lower, 1e-8)
}

func TestMethodStrings(t *testing.T) {
	assert.Equal(t, "inscribed", MethodInscribed.String())
	assert.Equal(t, "circumscribed", MethodCircumscribed.String())
	assert.Equal(t, "unknown", Method(42).String())

	assert.Equal(t, MethodInscribed, MethodFromString("Inscribed"))
	assert.Equal(t, MethodCircumscribed, MethodFromString(" CIRCUMSCRIBED "))
	assert.Equal(t, Method(-1), MethodFromString("hexagon"))

	assert.True(t, MethodInscribed.Valid())
	assert.False(t, Method(-1).Valid())
	assert.Equal(t, []Method{MethodInscribed, MethodCircumscribed}, Methods())
}

func TestEstimatorImplementations(t *testing.T) {
	tests := []struct {
		name   string
		est    Estimator
		method Method
		direct func(int) (float64, error)
	}{
		{"InscribedEstimator", InscribedEstimator{}, MethodInscribed, Inscribed},
		{"CircumscribedEstimator", CircumscribedEstimator{}, MethodCircumscribed, Circumscribed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.method, tt.est.Method())

			for _, n := range []int{3, 7, 48, 1000} {
				want, err := tt.direct(n)
				require.NoError(t, err)
				got, err := tt.est.Estimate(n)
				require.NoError(t, err)
				require.Equal(t, want, got)

				got, err = Estimate(tt.method, n)
				require.NoError(t, err)
				require.Equal(t, want, got)
			}

			_, err := tt.est.Estimate(2)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNewEstimator(t *testing.T) {
	est, err := NewEstimator("circumscribed")
	require.NoError(t, err)
	require.Equal(t, MethodCircumscribed, est.Method())

	est, err = NewEstimator("INSCRIBED")
	require.NoError(t, err)
	require.Equal(t, MethodInscribed, est.Method())

	_, err = NewEstimator("monte-carlo")
	require.Error(t, err)
	require.Contains(t, err.Error(), "circumscribed, inscribed")

	_, err = ForMethod(Method(7))
	require.Error(t, err)
	_, err = Estimate(Method(7), 6)
	require.Error(t, err)
}
