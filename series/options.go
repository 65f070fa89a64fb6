package series

import (
	"fmt"
	"math"

	"github.com/arloliu/polypi/internal/options"
)

// EvaluateConfig holds the settings of one evaluation run.
type EvaluateConfig struct {
	// Reference is the π value errors are measured against.
	Reference float64
	// StrictOrdering rejects side counts that are not strictly increasing.
	StrictOrdering bool
}

// defaultEvaluateConfig returns the default config (math.Pi reference, no ordering check).
func defaultEvaluateConfig() EvaluateConfig {
	return EvaluateConfig{
		Reference: math.Pi,
	}
}

// Option is a functional option for EvaluateConfig.
type Option = options.Option[*EvaluateConfig]

// WithReference overrides the π reference used for error metrics.
// The value must be finite and positive.
func WithReference(pi float64) Option {
	return options.New(func(cfg *EvaluateConfig) error {
		if math.IsNaN(pi) || math.IsInf(pi, 0) || pi <= 0 {
			return fmt.Errorf("series: invalid reference value %v", pi)
		}
		cfg.Reference = pi

		return nil
	})
}

// WithStrictOrdering makes Evaluate reject side counts that are not strictly
// increasing instead of trusting the caller's ordering.
func WithStrictOrdering() Option {
	return options.NoError(func(cfg *EvaluateConfig) {
		cfg.StrictOrdering = true
	})
}
