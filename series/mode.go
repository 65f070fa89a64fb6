package series

import (
	"slices"
	"strings"

	"github.com/arloliu/polypi/estimator"
)

// Mode selects which estimators an evaluation runs.
type Mode uint8

const (
	// ModeInscribed evaluates only the inscribed polygon formula.
	ModeInscribed Mode = iota + 1
	// ModeCircumscribed evaluates only the circumscribed polygon formula.
	ModeCircumscribed
	// ModeBoth evaluates both formulas for every side count.
	ModeBoth
)

var modeNames = map[Mode]string{
	ModeInscribed:     "inscribed",
	ModeCircumscribed: "circumscribed",
	ModeBoth:          "both",
}

var modeFromString = map[string]Mode{
	"inscribed":     ModeInscribed,
	"circumscribed": ModeCircumscribed,
	"both":          ModeBoth,
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}

	return "unknown"
}

// ModeFromString returns the Mode for a given name (case-insensitive).
// Returns 0 for unknown names.
func ModeFromString(name string) Mode {
	return modeFromString[strings.ToLower(strings.TrimSpace(name))]
}

// Methods returns the estimator methods run for the mode, in result order.
// Returns nil for an unknown mode.
func (m Mode) Methods() []estimator.Method {
	switch m {
	case ModeInscribed:
		return []estimator.Method{estimator.MethodInscribed}
	case ModeCircumscribed:
		return []estimator.Method{estimator.MethodCircumscribed}
	case ModeBoth:
		return []estimator.Method{estimator.MethodInscribed, estimator.MethodCircumscribed}
	default:
		return nil
	}
}

// Includes reports whether the mode evaluates method.
func (m Mode) Includes(method estimator.Method) bool {
	return slices.Contains(m.Methods(), method)
}
