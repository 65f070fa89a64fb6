package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arloliu/polypi/estimator"
	"github.com/arloliu/polypi/series"
)

const ruleWidth = 85

// TableRenderer prints the table series and a final analysis as aligned text.
type TableRenderer struct {
	w io.Writer
}

var _ Renderer = (*TableRenderer)(nil)

// NewTableRenderer creates a table renderer writing to w.
func NewTableRenderer(w io.Writer) *TableRenderer {
	return &TableRenderer{w: w}
}

// Name implements Renderer.
func (r *TableRenderer) Name() string { return "table" }

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, in Input) error {
	s := in.Table
	if s == nil || s.Len() == 0 {
		return ErrNoSeries
	}

	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintln(&b, "Polygon approximation of π")
	fmt.Fprintln(&b, rule)

	tw := tabwriter.NewWriter(&b, 0, 0, 3, ' ', tabwriter.AlignRight)
	var err error
	if s.Mode() == series.ModeBoth {
		err = writeIntervalRows(tw, s)
	} else {
		writeEstimateRows(tw, s)
	}
	if err != nil {
		return err
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(&b, rule)
	writeAnalysis(&b, s)

	_, err = io.WriteString(r.w, b.String())

	return err
}

func writeIntervalRows(tw io.Writer, s *series.Series) error {
	intervals, err := s.Intervals()
	if err != nil {
		return err
	}

	fmt.Fprintln(tw, "Sides\tInscribed\tCircumscribed\tReference\tInterval\t")
	for _, iv := range intervals {
		fmt.Fprintf(tw, "%d\t%.10f\t%.10f\t%.10f\t%s\t\n",
			iv.Sides, iv.Lower, iv.Upper, s.Reference(), iv)
	}

	return nil
}

func writeEstimateRows(tw io.Writer, s *series.Series) {
	fmt.Fprintln(tw, "Sides\tEstimate\tReference\tError\tRel %\t")
	for _, r := range s.All() {
		fmt.Fprintf(tw, "%d\t%.10f\t%.10f\t%.3e\t%.6f\t\n",
			r.Sides, r.Estimate, s.Reference(), r.Error, r.RelativeErrorPercent)
	}
}

func writeAnalysis(w io.Writer, s *series.Series) {
	fmt.Fprintln(w, "Final analysis:")

	methods := s.Mode().Methods()
	for _, m := range methods {
		if best, ok := s.Best(m); ok {
			fmt.Fprintf(w, "  Best %s estimate (%d sides): %.10f\n", m, best.Sides, best.Estimate)
		}
	}
	fmt.Fprintf(w, "  Reference π: %.10f\n", s.Reference())

	if s.Mode() == series.ModeBoth {
		lo, okLo := s.Best(estimator.MethodInscribed)
		hi, okHi := s.Best(estimator.MethodCircumscribed)
		if okLo && okHi {
			fmt.Fprintf(w, "  π lies within [%.10f, %.10f]\n", lo.Estimate, hi.Estimate)
			fmt.Fprintf(w, "  Max error: %.2e\n", hi.Estimate-lo.Estimate)
		}
	} else if len(methods) == 1 {
		if best, ok := s.Best(methods[0]); ok {
			fmt.Fprintf(w, "  Error: %.2e (%.6f%%)\n", best.Error, best.RelativeErrorPercent)
		}
	}

	for _, m := range methods {
		if order, err := s.ConvergenceOrder(m); err == nil {
			fmt.Fprintf(w, "  Convergence order (%s): %.2f\n", m, order)
		}
	}
}
