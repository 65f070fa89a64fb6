package report

import (
	"context"
	"fmt"
	"os"

	"github.com/arloliu/polypi/series"
	"github.com/bytedance/sonic"
)

// Document is the JSON form of a table series.
type Document struct {
	RunID     string           `json:"run_id,omitempty"`
	Mode      string           `json:"mode"`
	Reference float64          `json:"reference"`
	Results   []ResultRecord   `json:"results"`
	Intervals []IntervalRecord `json:"intervals,omitempty"`
	Summaries []SummaryRecord  `json:"summaries"`
}

// ResultRecord is one evaluated estimate.
type ResultRecord struct {
	Sides                int     `json:"sides"`
	Method               string  `json:"method"`
	Estimate             float64 `json:"estimate"`
	Error                float64 `json:"error"`
	RelativeErrorPercent float64 `json:"relative_error_percent"`
}

// IntervalRecord brackets π for one side count.
type IntervalRecord struct {
	Sides int     `json:"sides"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Width float64 `json:"width"`
}

// SummaryRecord aggregates the errors of one method.
type SummaryRecord struct {
	Method           string  `json:"method"`
	Count            int     `json:"count"`
	MeanError        float64 `json:"mean_error"`
	MinError         float64 `json:"min_error"`
	MaxError         float64 `json:"max_error"`
	ConvergenceOrder float64 `json:"convergence_order,omitempty"`
}

// NewDocument converts s into its JSON document.
func NewDocument(s *series.Series) (*Document, error) {
	if s == nil {
		return nil, ErrNoSeries
	}

	doc := &Document{
		Mode:      s.Mode().String(),
		Reference: s.Reference(),
		Results:   make([]ResultRecord, 0, s.Len()),
	}
	for _, r := range s.All() {
		doc.Results = append(doc.Results, ResultRecord{
			Sides:                r.Sides,
			Method:               r.Method.String(),
			Estimate:             r.Estimate,
			Error:                r.Error,
			RelativeErrorPercent: r.RelativeErrorPercent,
		})
	}

	if s.Mode() == series.ModeBoth {
		intervals, err := s.Intervals()
		if err != nil {
			return nil, err
		}
		for _, iv := range intervals {
			doc.Intervals = append(doc.Intervals, IntervalRecord{
				Sides: iv.Sides, Lower: iv.Lower, Upper: iv.Upper, Width: iv.Width(),
			})
		}
	}

	for _, m := range s.Mode().Methods() {
		sum, err := s.Summarize(m)
		if err != nil {
			continue
		}
		rec := SummaryRecord{
			Method:    m.String(),
			Count:     sum.Count,
			MeanError: sum.MeanError,
			MinError:  sum.MinError,
			MaxError:  sum.MaxError,
		}
		if order, err := s.ConvergenceOrder(m); err == nil {
			rec.ConvergenceOrder = order
		}
		doc.Summaries = append(doc.Summaries, rec)
	}

	return doc, nil
}

// JSONRenderer writes the table series as an indented JSON document.
type JSONRenderer struct {
	Path string
	// RunID is copied into the document when set.
	RunID string
}

var _ Renderer = (*JSONRenderer)(nil)

// NewJSONRenderer creates a JSON renderer writing to path.
func NewJSONRenderer(path, runID string) *JSONRenderer {
	return &JSONRenderer{Path: path, RunID: runID}
}

// Name implements Renderer.
func (r *JSONRenderer) Name() string { return "json" }

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, in Input) error {
	doc, err := NewDocument(in.Table)
	if err != nil {
		return err
	}
	doc.RunID = r.RunID

	data, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(r.Path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.Path, err)
	}

	return nil
}
