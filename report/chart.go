package report

import (
	"context"
	"fmt"
	"image/color"
	"strconv"

	"github.com/arloliu/polypi/estimator"
	"github.com/arloliu/polypi/series"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default chart geometry and visible estimate range.
const (
	DefaultChartWidth  = 14 * vg.Inch
	DefaultChartHeight = 8 * vg.Inch

	chartYMin = 2.5
	chartYMax = 4.0
)

var (
	inscribedColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	circumscribedColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	referenceColor     = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	bandColor          = color.NRGBA{R: 128, G: 128, B: 128, A: 56}
)

func methodColor(m estimator.Method) color.Color {
	if m == estimator.MethodCircumscribed {
		return circumscribedColor
	}

	return inscribedColor
}

// ChartRenderer draws the convergence of the estimates towards π.
//
// The x axis is logarithmic with a tick per table side count. Detail series
// are drawn as lines, table results as annotated points, the reference as a
// dashed line, and in both mode the gap between the bounds is shaded.
// The image format follows the file extension (png, svg, pdf, ...).
type ChartRenderer struct {
	Path   string
	Width  vg.Length
	Height vg.Length
}

var _ Renderer = (*ChartRenderer)(nil)

// NewChartRenderer creates a chart renderer writing to path with the default size.
func NewChartRenderer(path string) *ChartRenderer {
	return &ChartRenderer{Path: path, Width: DefaultChartWidth, Height: DefaultChartHeight}
}

// Name implements Renderer.
func (r *ChartRenderer) Name() string { return "chart" }

// Render implements Renderer.
func (r *ChartRenderer) Render(ctx context.Context, in Input) error {
	p, err := Chart(in)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	w, h := r.Width, r.Height
	if w <= 0 || h <= 0 {
		w, h = DefaultChartWidth, DefaultChartHeight
	}

	if err := p.Save(w, h, r.Path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", r.Path, err)
	}

	return nil
}

// Chart builds the convergence plot for in without saving it.
func Chart(in Input) (*plot.Plot, error) {
	if in.Table == nil || in.Table.Len() == 0 {
		return nil, ErrNoSeries
	}
	curve := in.curve()

	p := plot.New()
	p.Title.Text = "Convergence of polygon perimeters to π"
	p.X.Label.Text = "Number of sides (log scale)"
	p.Y.Label.Text = "Estimate of π"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = sideTicks(in.Table.Sides())
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	methods := in.Table.Mode().Methods()
	if in.Table.Mode() == series.ModeBoth {
		band, err := gapBand(curve)
		if err != nil {
			return nil, err
		}
		p.Add(band)
		p.Legend.Add("Gap", band)
	}

	for _, m := range methods {
		if err := addMethod(p, m, curve, in.Table); err != nil {
			return nil, err
		}
	}

	ref := in.Table.Reference()
	refLine := plotter.NewFunction(func(float64) float64 { return ref })
	refLine.XMin, refLine.XMax = sideRange(curve.Sides(), in.Table.Sides())
	refLine.Color = referenceColor
	refLine.Width = vg.Points(1.5)
	refLine.Dashes = plotutil.Dashes(1)
	p.Add(refLine)
	p.Legend.Add(fmt.Sprintf("π = %.10f", ref), refLine)

	// Add widens the axes to fit every point, so the visible range is set last.
	p.Y.Min, p.Y.Max = chartYMin, chartYMax

	return p, nil
}

func addMethod(p *plot.Plot, m estimator.Method, curve, table *series.Series) error {
	c := methodColor(m)

	line, err := plotter.NewLine(methodXYs(curve, m))
	if err != nil {
		return fmt.Errorf("failed to build %s line: %w", m, err)
	}
	line.Color = c
	line.Width = vg.Points(2)

	points := visibleXYs(methodXYs(table, m))
	if points.Len() == 0 {
		p.Add(line)
		p.Legend.Add(m.String(), line)

		return nil
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return fmt.Errorf("failed to build %s points: %w", m, err)
	}
	scatter.Color = c
	scatter.Radius = vg.Points(3.5)
	scatter.Shape = draw.CircleGlyph{}

	labels, err := estimateLabels(points, c, m)
	if err != nil {
		return err
	}

	p.Add(line, scatter, labels)
	p.Legend.Add(m.String(), line, scatter)

	return nil
}

// estimateLabels annotates each point with its value, below the inscribed
// curve and above the circumscribed one.
func estimateLabels(points plotter.XYs, c color.Color, m estimator.Method) (*plotter.Labels, error) {
	names := make([]string, len(points))
	for i, pt := range points {
		names[i] = strconv.FormatFloat(pt.Y, 'f', 4, 64)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: names})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s labels: %w", m, err)
	}

	offset := vg.Points(8)
	if m == estimator.MethodInscribed {
		offset = -offset - vg.Points(8)
	}
	labels.Offset = vg.Point{Y: offset}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = c
		labels.TextStyle[i].XAlign = text.XCenter
	}

	return labels, nil
}

// gapBand shades the area between the inscribed and circumscribed curves.
func gapBand(s *series.Series) (*plotter.Polygon, error) {
	lower := methodXYs(s, estimator.MethodInscribed)
	upper := methodXYs(s, estimator.MethodCircumscribed)

	ring := make(plotter.XYs, 0, len(lower)+len(upper))
	ring = append(ring, lower...)
	for i := len(upper) - 1; i >= 0; i-- {
		ring = append(ring, upper[i])
	}

	band, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, fmt.Errorf("failed to build gap band: %w", err)
	}
	band.Color = bandColor
	band.LineStyle.Width = 0

	return band, nil
}

func methodXYs(s *series.Series, m estimator.Method) plotter.XYs {
	results := s.ByMethod(m)
	xys := make(plotter.XYs, len(results))
	for i, r := range results {
		xys[i] = plotter.XY{X: float64(r.Sides), Y: r.Estimate}
	}

	return xys
}

// visibleXYs drops points outside the fixed y range; scatter glyphs are not clipped.
func visibleXYs(xys plotter.XYs) plotter.XYs {
	out := xys[:0:0]
	for _, xy := range xys {
		if xy.Y >= chartYMin && xy.Y <= chartYMax {
			out = append(out, xy)
		}
	}

	return out
}

func sideTicks(sides []int) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, 0, len(sides))
	seen := make(map[int]struct{}, len(sides))
	for _, n := range sides {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		ticks = append(ticks, plot.Tick{Value: float64(n), Label: strconv.Itoa(n)})
	}

	return ticks
}

func sideRange(groups ...[]int) (lo, hi float64) {
	first := true
	for _, sides := range groups {
		for _, n := range sides {
			v := float64(n)
			if first || v < lo {
				lo = v
			}
			if first || v > hi {
				hi = v
			}
			first = false
		}
	}

	return lo, hi
}
