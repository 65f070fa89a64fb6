package report

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/arloliu/polypi/estimator"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var defaultPolygonSides = [...]int{6, 12, 24}

// DefaultPolygonSides returns the side counts drawn when none are configured.
func DefaultPolygonSides() []int {
	return slices.Clone(defaultPolygonSides[:])
}

// DefaultPolygonPattern names one figure per side count.
const DefaultPolygonPattern = "polygons_%d.png"

const (
	figureWidth   = 1400
	figureHeight  = 760
	figureHeader  = 90
	panelExtent   = 0.7 // data units visible on each side of the center
	panelMarginPx = 40
)

var (
	inscribedRGB     = gg.Hex("#1f77b4")
	circumscribedRGB = gg.Hex("#d62728")
	circleRGB        = gg.Hex("#333333")
)

// PolygonRenderer draws, for each side count, the inscribed and circumscribed
// polygons side by side around the unit-diameter circle.
type PolygonRenderer struct {
	// Dir receives the PNG files.
	Dir string
	// Sides lists the side counts to draw; DefaultPolygonSides when empty.
	Sides []int
	// Pattern formats the file name from the side count; DefaultPolygonPattern when empty.
	Pattern string
}

var _ Renderer = (*PolygonRenderer)(nil)

// NewPolygonRenderer creates a polygon renderer writing into dir.
func NewPolygonRenderer(dir string, sides ...int) *PolygonRenderer {
	return &PolygonRenderer{Dir: dir, Sides: sides}
}

// Name implements Renderer.
func (r *PolygonRenderer) Name() string { return "polygons" }

// Files returns the paths Render writes.
func (r *PolygonRenderer) Files() []string {
	sides := r.sides()
	files := make([]string, len(sides))
	for i, n := range sides {
		files[i] = r.path(n)
	}

	return files
}

func (r *PolygonRenderer) sides() []int {
	if len(r.Sides) == 0 {
		return DefaultPolygonSides()
	}

	return r.Sides
}

func (r *PolygonRenderer) path(n int) string {
	pattern := r.Pattern
	if pattern == "" {
		pattern = DefaultPolygonPattern
	}

	return filepath.Join(r.Dir, fmt.Sprintf(pattern, n))
}

// Render implements Renderer. The table series only supplies the reference value.
func (r *PolygonRenderer) Render(ctx context.Context, in Input) error {
	reference := math.Pi
	if in.Table != nil {
		reference = in.Table.Reference()
	}

	for _, n := range r.sides() {
		if err := estimator.Validate(n); err != nil {
			return err
		}
	}

	if r.Dir != "" {
		if err := os.MkdirAll(r.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create polygon directory: %w", err)
		}
	}

	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	defer src.Close()

	for _, n := range r.sides() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.renderOne(src, n, reference); err != nil {
			return err
		}
	}

	return nil
}

func (r *PolygonRenderer) renderOne(src *text.FontSource, n int, reference float64) error {
	dc := gg.NewContext(figureWidth, figureHeight)
	defer dc.Close()

	dc.ClearWithColor(gg.White)

	dc.SetRGB(circleRGB.R, circleRGB.G, circleRGB.B)
	dc.SetFont(src.Face(26))
	dc.DrawStringAnchored(fmt.Sprintf("Polygon approximation of π with %d sides", n),
		figureWidth/2, 45, 0.5, 0.5)

	panelWidth := float64(figureWidth) / 2
	for i, m := range estimator.Methods() {
		panel := panelBox{
			cx:    panelWidth*float64(i) + panelWidth/2,
			cy:    figureHeader + float64(figureHeight-figureHeader)/2,
			scale: (math.Min(panelWidth, figureHeight-figureHeader) - 2*panelMarginPx) / (2 * panelExtent),
		}
		if err := drawPanel(dc, src, panel, m, n, reference); err != nil {
			return err
		}
	}

	path := r.path(n)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	return nil
}

// panelBox maps data coordinates of one panel to pixels, y pointing up.
type panelBox struct {
	cx, cy, scale float64
}

func (b panelBox) px(p estimator.Point) (x, y float64) {
	return b.cx + p.X*b.scale, b.cy - p.Y*b.scale
}

func drawPanel(dc *gg.Context, src *text.FontSource, b panelBox, m estimator.Method, n int, reference float64) error {
	estimate, err := estimator.Estimate(m, n)
	if err != nil {
		return err
	}
	vertices, err := estimator.Vertices(m, n)
	if err != nil {
		return err
	}

	col, relation := inscribedRGB, "≤"
	if m == estimator.MethodCircumscribed {
		col, relation = circumscribedRGB, "≥"
	}

	dc.SetRGB(circleRGB.R, circleRGB.G, circleRGB.B)
	dc.SetLineWidth(2)
	dc.DrawCircle(b.cx, b.cy, estimator.Radius*b.scale)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("failed to draw circle: %w", err)
	}

	for i, v := range vertices {
		x, y := b.px(v)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.SetRGBA(col.R, col.G, col.B, 0.15)
	if err := dc.FillPreserve(); err != nil {
		return fmt.Errorf("failed to fill polygon: %w", err)
	}
	dc.SetRGB(col.R, col.G, col.B)
	dc.SetLineWidth(2.5)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("failed to stroke polygon: %w", err)
	}

	for _, v := range vertices {
		x, y := b.px(v)
		dc.DrawCircle(x, y, 4)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("failed to draw vertex: %w", err)
		}
	}

	// Axes through the center, dashed.
	dc.SetRGB(circleRGB.R, circleRGB.G, circleRGB.B)
	dc.SetLineWidth(1)
	dc.SetDash(6, 4)
	reach := panelExtent * b.scale
	dc.DrawLine(b.cx-reach, b.cy, b.cx+reach, b.cy)
	dc.DrawLine(b.cx, b.cy-reach, b.cx, b.cy+reach)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("failed to draw axes: %w", err)
	}
	dc.ClearDash()

	dc.SetFont(src.Face(18))
	title := fmt.Sprintf("%s polygon (%d sides)", capitalize(m.String()), n)
	dc.DrawStringAnchored(title, b.cx, b.cy-reach-28, 0.5, 0.5)
	dc.SetRGB(col.R, col.G, col.B)
	dc.DrawStringAnchored(fmt.Sprintf("π ≈ %.6f %s %.6f", estimate, relation, reference),
		b.cx, b.cy-reach-4, 0.5, 0.5)

	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return string(s[0]-'a'+'A') + s[1:]
}
