package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/polypi/estimator"
	"github.com/arloliu/polypi/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func requirePNG(t *testing.T, path string) {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, pngMagic), "%s is not a PNG", path)
}

func TestChartBuildsPlot(t *testing.T) {
	dense, err := series.Evaluate(series.DenseSides(), series.ModeBoth)
	require.NoError(t, err)

	p, err := Chart(Input{Table: tableSeries(t, series.ModeBoth), Detail: dense})
	require.NoError(t, err)
	assert.Equal(t, chartYMin, p.Y.Min)
	assert.Equal(t, chartYMax, p.Y.Max)
	assert.LessOrEqual(t, p.X.Min, 3.0)
	assert.GreaterOrEqual(t, p.X.Max, 384.0)

	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	require.Len(t, ticks, len(series.TableSides()))
	assert.Equal(t, "384", ticks[len(ticks)-1].Label)
}

func TestChartRendererWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.png")
	r := NewChartRenderer(path)
	r.Width, r.Height = 6*vg.Inch, 4*vg.Inch

	require.NoError(t, r.Render(context.Background(), Input{Table: tableSeries(t, series.ModeBoth)}))
	requirePNG(t, path)
}

func TestChartRendererSingleModeSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.svg")
	require.NoError(t, NewChartRenderer(path).Render(context.Background(),
		Input{Table: tableSeries(t, series.ModeInscribed)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestChartRendererErrors(t *testing.T) {
	dir := t.TempDir()

	err := NewChartRenderer(filepath.Join(dir, "c.png")).Render(context.Background(), Input{})
	require.ErrorIs(t, err, ErrNoSeries)

	err = NewChartRenderer(filepath.Join(dir, "c.unknown")).Render(context.Background(),
		Input{Table: tableSeries(t, series.ModeBoth)})
	require.Error(t, err)
}

func TestSideTicksSkipsDuplicates(t *testing.T) {
	ticks := sideTicks([]int{3, 6, 6, 12})
	require.Len(t, ticks, 3)
	assert.Equal(t, 12.0, ticks[2].Value)
}

func TestPolygonRendererWritesFigures(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	r := NewPolygonRenderer(dir, 3, 6)
	require.Equal(t, []string{
		filepath.Join(dir, "polygons_3.png"),
		filepath.Join(dir, "polygons_6.png"),
	}, r.Files())

	require.NoError(t, r.Render(context.Background(), Input{Table: tableSeries(t, series.ModeBoth)}))
	for _, path := range r.Files() {
		requirePNG(t, path)
	}
}

func TestPolygonRendererDefaults(t *testing.T) {
	r := &PolygonRenderer{Dir: "out", Pattern: "poly-%03d.png"}
	require.Equal(t, []string{
		filepath.Join("out", "poly-006.png"),
		filepath.Join("out", "poly-012.png"),
		filepath.Join("out", "poly-024.png"),
	}, r.Files())
}

func TestDefaultPolygonSidesIsFresh(t *testing.T) {
	sides := DefaultPolygonSides()
	sides[0] = 2

	require.Equal(t, []int{6, 12, 24}, DefaultPolygonSides())
	require.Equal(t, filepath.Join("out", "polygons_6.png"), (&PolygonRenderer{Dir: "out"}).Files()[0])
}

func TestPolygonRendererRejectsInvalidSides(t *testing.T) {
	dir := t.TempDir()
	err := NewPolygonRenderer(dir, 6, 2).Render(context.Background(), Input{})
	require.ErrorIs(t, err, estimator.ErrInvalidArgument)

	_, statErr := os.Stat(filepath.Join(dir, "polygons_6.png"))
	require.True(t, os.IsNotExist(statErr))
}

func TestPolygonPanelMapping(t *testing.T) {
	b := panelBox{cx: 100, cy: 200, scale: 10}
	x, y := b.px(estimator.Point{X: 1, Y: 2})
	assert.Equal(t, 110.0, x)
	assert.Equal(t, 180.0, y)
}
