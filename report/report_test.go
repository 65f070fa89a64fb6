package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/polypi/archive"
	"github.com/arloliu/polypi/estimator"
	"github.com/arloliu/polypi/format"
	"github.com/arloliu/polypi/series"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func tableSeries(t *testing.T, mode series.Mode) *series.Series {
	t.Helper()

	s, err := series.Evaluate(series.TableSides(), mode)
	require.NoError(t, err)

	return s
}

type stubRenderer struct {
	name  string
	err   error
	panic bool
	calls int
}

func (r *stubRenderer) Name() string { return r.name }

func (r *stubRenderer) Render(context.Context, Input) error {
	r.calls++
	if r.panic {
		panic("boom")
	}

	return r.err
}

func TestPublishIsolatesFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	failErr := errors.New("disk full")
	first := &stubRenderer{name: "first", err: failErr}
	second := &stubRenderer{name: "second", panic: true}
	third := &stubRenderer{name: "third"}

	in := Input{Table: tableSeries(t, series.ModeBoth)}
	err := Publish(context.Background(), logger, in, first, second, third)
	require.Error(t, err)
	require.ErrorIs(t, err, failErr)
	require.Contains(t, err.Error(), "second: renderer panicked: boom")

	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, third.calls)

	assert.Equal(t, 2, logs.FilterMessage("renderer failed").Len())
	finished := logs.FilterMessage("renderer finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, "third", finished[0].ContextMap()["renderer"])
}

func TestPublishSucceeds(t *testing.T) {
	r := &stubRenderer{name: "ok"}
	require.NoError(t, Publish(context.Background(), nil, Input{Table: tableSeries(t, series.ModeInscribed)}, r))
	require.Equal(t, 1, r.calls)
}

func TestPublishStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &stubRenderer{name: "never"}
	err := Publish(ctx, zap.NewNop(), Input{Table: tableSeries(t, series.ModeBoth)}, r)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, r.calls)
}

func TestPublishRequiresTable(t *testing.T) {
	err := Publish(context.Background(), nil, Input{}, &stubRenderer{name: "x"})
	require.ErrorIs(t, err, ErrNoSeries)
}

func TestPublishDoesNotModifySeries(t *testing.T) {
	s := tableSeries(t, series.ModeBoth)
	before := s.Results()

	var buf bytes.Buffer
	dir := t.TempDir()
	err := Publish(context.Background(), nil, Input{Table: s},
		NewTableRenderer(&buf),
		NewJSONRenderer(filepath.Join(dir, "out.json"), ""),
		NewArchiveRenderer(filepath.Join(dir, "out.ppi"), format.CompressionS2, nil),
	)
	require.NoError(t, err)
	require.Equal(t, before, s.Results())
}

func TestTableRendererBoth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableRenderer(&buf).Render(context.Background(), Input{Table: tableSeries(t, series.ModeBoth)}))

	out := buf.String()
	assert.Contains(t, out, "Polygon approximation of π")
	assert.Contains(t, out, "Circumscribed")
	assert.Contains(t, out, "Interval")
	assert.Contains(t, out, "2.5980762114")
	assert.Contains(t, out, "5.1961524227")
	assert.Contains(t, out, "[3.141558, 3.141663]")
	assert.Contains(t, out, "Best inscribed estimate (384 sides): 3.1415576079")
	assert.Contains(t, out, "Best circumscribed estimate (384 sides): 3.1416627471")
	assert.Contains(t, out, "Reference π: 3.1415926536")
	assert.Contains(t, out, "Max error: 1.05e-04")
	assert.Contains(t, out, "Convergence order (inscribed): -")
}

func TestTableRendererSingleMode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableRenderer(&buf).Render(context.Background(), Input{Table: tableSeries(t, series.ModeCircumscribed)}))

	out := buf.String()
	assert.Contains(t, out, "Estimate")
	assert.Contains(t, out, "Rel %")
	assert.Contains(t, out, "3.1416627471")
	assert.NotContains(t, out, "Interval")
	assert.NotContains(t, out, "inscribed estimate")
	assert.Contains(t, out, "Best circumscribed estimate (384 sides)")
}

func TestTableRendererEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, NewTableRenderer(&buf).Render(context.Background(), Input{}), ErrNoSeries)
	require.Zero(t, buf.Len())
}

func TestJSONRenderer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.json")
	r := NewJSONRenderer(path, "run-1")
	require.NoError(t, r.Render(context.Background(), Input{Table: tableSeries(t, series.ModeBoth)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, sonic.Unmarshal(data, &doc))
	assert.Equal(t, "run-1", doc.RunID)
	assert.Equal(t, "both", doc.Mode)
	assert.Len(t, doc.Results, 2*len(series.TableSides()))
	assert.Len(t, doc.Intervals, len(series.TableSides()))
	require.Len(t, doc.Summaries, 2)
	assert.Equal(t, "inscribed", doc.Summaries[0].Method)
	assert.InDelta(t, -2, doc.Summaries[0].ConvergenceOrder, 0.1)
	assert.Equal(t, 384, doc.Intervals[7].Sides)
	assert.InDelta(t, 1.0514e-4, doc.Intervals[7].Width, 1e-7)
}

func TestNewDocumentSingleMode(t *testing.T) {
	doc, err := NewDocument(tableSeries(t, series.ModeInscribed))
	require.NoError(t, err)
	assert.Empty(t, doc.Intervals)
	require.Len(t, doc.Summaries, 1)
	assert.Equal(t, estimator.MethodInscribed.String(), doc.Results[0].Method)

	_, err = NewDocument(nil)
	require.ErrorIs(t, err, ErrNoSeries)
}

func TestArchiveRenderer(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	path := filepath.Join(t.TempDir(), "series.ppi")
	s := tableSeries(t, series.ModeBoth)

	r := NewArchiveRenderer(path, format.CompressionLZ4, zap.New(core))
	require.NoError(t, r.Render(context.Background(), Input{Table: s}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	h, err := archive.Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, format.CompressionLZ4, h.Compression)

	decoded, err := archive.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s.Results(), decoded.Results())

	entries := logs.FilterMessage("archive written").All()
	require.Len(t, entries, 1)
	assert.Equal(t, path, entries[0].ContextMap()["path"])
	assert.Equal(t, "LZ4", entries[0].ContextMap()["compression"])
}

func TestArchiveRendererMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "series.ppi")
	r := NewArchiveRenderer(path, 0, nil)
	require.Error(t, r.Render(context.Background(), Input{Table: tableSeries(t, series.ModeBoth)}))
}
