package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/polypi/series"
	"go.uber.org/zap"
)

// ErrNoSeries is returned by renderers whose input lacks the series they draw.
var ErrNoSeries = errors.New("report: no series to render")

// Input is the read-only data handed to every renderer.
type Input struct {
	// Table is the series printed, exported and archived.
	Table *series.Series
	// Detail is an optional denser series drawn as convergence curves.
	// Renderers fall back to Table when it is nil.
	Detail *series.Series
}

// curve returns the series used for continuous curves.
func (in Input) curve() *series.Series {
	if in.Detail != nil {
		return in.Detail
	}

	return in.Table
}

// Renderer turns evaluated series into one output artifact.
type Renderer interface {
	// Name identifies the renderer in logs and errors.
	Name() string
	// Render produces the artifact. It must not modify the input series.
	Render(ctx context.Context, in Input) error
}

// Publish runs every renderer in order.
//
// A failing or panicking renderer does not stop the others; all failures are
// returned joined. Publish stops early only when ctx is cancelled.
func Publish(ctx context.Context, logger *zap.Logger, in Input, renderers ...Renderer) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if in.Table == nil {
		return ErrNoSeries
	}

	var errs []error
	for _, r := range renderers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("report: publishing stopped before %s: %w", r.Name(), err))
			break
		}

		start := time.Now()
		err := safeRender(ctx, r, in)
		log := logger.With(zap.String("renderer", r.Name()), zap.Duration("duration", time.Since(start)))
		if err != nil {
			log.Warn("renderer failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))

			continue
		}
		log.Debug("renderer finished")
	}

	return errors.Join(errs...)
}

func safeRender(ctx context.Context, r Renderer, in Input) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("renderer panicked: %v", p)
		}
	}()

	return r.Render(ctx, in)
}
