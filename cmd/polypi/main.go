package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/arloliu/polypi/internal/config"
	"github.com/arloliu/polypi/internal/logging"
	"github.com/arloliu/polypi/report"
	"github.com/arloliu/polypi/series"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Exit codes.
const (
	exitOK     = 0
	exitConfig = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// flags holds the raw command-line values. Only flags the user actually set
// override the loaded configuration.
type flags struct {
	configPath  string
	sides       []int
	mode        string
	reference   float64
	strict      bool
	dense       bool
	outDir      string
	table       bool
	chart       string
	polygons    bool
	polySides   []int
	jsonPath    string
	archivePath string
	compression string
	logLevel    string
	logFile     string
	dev         bool
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *flags) {
	f := &flags{}
	fs := flag.NewFlagSet("polypi", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "YAML or TOML configuration file")
	fs.Func("sides", "comma-separated side counts, e.g. 3,6,12", intsFlag(&f.sides))
	fs.StringVar(&f.mode, "mode", "", "inscribed, circumscribed or both")
	fs.Float64Var(&f.reference, "reference", 0, "reference value errors are measured against")
	fs.BoolVar(&f.strict, "strict", false, "reject side counts that are not strictly increasing")
	fs.BoolVar(&f.dense, "dense", true, "evaluate the dense side sequence for the chart")
	fs.StringVar(&f.outDir, "out", "", "output directory for artifacts")
	fs.BoolVar(&f.table, "table", true, "print the console table")
	fs.StringVar(&f.chart, "chart", "", "convergence chart file name (png, svg, pdf); empty string disables")
	fs.BoolVar(&f.polygons, "polygons", true, "draw the polygon figures")
	fs.Func("polygon-sides", "comma-separated side counts of the polygon figures", intsFlag(&f.polySides))
	fs.StringVar(&f.jsonPath, "json", "", "JSON export file name")
	fs.StringVar(&f.archivePath, "archive", "", "binary archive file name")
	fs.StringVar(&f.compression, "compression", "", "archive compression: none, zstd, s2 or lz4")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&f.logFile, "log-file", "", "write logs to this file instead of stderr")
	fs.BoolVar(&f.dev, "dev", false, "human-readable development logging")

	return fs, f
}

// intsFlag parses a side-count list while flags are parsed, so a malformed
// list is a usage error.
func intsFlag(dst *[]int) func(string) error {
	return func(list string) error {
		sides, err := parseInts(list)
		if err != nil {
			return err
		}
		*dst = sides

		return nil
	}
}

// apply copies every explicitly set flag onto cfg.
func (f *flags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "sides":
			cfg.Run.Sides = f.sides
		case "mode":
			cfg.Run.Mode = f.mode
		case "reference":
			cfg.Run.Reference = f.reference
		case "strict":
			cfg.Run.StrictOrdering = f.strict
		case "dense":
			cfg.Run.Dense = f.dense
		case "out":
			cfg.Output.Dir = f.outDir
		case "table":
			cfg.Output.Table = f.table
		case "chart":
			cfg.Output.Chart = f.chart
		case "polygons":
			cfg.Output.Polygons = f.polygons
		case "polygon-sides":
			cfg.Output.PolygonSides = f.polySides
		case "json":
			cfg.Output.JSON = f.jsonPath
		case "archive":
			cfg.Output.Archive = f.archivePath
		case "compression":
			cfg.Output.Compression = f.compression
		case "log-level":
			cfg.Logging.Level = f.logLevel
		case "dev":
			cfg.Logging.Development = f.dev
		}
	})
}

func parseInts(list string) ([]int, error) {
	fields := strings.FieldsFunc(list, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid side count %q", field)
		}
		out = append(out, n)
	}

	return out, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs, f := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "polypi: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return exitUsage
	}

	// Flags override the file and the environment, so validation runs after
	// they are applied.
	cfg, err := config.Load(f.configPath)
	if err == nil {
		f.apply(fs, cfg)
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "polypi: invalid configuration:\n%v\n", err)
		return exitConfig
	}

	logCfg := logging.Config{Level: cfg.Logging.Level, Development: cfg.Logging.Development}
	if f.logFile != "" {
		logCfg.OutputPaths = []string{f.logFile}
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "polypi: failed to create logger: %v\n", err)
		return exitConfig
	}
	defer func() { _ = logger.Sync() }()

	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	in, err := evaluate(cfg, logger)
	if err != nil {
		logger.Error("evaluation failed", zap.Error(err))
		fmt.Fprintf(stderr, "polypi: %v\n", err)

		return exitConfig
	}

	if err := report.Publish(ctx, logger, in, renderers(cfg, runID, stdout, logger)...); err != nil {
		logger.Warn("some reports were not produced", zap.Error(err))
		fmt.Fprintf(stderr, "polypi: reporting incomplete: %v\n", err)
	}

	return exitOK
}

func evaluate(cfg *config.Config, logger *zap.Logger) (report.Input, error) {
	opts := []series.Option{series.WithReference(cfg.Run.Reference)}
	if cfg.Run.StrictOrdering {
		opts = append(opts, series.WithStrictOrdering())
	}

	table, err := series.Evaluate(cfg.Run.Sides, cfg.Mode(), opts...)
	if err != nil {
		return report.Input{}, err
	}
	logger.Info("series evaluated",
		zap.Stringer("mode", table.Mode()),
		zap.Int("side_counts", len(cfg.Run.Sides)),
		zap.Int("results", table.Len()),
	)

	in := report.Input{Table: table}
	if cfg.Run.Dense {
		detail, err := series.Evaluate(series.DenseSides(), cfg.Mode(), series.WithReference(cfg.Run.Reference))
		if err != nil {
			// The table is still usable; the chart falls back to it.
			logger.Warn("dense evaluation failed", zap.Error(err))
		} else {
			in.Detail = detail
		}
	}

	return in, nil
}

func renderers(cfg *config.Config, runID string, stdout io.Writer, logger *zap.Logger) []report.Renderer {
	var out []report.Renderer

	if cfg.Output.Table {
		out = append(out, report.NewTableRenderer(stdout))
	}

	if cfg.Output.Dir != "" && (cfg.Output.Chart != "" || cfg.Output.Polygons || cfg.Output.JSON != "" || cfg.Output.Archive != "") {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			logger.Warn("failed to create output directory", zap.String("dir", cfg.Output.Dir), zap.Error(err))
		}
	}

	if cfg.Output.Chart != "" {
		out = append(out, report.NewChartRenderer(cfg.OutputPath(cfg.Output.Chart)))
	}
	if cfg.Output.Polygons {
		out = append(out, report.NewPolygonRenderer(cfg.Output.Dir, cfg.Output.PolygonSides...))
	}
	if cfg.Output.JSON != "" {
		out = append(out, report.NewJSONRenderer(cfg.OutputPath(cfg.Output.JSON), runID))
	}
	if cfg.Output.Archive != "" {
		out = append(out, report.NewArchiveRenderer(cfg.OutputPath(cfg.Output.Archive), cfg.Compression(), logger))
	}

	return out
}
