// Package config loads the polypi run configuration.
//
// Values are resolved in increasing precedence: built-in defaults, an optional
// YAML or TOML file, POLYPI_* environment variables, and finally command-line
// flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/polypi/estimator"
	"github.com/arloliu/polypi/format"
	"github.com/arloliu/polypi/series"
	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable, e.g. POLYPI_RUN_MODE.
const EnvPrefix = "polypi"

// Config holds the whole run configuration.
type Config struct {
	Run     RunConfig    `yaml:"run" toml:"run"`
	Output  OutputConfig `yaml:"output" toml:"output"`
	Logging LogConfig    `yaml:"logging" toml:"logging"`
}

// RunConfig selects what is evaluated.
type RunConfig struct {
	// Sides are the side counts of the table series.
	Sides []int `yaml:"sides" toml:"sides"`
	// Mode is "inscribed", "circumscribed" or "both".
	Mode string `yaml:"mode" toml:"mode"`
	// Reference is the π value errors are measured against.
	Reference float64 `yaml:"reference" toml:"reference"`
	// StrictOrdering rejects side counts that are not strictly increasing.
	StrictOrdering bool `yaml:"strict_ordering" toml:"strict_ordering" split_words:"true"`
	// Dense evaluates the dense side sequence for the convergence chart.
	Dense bool `yaml:"dense" toml:"dense"`
}

// OutputConfig selects the reports and artifacts written after evaluation.
// Empty file names disable the corresponding artifact.
type OutputConfig struct {
	Dir          string `yaml:"dir" toml:"dir"`
	Table        bool   `yaml:"table" toml:"table"`
	Chart        string `yaml:"chart" toml:"chart"`
	Polygons     bool   `yaml:"polygons" toml:"polygons"`
	PolygonSides []int  `yaml:"polygon_sides" toml:"polygon_sides" split_words:"true"`
	JSON         string `yaml:"json" toml:"json"`
	Archive      string `yaml:"archive" toml:"archive"`
	Compression  string `yaml:"compression" toml:"compression"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `yaml:"level" toml:"level"`
	Development bool   `yaml:"development" toml:"development"`
}

// Default returns the default configuration: the classic doubling table in
// both modes, a convergence chart and the 6, 12 and 24 sided polygon figures.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			Sides:     series.TableSides(),
			Mode:      series.ModeBoth.String(),
			Reference: math.Pi,
			Dense:     true,
		},
		Output: OutputConfig{
			Dir:          ".",
			Table:        true,
			Chart:        "convergence.png",
			Polygons:     true,
			PolygonSides: []int{6, 12, 24},
			Compression:  "zstd",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Load builds the configuration from defaults, the optional file at path and
// the environment. It does not validate: callers apply their overrides (flags)
// first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	return cfg, nil
}

// LoadFile overlays the YAML (.yaml, .yml) or TOML (.toml) file at path onto
// cfg. Keys absent from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// Validate checks every field and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Run.Sides) == 0 {
		errs = append(errs, errors.New("run.sides: at least one side count is required"))
	}
	for i, n := range c.Run.Sides {
		if err := estimator.Validate(n); err != nil {
			errs = append(errs, fmt.Errorf("run.sides[%d]: %w", i, err))
		}
	}
	if series.ModeFromString(c.Run.Mode) == 0 {
		errs = append(errs, fmt.Errorf("run.mode: unknown mode %q", c.Run.Mode))
	}
	if math.IsNaN(c.Run.Reference) || math.IsInf(c.Run.Reference, 0) || c.Run.Reference <= 0 {
		errs = append(errs, fmt.Errorf("run.reference: must be finite and positive, got %v", c.Run.Reference))
	}

	for i, n := range c.Output.PolygonSides {
		if err := estimator.Validate(n); err != nil {
			errs = append(errs, fmt.Errorf("output.polygon_sides[%d]: %w", i, err))
		}
	}
	if _, ok := format.ParseCompression(c.Output.Compression); !ok {
		errs = append(errs, fmt.Errorf("output.compression: unknown compression %q", c.Output.Compression))
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	return errors.Join(errs...)
}

// Mode returns the parsed evaluation mode. Call Validate first.
func (c *Config) Mode() series.Mode {
	return series.ModeFromString(c.Run.Mode)
}

// Compression returns the parsed archive compression. Call Validate first.
func (c *Config) Compression() format.CompressionType {
	ct, _ := format.ParseCompression(c.Output.Compression)
	return ct
}

// OutputPath resolves name inside the output directory. Empty names stay empty.
func (c *Config) OutputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(c.Output.Dir, name)
}
