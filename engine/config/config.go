// Package config loads the application settings shared by the example programs from TOML or YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the top-level application configuration.
type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// WindowConfig describes the window and its GL context.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`

	// MSAA is the multisample count requested for the default framebuffer, 0 to disable.
	MSAA int `toml:"msaa" yaml:"msaa"`
}

// RenderConfig controls the draw loop.
type RenderConfig struct {
	DrawsPerSecond int           `toml:"draws_per_second" yaml:"draws_per_second"`
	ClearColor     common.Color4 `toml:"clear_color" yaml:"clear_color"`
	PointSize      float32       `toml:"point_size" yaml:"point_size"`
	LineWidth      float32       `toml:"line_width" yaml:"line_width"`

	// Profiling enables the periodic frame-rate log line.
	Profiling bool `toml:"profiling" yaml:"profiling"`
}

// LogConfig selects the structured log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "oxy-graph",
			Width:  500,
			Height: 500,
			MSAA:   4,
		},
		Render: RenderConfig{
			DrawsPerSecond: 30,
			ClearColor:     common.Color4{A: 1},
			PointSize:      8,
			LineWidth:      1,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads and validates a configuration file. Files ending in .yaml or .yml are decoded as YAML,
// anything else as TOML. Fields absent from the file keep their defaults.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	parse := Parse
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parse = ParseYAML
	}
	cfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates TOML configuration data. Unknown keys are rejected.
//
// Parameters:
//   - data: TOML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if the document cannot be decoded or validated
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseYAML decodes and validates YAML configuration data. Unknown keys are rejected.
//
// Parameters:
//   - data: YAML document, possibly empty
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if the document cannot be decoded or validated
func ParseYAML(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(typeErr.Errors, "; "))
		}
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as TOML.
//
// Returns:
//   - []byte: the TOML document
//   - error: error if encoding fails
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports every out-of-range field. Each reported problem wraps ErrInvalidConfig.
//
// Returns:
//   - error: nil if the configuration is usable
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.MSAA < 0 {
		invalid("window.msaa must not be negative, got %d", c.Window.MSAA)
	}
	if c.Render.DrawsPerSecond <= 0 || c.Render.DrawsPerSecond > 1000 {
		invalid("render.draws_per_second must be in 1..1000, got %d", c.Render.DrawsPerSecond)
	}
	if c.Render.PointSize <= 0 {
		invalid("render.point_size must be positive, got %g", c.Render.PointSize)
	}
	if c.Render.LineWidth <= 0 {
		invalid("render.line_width must be positive, got %g", c.Render.LineWidth)
	}
	for i, v := range c.Render.ClearColor.Array() {
		if v < 0 || v > 1 {
			invalid("render.clear_color component %d out of [0,1]: %g", i, v)
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel maps the configured level name to a slog.Level. Matching is case-insensitive.
//
// Returns:
//   - slog.Level: the level
//   - error: wraps ErrInvalidConfig for an unknown name
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, l.Level)
	}
}
