// Package config loads hdlgraph.toml. Every section is optional; command
// line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"hdlgraph/internal/diag"
	"hdlgraph/internal/trace"
)

// FileName is the configuration file looked up from the working directory
// upwards.
const FileName = "hdlgraph.toml"

type Config struct {
	Lint   LintConfig   `toml:"lint"`
	Adjust AdjustConfig `toml:"adjust"`
	Trace  TraceConfig  `toml:"trace"`
	Output OutputConfig `toml:"output"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
}

type LintConfig struct {
	Disable          []string `toml:"disable"`
	MaxDiagnostics   int      `toml:"max_diagnostics"`
	WarningsAsErrors bool     `toml:"warnings_as_errors"`
	MinSeverity      string   `toml:"min_severity"` // info|warning|error
}

type AdjustConfig struct {
	Enabled bool `toml:"enabled"`
	Resize  bool `toml:"resize"`
}

type TraceConfig struct {
	Level     string `toml:"level"`
	Format    string `toml:"format"`
	Mode      string `toml:"mode"`
	Output    string `toml:"output"`
	RingSize  int    `toml:"ring_size"`
	Heartbeat string `toml:"heartbeat"`
}

type OutputConfig struct {
	Color    string `toml:"color"`  // auto|on|off
	Format   string `toml:"format"` // pretty|json|short
	PathMode string `toml:"path_mode"`
	Jobs     int    `toml:"jobs"`
	Timings  bool   `toml:"timings"`
}

// Default is the configuration used when no file is found.
func Default() Config {
	return Config{
		Lint:   LintConfig{MaxDiagnostics: 200, MinSeverity: "info"},
		Adjust: AdjustConfig{Enabled: true, Resize: true},
		Trace:  TraceConfig{Level: "off", Format: "auto", Mode: "stream"},
		Output: OutputConfig{Color: "auto", Format: "pretty", PathMode: "auto"},
	}
}

// Find looks for FileName in startDir and its parents.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest configuration file, or the defaults when there
// is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks enumerations and codes; all problems are reported
// together.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.DisabledCodes(); err != nil {
		errs = append(errs, err)
	}
	if _, err := diag.ParseSeverity(c.Lint.MinSeverity); err != nil {
		errs = append(errs, fmt.Errorf("[lint].min_severity: %w", err))
	}
	if c.Lint.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("[lint].max_diagnostics must not be negative"))
	}
	if _, err := c.TraceConfig(); err != nil {
		errs = append(errs, err)
	}
	if !oneOf(c.Output.Color, "auto", "on", "off") {
		errs = append(errs, fmt.Errorf("[output].color: %q (expected: auto|on|off)", c.Output.Color))
	}
	if !oneOf(c.Output.Format, "pretty", "json", "short") {
		errs = append(errs, fmt.Errorf("[output].format: %q (expected: pretty|json|short)", c.Output.Format))
	}
	if !oneOf(c.Output.PathMode, "auto", "absolute", "relative", "basename") {
		errs = append(errs, fmt.Errorf("[output].path_mode: %q (expected: auto|absolute|relative|basename)", c.Output.PathMode))
	}
	if c.Output.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[output].jobs must not be negative"))
	}
	return errors.Join(errs...)
}

// DisabledCodes resolves [lint].disable.
func (c Config) DisabledCodes() (map[diag.Code]bool, error) {
	out := make(map[diag.Code]bool, len(c.Lint.Disable))
	var bad []string
	for _, s := range c.Lint.Disable {
		code, ok := diag.ParseCode(strings.TrimSpace(s))
		if !ok {
			bad = append(bad, s)
			continue
		}
		out[code] = true
	}
	if len(bad) > 0 {
		return out, fmt.Errorf("[lint].disable: unknown codes %s", strings.Join(bad, ", "))
	}
	return out, nil
}

// TraceConfig converts [trace] into a tracer configuration.
func (c Config) TraceConfig() (trace.Config, error) {
	level, err := trace.ParseLevel(c.Trace.Level)
	if err != nil {
		return trace.Config{}, fmt.Errorf("[trace].level: %w", err)
	}
	format, err := trace.ParseFormat(c.Trace.Format)
	if err != nil {
		return trace.Config{}, fmt.Errorf("[trace].format: %w", err)
	}
	mode, err := trace.ParseMode(c.Trace.Mode)
	if err != nil {
		return trace.Config{}, fmt.Errorf("[trace].mode: %w", err)
	}
	out := trace.Config{
		Level:      level,
		Format:     format,
		Mode:       mode,
		OutputPath: c.Trace.Output,
		RingSize:   c.Trace.RingSize,
	}
	if c.Trace.Heartbeat != "" {
		d, err := parseDuration(c.Trace.Heartbeat)
		if err != nil {
			return trace.Config{}, fmt.Errorf("[trace].heartbeat: %w", err)
		}
		out.Heartbeat = d
	}
	return out, nil
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
