package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hdlgraph/internal/config"
	"hdlgraph/internal/diag"
	"hdlgraph/internal/diagfmt"
	"hdlgraph/internal/trace"
)

// settings is the configuration file with command line flags applied.
type settings struct {
	cfg      config.Config
	color    bool
	quiet    bool
	timings  bool
	disabled map[diag.Code]bool
	minSev   diag.Severity
	trace    trace.Config
	pathMode diagfmt.PathMode
}

var current settings

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return settings{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return settings{}, err
	}

	if flags.Changed("color") {
		cfg.Output.Color, _ = flags.GetString("color") //nolint:errcheck
	}
	if flags.Changed("diag-format") {
		cfg.Output.Format, _ = flags.GetString("diag-format") //nolint:errcheck
	}
	if flags.Changed("max-diagnostics") {
		cfg.Lint.MaxDiagnostics, _ = flags.GetInt("max-diagnostics") //nolint:errcheck
	}
	if flags.Changed("jobs") {
		cfg.Output.Jobs, _ = flags.GetInt("jobs") //nolint:errcheck
	}
	if flags.Changed("timings") {
		cfg.Output.Timings, _ = flags.GetBool("timings") //nolint:errcheck
	}
	if flags.Changed("trace-level") {
		cfg.Trace.Level, _ = flags.GetString("trace-level") //nolint:errcheck
	}
	if flags.Changed("trace-mode") {
		cfg.Trace.Mode, _ = flags.GetString("trace-mode") //nolint:errcheck
	}
	if flags.Changed("trace-format") {
		cfg.Trace.Format, _ = flags.GetString("trace-format") //nolint:errcheck
	}
	if flags.Changed("trace") {
		cfg.Trace.Output, _ = flags.GetString("trace") //nolint:errcheck
	}
	if flags.Changed("trace-ring-size") {
		cfg.Trace.RingSize, _ = flags.GetInt("trace-ring-size") //nolint:errcheck
	}
	if flags.Changed("trace-heartbeat") {
		hb, _ := flags.GetDuration("trace-heartbeat") //nolint:errcheck
		cfg.Trace.Heartbeat = hb.String()
	}
	if err := cfg.Validate(); err != nil {
		return settings{}, err
	}

	s := settings{cfg: cfg}
	s.quiet, _ = flags.GetBool("quiet") //nolint:errcheck
	s.timings = cfg.Output.Timings
	s.color = resolveColor(cfg.Output.Color)
	if s.disabled, err = cfg.DisabledCodes(); err != nil {
		return settings{}, err
	}
	if s.minSev, err = diag.ParseSeverity(cfg.Lint.MinSeverity); err != nil {
		return settings{}, err
	}
	if s.trace, err = cfg.TraceConfig(); err != nil {
		return settings{}, err
	}
	s.pathMode = readPathMode(cfg.Output.PathMode)
	current = s
	return s, nil
}

func resolveColor(mode string) bool {
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	default:
		if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
			return false
		}
		return isTerminal(os.Stdout)
	}
}

func readPathMode(s string) diagfmt.PathMode {
	switch s {
	case "absolute":
		return diagfmt.PathModeAbsolute
	case "relative":
		return diagfmt.PathModeRelative
	case "basename":
		return diagfmt.PathModeBasename
	default:
		return diagfmt.PathModeAuto
	}
}
