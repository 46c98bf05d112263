package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"hdlgraph/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "hdlgraph",
	Short:         "Inspect, lint and adjust persisted HDL design graphs",
	Long:          `hdlgraph loads saved design graphs, walks them through the handle layer and runs the lint and adjust passes`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		stopTracing, err := setupTracing(cmd, s)
		if err != nil {
			stopProfiling()
			return err
		}
		commandCleanup = func() {
			stopTracing()
			stopProfiling()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCleanup()
	},
}

func init() {
	rootCmd.Version = version.Current().String()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "path to hdlgraph.toml (default: search upwards from the working directory)")
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 200, "maximum number of diagnostics per file")
	pf.Int("jobs", 0, "files processed in parallel (0 = GOMAXPROCS)")
	pf.String("diag-format", "", "diagnostics format (pretty|json|short)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson|chrome)")
	pf.Int("trace-ring-size", 4096, "events kept in ring mode")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")
}

// main executes the root command. Any error exits with status 1; findings
// reported by lint or check exit with 2.
func main() {
	err := rootCmd.Execute()
	if err != nil {
		dumpTraceRing(os.Stderr)
	}
	runCleanup()
	if err != nil {
		var exit exitError
		if asExitError(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
