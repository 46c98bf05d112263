package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdlgraph/internal/driver"
)

var (
	checkUI     string
	checkOutDir string
)

func init() {
	checkCmd.Flags().StringVar(&checkUI, "ui", "off", "progress view (auto|on|off)")
	checkCmd.Flags().StringVarP(&checkOutDir, "out-dir", "o", "", "write processed graphs below this directory")
}

var checkCmd = &cobra.Command{
	Use:   "check FILE...",
	Short: "Adjust and lint many graphs in parallel",
	Long:  "check restores every file into its own arena, runs the adjuster (unless disabled in hdlgraph.toml) and lint, and optionally saves the results",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := readUIMode(checkUI)
		if err != nil {
			return err
		}
		opts := driverOptions(current)
		opts.OutputDir = checkOutDir

		var results []driver.FileResult
		if useProgressView(mode, len(args), current.quiet) {
			results, err = runWithUI(cmd.Context(), fmt.Sprintf("checking %d file(s)", len(args)), args, opts)
		} else {
			results, err = driver.Run(cmd.Context(), args, opts)
		}
		if err != nil {
			return err
		}
		return finish(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, current)
	},
}
