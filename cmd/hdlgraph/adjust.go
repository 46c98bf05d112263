package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdlgraph/internal/driver"
	"hdlgraph/internal/vpi"
)

var (
	adjustOut      string
	adjustNoResize bool
	adjustLint     bool
)

func init() {
	adjustCmd.Flags().StringVarP(&adjustOut, "output", "o", "", "write the adjusted graph to this file (required)")
	adjustCmd.Flags().BoolVar(&adjustNoResize, "no-resize", false, "keep literal widths")
	adjustCmd.Flags().BoolVar(&adjustLint, "lint", false, "lint the adjusted graph")
	_ = adjustCmd.MarkFlagRequired("output") //nolint:errcheck
}

var adjustCmd = &cobra.Command{
	Use:   "adjust FILE -o OUT",
	Short: "Fold constant expressions and size literals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := driverOptions(current)
		opts.Adjust = true
		opts.Lint = adjustLint
		opts.KeepArena = true
		if cmd.Flags().Changed("no-resize") {
			opts.NoResize = adjustNoResize
		}

		res := driver.RunFile(cmd.Context(), args[0], opts)
		results := []driver.FileResult{res}
		if res.Err == nil {
			if err := vpi.Save(cmd.Context(), res.Arena, adjustOut); err != nil {
				return fmt.Errorf("save %s: %w", adjustOut, err)
			}
			if !current.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d replaced, %d erased -> %s\n",
					res.Name, res.Adjust.Replaced, res.Adjust.Erased, adjustOut)
			}
		}
		return finish(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, current)
	},
}
