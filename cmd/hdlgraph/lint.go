package main

import (
	"github.com/spf13/cobra"

	"hdlgraph/internal/driver"
)

var lintCmd = &cobra.Command{
	Use:   "lint FILE...",
	Short: "Report lint findings for saved graphs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := driverOptions(current)
		opts.Adjust = false
		results, err := driver.Run(cmd.Context(), args, opts)
		if err != nil {
			return err
		}
		return finish(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, current)
	},
}
