package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hdlgraph/internal/diagfmt"
	"hdlgraph/internal/driver"
)

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Count the objects of a saved graph by kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := driverOptions(current)
		opts.Adjust, opts.Lint, opts.KeepArena = false, false, true
		res := driver.RunFile(cmd.Context(), args[0], opts)
		if res.Err != nil {
			return finish(cmd.OutOrStdout(), cmd.ErrOrStderr(), []driver.FileResult{res}, current)
		}

		s := driver.CollectStats(res.Arena)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "file:        %s\n", res.Name)
		fmt.Fprintf(out, "origin:      %s\n", s.Origin)
		fmt.Fprintf(out, "roots:       %d\n", s.Roots)
		fmt.Fprintf(out, "objects:     %d\n", s.Live)
		fmt.Fprintf(out, "collections: %d\n", s.Collections)
		fmt.Fprintf(out, "strings:     %d\n\n", s.Strings)

		rows := make([][]string, 0, len(s.Kinds))
		for _, kc := range s.Kinds {
			rows = append(rows, []string{kc.Kind.String(), strconv.Itoa(kc.Count)})
		}
		return diagfmt.Table(out, []string{"kind", "count"}, rows)
	},
}
