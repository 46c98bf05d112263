package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hdlgraph/internal/diagfmt"
	"hdlgraph/internal/model"
	"hdlgraph/internal/vpi"
)

var dumpFormat string

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "text", "output format (text|json|yaml)")
}

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print the design tree of a saved graph",
	Long:  "dump restores a graph and prints it by walking the handle layer from the recorded roots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(dumpFormat)
		switch format {
		case "text", "json", "yaml":
		default:
			return fmt.Errorf("unsupported format %q (must be text, json or yaml)", dumpFormat)
		}

		a := model.NewArena(model.Hints{})
		roots, err := vpi.Restore(cmd.Context(), a, args[0])
		if err != nil {
			return fmt.Errorf("restore %s: %w", args[0], err)
		}
		nodes := diagfmt.BuildGraph(roots)
		out := cmd.OutOrStdout()
		switch format {
		case "json":
			return diagfmt.GraphJSON(out, nodes)
		case "yaml":
			return diagfmt.GraphYAML(out, nodes)
		default:
			return diagfmt.GraphPretty(out, nodes)
		}
	},
}
