package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hdlgraph/internal/model"
	"hdlgraph/internal/testkit"
	"hdlgraph/internal/vpi"
)

var demoAllKinds bool

func init() {
	demoCmd.Flags().BoolVar(&demoAllKinds, "all-kinds", false, "write a design touching every object kind instead of design1")
}

var demoCmd = &cobra.Command{
	Use:   "demo OUT",
	Short: "Write a sample design graph",
	Long:  "demo writes design1 (top module M1 with children M2 and M3 and a few expressions) to OUT",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := model.NewArena(model.Hints{})
		if demoAllKinds {
			testkit.BuildAllKinds(a)
		} else {
			testkit.BuildDesign1(a)
		}
		if err := vpi.Save(cmd.Context(), a, args[0]); err != nil {
			return fmt.Errorf("save %s: %w", args[0], err)
		}
		if !current.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d objects to %s\n", a.LiveCount(), args[0])
		}
		return nil
	},
}
