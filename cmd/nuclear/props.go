package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/beduk0/OTTO/synth/nuclear"
)

var propsCmd = &cobra.Command{
	Use:   "props",
	Short: "List engine properties with their defaults, bounds and step",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDEFAULT\tMIN\tMAX\tSTEP")

		for _, p := range nuclear.NewProps().All() {
			lo, hi, ok := p.Bounds()
			if !ok {
				fmt.Fprintf(w, "%s\t%g\t-\t-\t%g\n", p.Name(), p.Default(), p.StepSize())
				continue
			}

			fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n", p.Name(), p.Default(), lo, hi, p.StepSize())
		}

		return w.Flush()
	},
}
