package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-nicer/plot"
	"github.com/cwbudde/algo-nicer/plots"
	"github.com/spf13/cobra"
)

func newDomainsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List plot domains with their axes, cut window and non-finite policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if _, err := fmt.Fprintf(tw, "Domain\tAliases\tAxes\tCut\tNon-finite\n"); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(tw, "------\t-------\t----\t---\t----------\n"); err != nil {
				return err
			}

			for _, d := range plots.Domains() {
				cut, err := d.DefaultCut(a.config)
				if err != nil {
					return err
				}

				if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					d,
					strings.Join(d.Aliases(), ","),
					axes(d.Style()),
					cut,
					d.Policy(),
				); err != nil {
					return err
				}
			}

			return tw.Flush()
		},
	}
}

func axes(s plot.Style) string {
	name := func(t plot.AxisType) string {
		if t == "" {
			return string(plot.Linear)
		}
		return string(t)
	}

	return name(s.XType) + "/" + name(s.YType)
}
