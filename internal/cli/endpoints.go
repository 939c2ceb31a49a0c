package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/artpar/apitester/internal/core"
	"github.com/spf13/cobra"
)

// NewEndpointsCommand creates the endpoints command.
func NewEndpointsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints [METHOD]",
		Short: "List the endpoints offered for each method",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			methods := core.Methods()
			if len(args) == 1 {
				m, err := core.ParseMethod(args[0])
				if err != nil {
					return err
				}
				methods = []core.Method{m}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "METHOD\tPATH\tLABEL")
			for _, m := range methods {
				for _, opt := range core.EndpointsFor(m) {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", m, opt.Path, opt.Label)
				}
			}
			return tw.Flush()
		},
	}
}
