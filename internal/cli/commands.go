package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Jaideep25/Pokedex/internal/command"
)

func newCommandsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the available commands and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			all := a.Registry.All()
			contracts := make([]*command.Contract, 0, len(all))
			for _, c := range all {
				contracts = append(contracts, c.Contract())
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), contracts)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Command", "Usage", "Category", "Aliases"})
			for _, c := range contracts {
				tw.AppendRow(table.Row{c.Name, c.Usage(a.Config.CommandPrefix), c.Category, strings.Join(c.AliasNames(), ", ")})
			}
			tw.Render()
			return nil
		},
	}
}
