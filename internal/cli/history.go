package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Jaideep25/Pokedex/internal/lookup"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var wipe bool
	cmd := &cobra.Command{
		Use:   "history [scope]",
		Short: "Show the recorded invocations of a scope",
		Long:  "Shows the last invocations recorded for a scope (a guild, a DM channel or the CLI). Defaults to --scope.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := opts.scope
			if len(args) == 1 {
				scope = args[0]
			}

			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if wipe {
				if err := a.History.Clear(scope); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cleared history of %s\n", scope)
				return nil
			}

			records, err := a.History.History(scope)
			if err != nil {
				return err
			}
			if opts.json {
				return printJSON(cmd.OutOrStdout(), records)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"When", "Command", "Arguments", "Lang", "Result", "Code", "Took"})
			for _, r := range records {
				tw.AppendRow(table.Row{
					r.Datetime.Local().Format(time.DateTime),
					r.Alias,
					strings.Join(r.Arguments, ", "),
					r.Language,
					r.Kind,
					r.Code,
					r.Duration.Round(time.Millisecond),
				})
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&wipe, "clear", false, "Forget the history of the scope")
	return cmd
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count the lookup records and describe the history store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			counts, err := a.Lookup.Count(cmd.Context())
			if err != nil {
				return err
			}
			scopes := a.History.Scopes()
			store := a.History.Stats()
			if opts.json {
				byName := make(map[string]int, len(counts))
				for c, n := range counts {
					byName[c.Slug()] = n
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"lookup":         byName,
					"history_scopes": len(scopes),
					"datastore":      store,
				})
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"Category", "Records"})
			for _, c := range lookup.Categories {
				tw.AppendRow(table.Row{c, counts[c]})
			}
			tw.AppendFooter(table.Row{"History scopes", len(scopes)})
			tw.Render()

			fmt.Fprintf(cmd.OutOrStdout(), "datastore %s: %d keys, %d bytes in memory, saved=%t\n",
				store.FilePath, store.Keys, store.MemorySize, store.Saved)
			return nil
		},
	}
}
