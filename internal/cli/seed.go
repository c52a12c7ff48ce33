package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jaideep25/Pokedex/internal/app"
)

func newSeedCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the lookup database from the API or a YAML file",
		Long: "Without --file, lists every pokemon, version and move name from the API.\n" +
			"With --file, reads a YAML document of display names keyed by category.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			var n int
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				n, err = app.SeedFromYAML(cmd.Context(), f, a.Lookup)
				if err != nil {
					return fmt.Errorf("seed %s: %w", file, err)
				}
			} else {
				n, err = app.SeedFromAPI(cmd.Context(), a.Client, a.Lookup, a.Log)
				if err != nil {
					return fmt.Errorf("seed from api: %w", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d records into %s\n", n, a.Config.LookupDBPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML seed file")
	return cmd
}
