package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jaideep25/Pokedex/internal/docs"
)

func newDocsCmd(opts *options) *cobra.Command {
	var tmplPath, outPath string
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Regenerate README.md from the registered commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if outPath == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), docs.CommandSections(a.Registry, a.Config.CommandPrefix))
				return err
			}
			if err := docs.UpdateReadme(a.Registry, a.Config.CommandPrefix, tmplPath, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&tmplPath, "template", "", "README template (default built-in)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "README.md", "Output file, - for the command sections on stdout")
	return cmd
}
