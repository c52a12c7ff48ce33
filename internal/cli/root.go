// Package cli implements the pokedex command-line tool: run commands
// locally, seed the lookup database, inspect history and serve the HTTP API.
package cli

import (
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Jaideep25/Pokedex/internal/app"
	"github.com/Jaideep25/Pokedex/internal/config"
	"github.com/Jaideep25/Pokedex/internal/logging"
)

type options struct {
	json     bool
	logLevel string
	scope    string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "pokedex",
		Short:         "Pokedex command core",
		Long:          "Run pokedex commands from a terminal, seed the lookup database and serve the HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "Print JSON instead of text")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override LOG_LEVEL")
	root.PersistentFlags().StringVar(&opts.scope, "scope", "cli", "History scope for recorded commands")

	root.AddCommand(
		newQueryCmd(opts),
		newCommandsCmd(opts),
		newSeedCmd(opts),
		newHistoryCmd(opts),
		newStatsCmd(opts),
		newServeCmd(opts),
		newDocsCmd(opts),
	)
	return root
}

func (o *options) logger(cfg *config.Config) zerolog.Logger {
	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	return logging.New(logging.Options{Level: level, File: cfg.LogFile})
}

// openApp loads the configuration and wires the services. The caller closes
// the returned app.
func (o *options) openApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, o.logger(cfg))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
