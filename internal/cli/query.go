package cli

import (
	"errors"
	"fmt"
	"io"
	"os/user"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jaideep25/Pokedex/internal/command"
	"github.com/Jaideep25/Pokedex/internal/response"
)

func newQueryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "query <command> <arguments>",
		Short:   "Run one command and print the reply",
		Example: "  pokedex query dex mew, red\n  pokedex query learn mew, psychic, surf",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			req := command.Request{
				Text:      strings.Join(args, " "),
				ScopeID:   opts.scope,
				ChannelID: opts.scope,
			}
			if u, err := user.Current(); err == nil {
				req.UserID = u.Uid
				req.Username = u.Username
			}

			resp, inv, err := a.Dispatcher.Dispatch(cmd.Context(), req)
			if errors.Is(err, command.ErrUnknownCommand) {
				return fmt.Errorf("%w (see `pokedex commands`)", err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.json {
				return printJSON(out, struct {
					*response.Response
					InvocationID string `json:"invocation_id"`
				}{resp, inv.ID})
			}
			writeResponse(out, resp)
			return nil
		},
	}
}

// writeResponse prints a reply as plain text: the lines, then the embed.
func writeResponse(w io.Writer, resp *response.Response) {
	for _, l := range resp.Lines {
		fmt.Fprintln(w, l)
	}
	e := resp.Embed
	if e == nil {
		return
	}
	if e.Title != "" {
		fmt.Fprintf(w, "[%s]\n", e.Title)
	}
	if e.Description != "" {
		fmt.Fprintln(w, e.Description)
	}
	for _, f := range e.Fields {
		fmt.Fprintf(w, "%s: %s\n", f.Name, strings.TrimRight(f.Value, "\n"))
	}
	if e.Footer != "" {
		fmt.Fprintf(w, "(%s)\n", e.Footer)
	}
}
