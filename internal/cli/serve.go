package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Jaideep25/Pokedex/internal/httpapi"
	"github.com/Jaideep25/Pokedex/internal/storage"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API without connecting to Discord",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()
			if addr == "" {
				addr = a.Config.HTTPAddr
			}
			if addr == "" {
				addr = ":8080"
			}
			gin.SetMode(gin.ReleaseMode)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				storage.RunHistoryPruner(ctx, a.History, a.Config.HistoryRetention, time.Hour, a.Log)
				return nil
			})
			g.Go(func() error {
				return httpapi.New(a.Dispatcher, a.Registry, a.History, a.Log).ListenAndServe(ctx, addr)
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default HTTP_ADDR, then :8080)")
	return cmd
}
