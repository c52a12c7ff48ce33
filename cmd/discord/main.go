// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Jaideep25/Pokedex/internal/app"
	"github.com/Jaideep25/Pokedex/internal/config"
	"github.com/Jaideep25/Pokedex/internal/discord"
	"github.com/Jaideep25/Pokedex/internal/httpapi"
	"github.com/Jaideep25/Pokedex/internal/logging"
	"github.com/Jaideep25/Pokedex/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(logging.New(logging.Options{}), err, "failed to load config")
	}
	log := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	log.Info().Msg("starting pokedex bot")

	if err := cfg.RequireDiscord(); err != nil {
		fatal(log, err, "cannot start bot")
	}

	a, err := app.New(cfg, log)
	if err != nil {
		fatal(log, err, "failed to initialize")
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		storage.RunHistoryPruner(ctx, a.History, cfg.HistoryRetention, time.Hour, log)
		return nil
	})
	g.Go(func() error {
		return discord.New(a.Dispatcher, cfg.CommandPrefix, log).Run(ctx, cfg.DiscordToken)
	})
	if cfg.HTTPAddr != "" {
		g.Go(func() error {
			return httpapi.New(a.Dispatcher, a.Registry, a.History, log).ListenAndServe(ctx, cfg.HTTPAddr)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("bot stopped with error")
		a.Close()
		os.Exit(1)
	}
	log.Info().Msg("shut down cleanly")
}

func fatal(log zerolog.Logger, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	os.Exit(1)
}
