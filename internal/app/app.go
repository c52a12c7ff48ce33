// Package app wires the long-lived services from configuration. Both the
// bot and the CLI start from here.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Jaideep25/Pokedex/internal/color"
	"github.com/Jaideep25/Pokedex/internal/command"
	"github.com/Jaideep25/Pokedex/internal/config"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
	"github.com/Jaideep25/Pokedex/internal/spellcheck"
	"github.com/Jaideep25/Pokedex/internal/storage"
)

type App struct {
	Config     *config.Config
	Log        zerolog.Logger
	Lookup     *lookup.SQLiteStore
	Spell      *spellcheck.Checker
	Client     *pokeapi.Client
	History    *storage.Storage
	Services   *command.Services
	Registry   *command.Registry
	Dispatcher *command.Dispatcher
}

// New opens the lookup database and history store and builds the command
// registry. Close releases both files.
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}
	if err := a.open(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) open() error {
	cfg := a.Config
	for _, p := range []string{cfg.LookupDBPath, cfg.StoragePath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	var err error
	a.Lookup, err = lookup.OpenSQLite(cfg.LookupDBPath)
	if err != nil {
		return err
	}
	a.History, err = storage.New(cfg.StoragePath, a.Log)
	if err != nil {
		return err
	}
	a.Client, err = pokeapi.New(pokeapi.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.FetchTimeout,
		Retries:   cfg.FetchRetries,
		RateLimit: cfg.RateLimit,
		CacheSize: cfg.CacheSize,
		Logger:    a.Log,
	})
	if err != nil {
		return err
	}

	catalog, err := locale.LoadDefault()
	if err != nil {
		return err
	}
	a.Spell = spellcheck.New(a.Lookup, cfg.SpellMaxDistance)

	a.Services = &command.Services{
		Lookup:           a.Lookup,
		SpellChecker:     a.Spell,
		PokeAPI:          a.Client,
		Color:            color.New(),
		Locale:           catalog,
		History:          a.History,
		FetchConcurrency: cfg.FetchConcurrency,
		Logger:           a.Log,
	}
	a.Registry, err = command.NewDefault(a.Services, a.Log)
	if err != nil {
		return err
	}
	a.Dispatcher, err = command.NewDispatcher(a.Registry, a.Services, locale.ParseLanguage(cfg.DefaultLanguage))
	return err
}

func (a *App) Close() error {
	var errs []error
	if a.History != nil {
		errs = append(errs, a.History.Close())
	}
	if a.Lookup != nil {
		errs = append(errs, a.Lookup.Close())
	}
	return errors.Join(errs...)
}
