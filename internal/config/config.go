// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNoDiscordToken is returned by RequireDiscord when DISCORD_TOKEN is unset.
var ErrNoDiscordToken = errors.New("DISCORD_TOKEN is not set")

type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`

	APIBaseURL       string        `env:"POKEAPI_BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	FetchConcurrency int           `env:"FETCH_CONCURRENCY" envDefault:"4"`
	FetchRetries     int           `env:"FETCH_RETRIES" envDefault:"3"`
	RateLimit        float64       `env:"POKEAPI_RATE_LIMIT" envDefault:"10"`
	CacheSize        int           `env:"CACHE_SIZE" envDefault:"512"`

	LookupDBPath string `env:"LOOKUP_DB_PATH" envDefault:"data/lookup.db"`
	StoragePath  string `env:"STORAGE_PATH" envDefault:"data/datastore.json"`

	HistoryRetention time.Duration `env:"HISTORY_RETENTION" envDefault:"720h"`

	SpellMaxDistance int    `env:"SPELLCHECK_MAX_DISTANCE" envDefault:"2"`
	DefaultLanguage  string `env:"DEFAULT_LANGUAGE" envDefault:"en"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
	HTTPAddr string `env:"HTTP_ADDR"`
}

// Load reads an optional .env file and parses the environment into a Config.
// A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequireDiscord reports whether the config can start the Discord bot.
func (c *Config) RequireDiscord() error {
	if c.DiscordToken == "" {
		return ErrNoDiscordToken
	}
	return nil
}

func (c *Config) validate() error {
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be positive, got %d", c.FetchConcurrency)
	}
	if c.FetchRetries < 1 {
		return fmt.Errorf("FETCH_RETRIES must be positive, got %d", c.FetchRetries)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("POKEAPI_RATE_LIMIT must be positive, got %v", c.RateLimit)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("CACHE_SIZE must be positive, got %d", c.CacheSize)
	}
	return nil
}
