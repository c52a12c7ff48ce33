package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RateLimit  float64
	CacheSize  int
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client fetches and decodes API records. It is safe for concurrent use.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
	cache   *lru.Cache[string, []byte]
	limiter *adaptiveLimiter
	retry   retryConfig
	log     zerolog.Logger
}

// New returns a Client for opts.BaseURL.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("pokeapi: base url is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 512
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}

	cache, err := lru.New[string, []byte](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("pokeapi: cache: %w", err)
	}

	return &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTPClient,
		timeout: opts.Timeout,
		cache:   cache,
		limiter: newAdaptiveLimiter(opts.RateLimit),
		retry:   defaultRetryConfig(opts.Retries),
		log:     opts.Logger.With().Str("component", "pokeapi").Logger(),
	}, nil
}

// Fetch retrieves and decodes one record.
func (c *Client) Fetch(ctx context.Context, req Request) (Record, error) {
	url := req.path(c.base)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req, err)
	}

	rec, err := Decode(req.Type, body)
	if err != nil {
		c.cache.Remove(url)
		return nil, fmt.Errorf("fetch %s: %w", req, err)
	}
	if e, ok := rec.(*Encounters); ok && len(req.Params) > 0 {
		e.PokemonID = req.Params[0]
	}
	return rec, nil
}

// List returns every resource name of an endpoint, for seeding the lookup store.
func (c *Client) List(ctx context.Context, t ResourceType) ([]NamedResource, error) {
	url := fmt.Sprintf("%s/%s/?limit=100000", c.base, t)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t, err)
	}

	var page struct {
		Results []NamedResource `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("list %s: %w: %v", t, ErrMalformed, err)
	}
	return page.Results, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if body, ok := c.cache.Get(url); ok {
		return body, nil
	}

	var body []byte
	err := withRetry(ctx, c.log, c.limiter, c.retry, func() error {
		b, err := c.do(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.Add(url, body)
	return body, nil
}

func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Str("url", url).Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, URL: url}
	}
	return body, nil
}
