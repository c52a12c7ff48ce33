// Package fetch runs the data requests of one command invocation in rounds.
// The requests of a round run concurrently and join before the next round,
// whose requests are built from what earlier rounds fetched.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Jaideep25/Pokedex/internal/pokeapi"
)

// Fetcher retrieves one record. *pokeapi.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, req pokeapi.Request) (pokeapi.Record, error)
}

// Error is the single failure reported for a round.
type Error struct {
	Round   int
	Request pokeapi.Request
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch round %d: %s: %v", e.Round, e.Request, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Builder derives the requests of a dependent round from the bundle.
type Builder func(b *Bundle) ([]pokeapi.Request, error)

// Orchestrator executes rounds against a Fetcher. It holds no per-invocation
// state and can be shared.
type Orchestrator struct {
	client      Fetcher
	concurrency int
	log         zerolog.Logger
}

// New returns an Orchestrator running at most concurrency fetches of a round at once.
func New(client Fetcher, concurrency int, log zerolog.Logger) *Orchestrator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Orchestrator{
		client:      client,
		concurrency: concurrency,
		log:         log.With().Str("component", "fetch").Logger(),
	}
}

// Fetch runs the first round into a new bundle.
func (o *Orchestrator) Fetch(ctx context.Context, reqs []pokeapi.Request, setOnce ...pokeapi.ResourceType) (*Bundle, error) {
	b := NewBundle(setOnce...)
	if err := o.round(ctx, b, reqs); err != nil {
		return nil, err
	}
	return b, nil
}

// FetchDependent runs a round built from b. Every type in requires must be
// in b before build is called; the round is not issued otherwise.
func (o *Orchestrator) FetchDependent(ctx context.Context, b *Bundle, requires []pokeapi.ResourceType, build Builder) error {
	for _, t := range requires {
		if !b.Has(t) {
			return &Error{Round: b.rounds + 1, Err: fmt.Errorf("%w: dependency %s", ErrMissing, t)}
		}
	}

	reqs, err := build(b)
	if err != nil {
		return &Error{Round: b.rounds + 1, Err: err}
	}
	return o.round(ctx, b, reqs)
}

// round fetches reqs concurrently. The first failure cancels the rest and
// nothing of a failed round reaches the bundle.
func (o *Orchestrator) round(ctx context.Context, b *Bundle, reqs []pokeapi.Request) error {
	n := b.rounds + 1
	start := time.Now()

	results := make([]pokeapi.Record, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			rec, err := o.client.Fetch(gctx, req)
			if err != nil {
				return &Error{Round: n, Request: req, Err: err}
			}
			results[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.log.Debug().Err(err).Int("round", n).Msg("fetch round failed")
		return err
	}

	for i, rec := range results {
		if err := b.Add(rec); err != nil {
			return &Error{Round: n, Request: reqs[i], Err: err}
		}
	}
	b.rounds = n

	o.log.Debug().Int("round", n).Int("requests", len(reqs)).Dur("took", time.Since(start)).Msg("fetch round done")
	return nil
}
