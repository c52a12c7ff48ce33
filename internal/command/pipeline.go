package command

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Jaideep25/Pokedex/internal/fetch"
	"github.com/Jaideep25/Pokedex/internal/format"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/response"
)

// pipeline drives one command from a validated Input to a Response:
// INVALID, or FETCHING then FORMATTING, ending in REPLY_OK or REPLY_ERROR.
type pipeline struct {
	contract     *Contract
	formatter    format.Formatter
	orchestrator *fetch.Orchestrator
	catalog      *locale.Catalog
	code         string
	log          zerolog.Logger

	// accepts decides whether the input may proceed to fetching; nil means
	// only fully valid input does.
	accepts func(in *input.Input) bool
	// gather runs the fetch rounds of the command.
	gather func(ctx context.Context, in *input.Input) (*fetch.Bundle, error)
}

func (p *pipeline) Contract() *Contract { return p.contract }

func (p *pipeline) Execute(ctx context.Context, inv *Invocation) *response.Response {
	in := inv.Input
	if in == nil {
		inv.fail()
		return format.Technical(p.catalog, locale.English, NewTechnicalError(p.code, errors.New("no input")).Code)
	}

	accepted := in.Valid()
	if p.accepts != nil {
		accepted = p.accepts(in)
	}
	if !accepted {
		inv.advance(StateInvalid)
		inv.advance(StateReplyError)
		return p.formatter.InvalidInput(in)
	}

	inv.advance(StateFetching)
	b, err := p.gather(ctx, in)
	if err != nil {
		inv.advance(StateFetchFailed)
		inv.advance(StateReplyError)
		terr := NewTechnicalError(p.code, err)
		p.log.Error().Err(terr.Err).Str("code", terr.Code).Str("invocation", inv.ID).Msg("fetch failed")
		return format.FetchFailure(p.catalog, in.Language, terr.Code)
	}

	inv.advance(StateFormatting)
	resp, err := p.formatter.Format(in, b)
	if err != nil {
		inv.advance(StateReplyError)
		terr := NewTechnicalError(p.code, err)
		p.log.Error().Err(terr.Err).Str("code", terr.Code).Str("invocation", inv.ID).Msg("format failed")
		return format.Technical(p.catalog, in.Language, terr.Code)
	}

	inv.advance(StateReplyOK)
	return resp
}

// newPipeline checks the declared services and builds the shared parts.
func newPipeline(svc *Services, contract *Contract, required []ServiceType, code string) (*pipeline, error) {
	if err := svc.Require(required...); err != nil {
		return nil, err
	}
	return &pipeline{
		contract:     contract,
		orchestrator: fetch.New(svc.PokeAPI, svc.FetchConcurrency, svc.Logger),
		catalog:      svc.Locale,
		code:         code,
		log:          svc.Logger.With().Str("command", contract.Name).Logger(),
	}, nil
}
