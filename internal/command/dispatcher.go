package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Jaideep25/Pokedex/internal/format"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/response"
	"github.com/Jaideep25/Pokedex/internal/textutil"
)

// Request is one message addressed to the bot, stripped of its prefix.
type Request struct {
	Text      string
	ScopeID   string
	ChannelID string
	UserID    string
	Username  string
}

// Dispatcher routes a message to its command: alias lookup, validation,
// then execution.
type Dispatcher struct {
	registry    *Registry
	validator   *input.Validator
	catalog     *locale.Catalog
	defaultLang locale.Language
	history     HistoryStore
	log         zerolog.Logger
}

// NewDispatcher needs the lookup store and the catalog; the spell checker
// is optional.
func NewDispatcher(r *Registry, svc *Services, defaultLang locale.Language) (*Dispatcher, error) {
	if err := svc.Require(ServiceLookup, ServiceLocale); err != nil {
		return nil, err
	}
	if defaultLang == "" {
		defaultLang = locale.English
	}

	var corrector input.Corrector
	if svc.Has(ServiceSpellChecker) {
		corrector = svc.SpellChecker
	}
	var history HistoryStore
	if svc.Has(ServiceHistory) {
		history = svc.History
	}
	return &Dispatcher{
		registry:    r,
		validator:   input.NewValidator(input.NewResolver(svc.Lookup, corrector)),
		catalog:     svc.Locale,
		defaultLang: defaultLang,
		history:     history,
		log:         svc.Logger.With().Str("component", "dispatcher").Logger(),
	}, nil
}

func (d *Dispatcher) Registry() *Registry { return d.registry }

// SplitCommand separates "dex mew, red" into "dex" and "mew, red".
func SplitCommand(text string) (name, body string) {
	text = strings.TrimSpace(text)
	i := strings.IndexFunc(text, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' })
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i+1:])
}

// Dispatch handles req. ErrUnknownCommand is returned when no command
// answers to the name; every other outcome is a Response.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*response.Response, *Invocation, error) {
	name, body := SplitCommand(req.Text)
	cmd, lang, ok := d.registry.Get(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if lang == "" {
		lang = d.defaultLang
	}

	inv := newInvocation(uuid.NewString())
	inv.Command = cmd.Contract().Name
	inv.Alias = strings.ToLower(name)
	inv.ScopeID = req.ScopeID
	inv.ChannelID = req.ChannelID
	inv.UserID = req.UserID
	inv.Username = req.Username

	inv.advance(StateValidating)
	tokens := textutil.Tokens(body)
	in, code, err := d.validate(ctx, tokens, cmd.Contract(), lang)
	if err != nil {
		inv.Input = &input.Input{Tokens: tokens, Language: lang}
		inv.fail()
		terr := NewTechnicalError(code, err)
		d.log.Error().Err(terr.Err).Str("code", terr.Code).Str("command", inv.Command).Msg("validation failed")

		resp := format.Technical(d.catalog, lang, terr.Code)
		logHandled(d.log, inv.Command, inv, resp)
		recordHistory(d.history, d.log, inv.Command, inv, resp)
		return resp, inv, nil
	}
	inv.Input = in

	return cmd.Execute(ctx, inv), inv, nil
}

// validate runs the validator, turning a panic in the store or the spell
// checker into an error carrying CodePanic.
func (d *Dispatcher) validate(ctx context.Context, tokens []string, contract *Contract, lang locale.Language) (in *input.Input, code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			in, code, err = nil, CodePanic, fmt.Errorf("panic: %v", r)
		}
	}()
	in, err = d.validator.Validate(ctx, tokens, contract, lang)
	return in, CodeValidation, err
}
