package command

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jaideep25/Pokedex/internal/format"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/response"
	"github.com/Jaideep25/Pokedex/internal/storage"
)

// Middleware wraps a command; the wrapped value is still a Command.
type Middleware func(Command) Command

// Apply applies mws in order; the first one ends up innermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}

// WithRecovery turns a panic inside Execute into a technical-error reply.
func WithRecovery(catalog *locale.Catalog, log zerolog.Logger) Middleware {
	return func(c Command) Command {
		return Wrap(c, func(ctx context.Context, inv *Invocation) (resp *response.Response) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				terr := NewTechnicalError(CodePanic, fmt.Errorf("panic: %v", r))
				log.Error().Err(terr.Err).Str("code", terr.Code).Str("command", c.Contract().Name).
					Str("invocation", inv.ID).Msg("command panicked")
				inv.fail()

				resp = format.Technical(catalog, inv.language(), terr.Code)
			}()
			return c.Execute(ctx, inv)
		})
	}
}

// WithCommandLogger logs one line per finished invocation.
func WithCommandLogger(log zerolog.Logger) Middleware {
	return func(c Command) Command {
		return Wrap(c, func(ctx context.Context, inv *Invocation) *response.Response {
			resp := c.Execute(ctx, inv)
			logHandled(log, c.Contract().Name, inv, resp)
			return resp
		})
	}
}

func logHandled(log zerolog.Logger, name string, inv *Invocation, resp *response.Response) {
	ev := log.Info()
	if resp.IsError {
		ev = log.Warn()
	}
	ev.Str("command", name).
		Str("alias", inv.Alias).
		Str("invocation", inv.ID).
		Str("scope", inv.ScopeID).
		Str("user", inv.Username).
		Str("language", string(inv.language())).
		Stringer("state", inv.State()).
		Stringer("kind", resp.Kind).
		Str("code", resp.Code).
		Dur("took", time.Since(inv.Received)).
		Msg("command handled")
}

// WithHistory appends every finished invocation to the scope's history.
// A storage failure is logged and never changes the reply.
func WithHistory(store HistoryStore, log zerolog.Logger) Middleware {
	return func(c Command) Command {
		return Wrap(c, func(ctx context.Context, inv *Invocation) *response.Response {
			resp := c.Execute(ctx, inv)
			recordHistory(store, log, c.Contract().Name, inv, resp)
			return resp
		})
	}
}

func recordHistory(store HistoryStore, log zerolog.Logger, name string, inv *Invocation, resp *response.Response) {
	if store == nil || inv.ScopeID == "" {
		return
	}
	rec := storage.InvocationRecord{
		ID:        inv.ID,
		Command:   name,
		Alias:     inv.Alias,
		UserID:    inv.UserID,
		Username:  inv.Username,
		ChannelID: inv.ChannelID,
		Arguments: inv.tokens(),
		Language:  string(inv.language()),
		Kind:      resp.Kind.String(),
		Code:      resp.Code,
		Duration:  time.Since(inv.Received),
		Datetime:  inv.Received,
	}
	if err := store.AppendInvocation(inv.ScopeID, rec); err != nil {
		log.Warn().Err(err).Str("command", name).Str("scope", inv.ScopeID).Msg("failed to record invocation")
	}
}
