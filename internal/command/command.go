// Package command is the command core: contracts, the per-invocation
// pipeline, middleware, the alias registry and the dispatcher feeding it.
// Transports (Discord, CLI, HTTP) only ever see a *response.Response.
package command

import (
	"context"
	"time"

	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/response"
)

// Command is one bot command.
type Command interface {
	Contract() *Contract
	RequiredServices() []ServiceType
	Execute(ctx context.Context, inv *Invocation) *response.Response
}

// State is a step of the invocation state machine.
type State int

const (
	StateReceived State = iota
	StateValidating
	StateInvalid
	StateFetching
	StateFetchFailed
	StateFormatting
	StateReplyOK
	StateReplyError
)

var stateNames = map[State]string{
	StateReceived:    "RECEIVED",
	StateValidating:  "VALIDATING",
	StateInvalid:     "INVALID",
	StateFetching:    "FETCHING",
	StateFetchFailed: "FETCH_FAILED",
	StateFormatting:  "FORMATTING",
	StateReplyOK:     "REPLY_OK",
	StateReplyError:  "REPLY_ERROR",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == StateReplyOK || s == StateReplyError
}

var transitions = map[State][]State{
	StateReceived:    {StateValidating, StateReplyError},
	StateValidating:  {StateInvalid, StateFetching, StateReplyError},
	StateInvalid:     {StateReplyError},
	StateFetching:    {StateFetchFailed, StateFormatting, StateReplyError},
	StateFetchFailed: {StateReplyError},
	StateFormatting:  {StateReplyOK, StateReplyError},
}

// Invocation is one handled message. It lives for a single command execution.
type Invocation struct {
	ID      string
	Command string
	Alias   string
	Input   *input.Input

	ScopeID   string
	ChannelID string
	UserID    string
	Username  string

	Received time.Time
	trace    []State
}

func newInvocation(id string) *Invocation {
	return &Invocation{ID: id, Received: time.Now(), trace: []State{StateReceived}}
}

// State is the current state.
func (inv *Invocation) State() State {
	return inv.trace[len(inv.trace)-1]
}

// Trace lists every state passed through, in order.
func (inv *Invocation) Trace() []State {
	return append([]State(nil), inv.trace...)
}

// advance moves to next. Leaving a terminal state or taking an undeclared
// edge is a programming error.
func (inv *Invocation) advance(next State) {
	cur := inv.State()
	for _, allowed := range transitions[cur] {
		if allowed == next {
			inv.trace = append(inv.trace, next)
			return
		}
	}
	panic("invocation " + inv.ID + ": illegal transition " + cur.String() + " -> " + next.String())
}

// language is the reply language, English before validation has run.
func (inv *Invocation) language() locale.Language {
	if inv.Input == nil || inv.Input.Language == "" {
		return locale.English
	}
	return inv.Input.Language
}

func (inv *Invocation) tokens() []string {
	if inv.Input == nil {
		return nil
	}
	return inv.Input.Tokens
}

// fail jumps to REPLY_ERROR from any non-terminal state.
func (inv *Invocation) fail() {
	if !inv.State().Terminal() {
		inv.trace = append(inv.trace, StateReplyError)
	}
}

// Wrapped is a command whose Execute is replaced by middleware. The inner
// command stays reachable through Unwrap.
type Wrapped struct {
	Inner Command
	Run   func(ctx context.Context, inv *Invocation) *response.Response
}

func (w *Wrapped) Contract() *Contract             { return w.Inner.Contract() }
func (w *Wrapped) RequiredServices() []ServiceType { return w.Inner.RequiredServices() }
func (w *Wrapped) Unwrap() Command                 { return w.Inner }

func (w *Wrapped) Execute(ctx context.Context, inv *Invocation) *response.Response {
	if w.Run != nil {
		return w.Run(ctx, inv)
	}
	return w.Inner.Execute(ctx, inv)
}

// Wrap returns c with its Execute replaced by run.
func Wrap(c Command, run func(ctx context.Context, inv *Invocation) *response.Response) Command {
	return &Wrapped{Inner: c, Run: run}
}

// Root unwraps c down to the command that was registered.
func Root(c Command) Command {
	for {
		w, ok := c.(*Wrapped)
		if !ok {
			return c
		}
		c = w.Unwrap()
	}
}
