package command

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaideep25/Pokedex/internal/color"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
	"github.com/Jaideep25/Pokedex/internal/pokeapi/pokeapitest"
	"github.com/Jaideep25/Pokedex/internal/response"
	"github.com/Jaideep25/Pokedex/internal/spellcheck"
	"github.com/Jaideep25/Pokedex/internal/storage"
)

type memoryHistory struct {
	mu      sync.Mutex
	records map[string][]storage.InvocationRecord
	err     error
}

func (h *memoryHistory) AppendInvocation(scope string, rec storage.InvocationRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	if h.records == nil {
		h.records = make(map[string][]storage.InvocationRecord)
	}
	h.records[scope] = append(h.records[scope], rec)
	return nil
}

func (h *memoryHistory) History(scope string) ([]storage.InvocationRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.records[scope], nil
}

func newStore() *lookup.Memory {
	return lookup.NewMemory(
		lookup.NewRecord(lookup.CategoryPokemon, "Mew", "mew"),
		lookup.NewRecord(lookup.CategoryPokemon, "Pikachu", "pikachu"),
		lookup.NewRecord(lookup.CategoryPokemon, "Kadabra", "kadabra"),
		lookup.NewRecord(lookup.CategoryVersion, "Red", "red"),
		lookup.NewRecord(lookup.CategoryVersion, "Emerald", "emerald"),
		lookup.NewRecord(lookup.CategoryVersion, "Fire Red", "fire-red"),
		lookup.NewRecord(lookup.CategoryMove, "Thunderbolt", "thunderbolt"),
		lookup.NewRecord(lookup.CategoryMove, "Surf", "surf"),
		lookup.NewRecord(lookup.CategoryMove, "Psychic", "psychic"),
	)
}

func newServices(t *testing.T, srv *pokeapitest.Server) *Services {
	t.Helper()
	client, err := pokeapi.New(pokeapi.Options{
		BaseURL:   srv.URL,
		Timeout:   2 * time.Second,
		Retries:   1,
		RateLimit: 1000,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)

	catalog, err := locale.LoadDefault()
	require.NoError(t, err)

	store := newStore()
	return &Services{
		Lookup:           store,
		SpellChecker:     spellcheck.New(store, 2),
		PokeAPI:          client,
		Color:            color.New(),
		Locale:           catalog,
		History:          &memoryHistory{},
		FetchConcurrency: 4,
		Logger:           zerolog.Nop(),
	}
}

func newDispatcher(t *testing.T, svc *Services) *Dispatcher {
	t.Helper()
	r, err := NewDefault(svc, zerolog.Nop())
	require.NoError(t, err)
	d, err := NewDispatcher(r, svc, locale.English)
	require.NoError(t, err)
	return d
}

func dispatch(t *testing.T, d *Dispatcher, text string) (*response.Response, *Invocation) {
	t.Helper()
	resp, inv, err := d.Dispatch(context.Background(), Request{Text: text, ScopeID: "guild-1", UserID: "u1", Username: "ash"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp, inv
}

func TestDex_EntryLookup(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, inv := dispatch(t, d, "dex mew, red")
	assert.False(t, resp.IsError)
	assert.Equal(t, response.KindOK, resp.Kind)
	assert.Contains(t, resp.Text(), "Mew")
	assert.Contains(t, resp.Text(), "#151")
	assert.Contains(t, resp.Text(), "Generation I")
	assert.Equal(t, []State{StateReceived, StateValidating, StateFetching, StateFormatting, StateReplyOK}, inv.Trace())

	// Species is derived from the pokemon and never requested before it.
	order := srv.Order()
	require.Len(t, order, 3)
	assert.Equal(t, "/pokemon-species/151/", order[2])
}

func TestDex_LocalizedAlias(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, inv := dispatch(t, d, "Entrée mew, red")
	assert.Equal(t, "dex", inv.Command)
	assert.Equal(t, locale.French, inv.Input.Language)
	assert.Equal(t, "**__Mew | #151 | Génération I__**", resp.Text())
	assert.Equal(t, "Rouge", resp.Embed.Title)
}

func TestDex_ArgumentNumber(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, inv := dispatch(t, d, "dex mew")
	assert.True(t, resp.IsError)
	assert.Equal(t, response.KindArgumentNumber, resp.Kind)
	assert.Contains(t, resp.Text(), "1 Pokemon and 1 Version")
	assert.Empty(t, inv.Input.Args)
	assert.Equal(t, []State{StateReceived, StateValidating, StateInvalid, StateReplyError}, inv.Trace())
	assert.Empty(t, srv.Order())
}

func TestDex_SpellingCorrected(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, inv := dispatch(t, d, "dex kadabbra, fire red")
	require.False(t, resp.IsError)

	arg := inv.Input.Arg(0)
	assert.True(t, arg.Corrected)
	assert.Equal(t, "kadabra", arg.RawInput)
	assert.Equal(t, "kadabbra", arg.Original)
	assert.Equal(t, "Showing results for Kadabra", resp.Embed.Footer)
}

func TestDex_InvalidArguments(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, _ := dispatch(t, d, "dex agumon, purple")
	assert.Equal(t, response.KindInvalidArgument, resp.Kind)
	assert.Equal(t, []string{
		"Could not process your request due to the following problem(s):",
		"\t\"agumon\" is not a recognized Pokemon",
		"\t\"purple\" is not a recognized Version",
	}, resp.Lines)
	assert.Empty(t, srv.Order())
}

func TestDex_FetchFailure(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	srv.Fail("/version/red/", http.StatusInternalServerError)
	d := newDispatcher(t, newServices(t, srv))

	resp, inv := dispatch(t, d, "dex mew, red")
	assert.True(t, resp.IsError)
	assert.Equal(t, response.KindFetchError, resp.Kind)
	assert.True(t, strings.HasPrefix(resp.Code, CodeDex+"-"), resp.Code)
	assert.Nil(t, resp.Embed)
	assert.Equal(t, []State{StateReceived, StateValidating, StateFetching, StateFetchFailed, StateReplyError}, inv.Trace())
	assert.Zero(t, srv.Hits("/pokemon-species/151/"))
}

func TestDex_SpeciesRoundFailure(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	srv.Fail("/pokemon-species/151/", http.StatusBadGateway)
	d := newDispatcher(t, newServices(t, srv))

	resp, inv := dispatch(t, d, "dex mew, red")
	assert.Equal(t, response.KindFetchError, resp.Kind)
	assert.True(t, strings.HasPrefix(resp.Code, CodeDex+"-"), resp.Code)
	assert.Nil(t, resp.Embed)
	assert.Contains(t, inv.Trace(), StateFetchFailed)
	assert.NotContains(t, inv.Trace(), StateFormatting)
	assert.Equal(t, 1, srv.Hits("/pokemon/mew/"))
}

func TestLearn_MethodRoundFailure(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	srv.Fail("/move-learn-method/machine/", http.StatusInternalServerError)
	d := newDispatcher(t, newServices(t, srv))

	resp, inv := dispatch(t, d, "learn mew, thunderbolt, surf")
	assert.Equal(t, response.KindFetchError, resp.Kind)
	assert.True(t, strings.HasPrefix(resp.Code, CodeLearn+"-"), resp.Code)
	assert.Nil(t, resp.Embed)
	assert.Equal(t, []State{StateReceived, StateValidating, StateFetching, StateFetchFailed, StateReplyError}, inv.Trace())
	assert.Equal(t, 1, srv.Hits("/pokemon-species/151/"))
}

func TestLocation_NoEncounterInVersion(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, inv := dispatch(t, d, "location pikachu, emerald")
	assert.False(t, resp.IsError)
	assert.Equal(t, response.KindNoMatch, resp.Kind)
	assert.Equal(t, "Pikachu cannot be found by means of a normal encounter in Emerald version", resp.Text())
	assert.Equal(t, StateReplyOK, inv.State())
	assert.Equal(t, 1, srv.Hits("/pokemon/25/encounters"))
}

func TestLocation_Found(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, _ := dispatch(t, d, "loc pikachu, red")
	require.False(t, resp.IsError)
	assert.Equal(t, "**Pikachu** can be found in **2** location(s) in **Red** version", resp.Text())
	require.Len(t, resp.Embed.Fields, 2)
	assert.Equal(t, "Viridian Forest Area", resp.Embed.Fields[0].Name)
	assert.Equal(t, "Kanto Power Plant Area", resp.Embed.Fields[1].Name)
}

func TestLearn_MixedMoves(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, inv := dispatch(t, d, "learn mew, thunderbolt, qwertyuiop, surf")
	require.False(t, resp.IsError, resp.Text())
	assert.Equal(t, StateReplyOK, inv.State())
	assert.Equal(t, "**__Mew | #151 | Generation I__**", resp.Text())

	require.Len(t, resp.Embed.Fields, 3)
	assert.Equal(t, response.Field{Name: "Thunderbolt", Value: "*able via*:\n  Machine\n", Inline: true}, resp.Embed.Fields[0])
	assert.Equal(t, response.Field{Name: "Qwertyuiop", Value: "not recognized", Inline: true}, resp.Embed.Fields[1])
	assert.Equal(t, response.Field{Name: "Surf", Value: "*not able*", Inline: true}, resp.Embed.Fields[2])

	// Only the methods the requested moves use are fetched.
	assert.Equal(t, 1, srv.Hits("/move-learn-method/machine/"))
	assert.Zero(t, srv.Hits("/move-learn-method/level-up/"))
}

func TestLearn_InvalidPokemon(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, _ := dispatch(t, d, "lernen agumon, surf")
	assert.Equal(t, response.KindInvalidArgument, resp.Kind)
	assert.Equal(t, "\"agumon\" is not a recognized Pokemon in German", resp.Text())
	assert.Empty(t, srv.Order())
}

func TestLearn_TooManyMoves(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	resp, _ := dispatch(t, d, "learn mew, surf, surf, surf, surf, surf")
	assert.Equal(t, response.KindArgumentNumber, resp.Kind)
	assert.Contains(t, resp.Text(), "1 to 4 Moves")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	d := newDispatcher(t, newServices(t, srv))

	_, _, err := d.Dispatch(context.Background(), Request{Text: "evolve mew"})
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestHistory_Recorded(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	svc := newServices(t, srv)
	d := newDispatcher(t, svc)

	dispatch(t, d, "dex mew, red")
	dispatch(t, d, "dex mew")

	h, err := svc.History.History("guild-1")
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, "dex", h[0].Command)
	assert.Equal(t, []string{"mew", "red"}, h[0].Arguments)
	assert.Equal(t, "ok", h[0].Kind)
	assert.Equal(t, "argument_number", h[1].Kind)
}

func TestHistory_FailureDoesNotChangeReply(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	svc := newServices(t, srv)
	svc.History = &memoryHistory{err: errors.New("disk full")}
	d := newDispatcher(t, svc)

	resp, _ := dispatch(t, d, "dex mew, red")
	assert.False(t, resp.IsError)
}

func TestNewDex_MissingService(t *testing.T) {
	_, err := NewDex(&Services{Color: color.New()})
	require.ErrorIs(t, err, ErrMissingService)
	assert.Contains(t, err.Error(), "pokeapi")
	assert.Contains(t, err.Error(), "locale")

	_, err = NewDispatcher(NewRegistry(), &Services{}, locale.English)
	require.ErrorIs(t, err, ErrMissingService)
}

type explodingCorrector struct{}

func (explodingCorrector) Correct(context.Context, lookup.Category, string) (string, error) {
	panic("corrector blew up")
}

func TestDispatch_ValidationPanicRecovered(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	svc := newServices(t, srv)
	svc.SpellChecker = explodingCorrector{}
	d := newDispatcher(t, svc)

	var (
		resp *response.Response
		inv  *Invocation
		err  error
	)
	require.NotPanics(t, func() {
		resp, inv, err = d.Dispatch(context.Background(), Request{Text: "dex agumon, red", ScopeID: "guild-1"})
	})
	require.NoError(t, err)
	assert.Equal(t, response.KindTechnical, resp.Kind)
	assert.True(t, resp.IsError)
	assert.True(t, strings.HasPrefix(resp.Code, CodePanic+"-"), resp.Code)
	assert.Equal(t, []State{StateReceived, StateValidating, StateReplyError}, inv.Trace())
	assert.Empty(t, srv.Order())

	h, err := svc.History.History("guild-1")
	require.NoError(t, err)
	require.Len(t, h, 1)
	assert.Equal(t, "technical", h[0].Kind)
	assert.Equal(t, []string{"agumon", "red"}, h[0].Arguments)

	// The dispatcher keeps serving after a recovered panic.
	resp, _ = dispatch(t, d, "dex mew, red")
	assert.False(t, resp.IsError)
}

type panicking struct{ *Dex }

func (p panicking) Execute(context.Context, *Invocation) *response.Response {
	panic("boom")
}

func TestWithRecovery(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	svc := newServices(t, srv)
	dex, err := NewDex(svc)
	require.NoError(t, err)

	c := Apply(panicking{dex}, WithRecovery(svc.Locale, zerolog.Nop()))
	inv := newInvocation("test")
	inv.advance(StateValidating)
	inv.Input = nil

	resp := c.Execute(context.Background(), inv)
	assert.Equal(t, response.KindTechnical, resp.Kind)
	assert.True(t, strings.HasPrefix(resp.Code, CodePanic+"-"))
	assert.Equal(t, StateReplyError, inv.State())
	assert.Equal(t, Command(panicking{dex}), Root(c))
}

func TestRegistry(t *testing.T) {
	srv := pokeapitest.NewServer(t)
	svc := newServices(t, srv)
	r, err := NewDefault(svc, zerolog.Nop())
	require.NoError(t, err)

	var names []string
	for _, c := range r.All() {
		names = append(names, c.Contract().Name)
	}
	assert.Equal(t, []string{"dex", "location", "learn"}, names)

	c, lang, ok := r.Get("エントリ")
	require.True(t, ok)
	assert.Equal(t, "dex", c.Contract().Name)
	assert.Equal(t, locale.Japanese, lang)

	_, lang, ok = r.Get("LOCATION")
	require.True(t, ok)
	assert.Empty(t, lang)

	dex, err := NewDex(svc)
	require.NoError(t, err)
	err = r.Register(dex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already belongs to dex")
}

func TestInvocation_IllegalTransition(t *testing.T) {
	inv := newInvocation("x")
	assert.Panics(t, func() { inv.advance(StateFormatting) })

	inv.advance(StateValidating)
	inv.advance(StateInvalid)
	inv.advance(StateReplyError)
	assert.True(t, inv.State().Terminal())
	assert.Panics(t, func() { inv.advance(StateFetching) })
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in, name, body string
	}{
		{"dex mew, red", "dex", "mew, red"},
		{"  learn   mew, surf ", "learn", "mew, surf"},
		{"dex", "dex", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		name, body := SplitCommand(tt.in)
		assert.Equal(t, tt.name, name, tt.in)
		assert.Equal(t, tt.body, body, tt.in)
	}
}
