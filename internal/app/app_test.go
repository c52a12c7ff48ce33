package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaideep25/Pokedex/internal/command"
	"github.com/Jaideep25/Pokedex/internal/config"
	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/pokeapi/pokeapitest"
	"github.com/Jaideep25/Pokedex/internal/response"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	dir := t.TempDir()
	return &config.Config{
		CommandPrefix:    "!",
		APIBaseURL:       baseURL,
		FetchTimeout:     2 * time.Second,
		FetchConcurrency: 4,
		FetchRetries:     1,
		RateLimit:        1000,
		CacheSize:        64,
		LookupDBPath:     filepath.Join(dir, "data", "lookup.db"),
		StoragePath:      filepath.Join(dir, "data", "datastore.json"),
		SpellMaxDistance: 2,
		DefaultLanguage:  "en",
	}
}

func newApp(t *testing.T) (*App, *pokeapitest.Server) {
	t.Helper()
	srv := pokeapitest.NewServer(t)
	a, err := New(testConfig(t, srv.URL), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, srv
}

func TestSeedFromAPI(t *testing.T) {
	a, _ := newApp(t)
	ctx := context.Background()

	n, err := SeedFromAPI(ctx, a.Client, a.Lookup, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	rec, ok, err := a.Lookup.Get(ctx, lookup.CategoryVersion, "firered")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Fire Red", rec.Display)
	assert.Equal(t, "fire-red", rec.FlexForm)

	counts, err := a.Lookup.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[lookup.CategoryPokemon])
	assert.Equal(t, 3, counts[lookup.CategoryMove])
}

func TestSeedFromYAML(t *testing.T) {
	a, _ := newApp(t)
	ctx := context.Background()

	doc := `
pokemon:
  - name: Mr. Mime
version:
  - name: Red
`
	n, err := SeedFromYAML(ctx, strings.NewReader(doc), a.Lookup)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, ok, err := a.Lookup.Get(ctx, lookup.CategoryPokemon, "mrmime")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "mr-mime", rec.FlexForm)
}

func TestApp_DispatchAfterSeeding(t *testing.T) {
	a, _ := newApp(t)
	ctx := context.Background()

	_, err := SeedFromAPI(ctx, a.Client, a.Lookup, zerolog.Nop())
	require.NoError(t, err)
	a.Spell.Invalidate()

	resp, inv, err := a.Dispatcher.Dispatch(ctx, command.Request{Text: "dex mew, red", ScopeID: "cli"})
	require.NoError(t, err)
	assert.Equal(t, response.KindOK, resp.Kind)
	assert.Equal(t, "dex", inv.Command)

	history, err := a.History.History("cli")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, inv.ID, history[0].ID)
}
