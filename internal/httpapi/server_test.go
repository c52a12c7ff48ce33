package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaideep25/Pokedex/internal/color"
	"github.com/Jaideep25/Pokedex/internal/command"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
	"github.com/Jaideep25/Pokedex/internal/pokeapi/pokeapitest"
	"github.com/Jaideep25/Pokedex/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServer(t *testing.T) *Server {
	t.Helper()
	srv := pokeapitest.NewServer(t)
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

	history, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })

	svc := &command.Services{
		Lookup: lookup.NewMemory(
			lookup.NewRecord(lookup.CategoryPokemon, "Mew", "mew"),
			lookup.NewRecord(lookup.CategoryVersion, "Red", "red"),
		),
		PokeAPI:          client,
		Color:            color.New(),
		Locale:           catalog,
		History:          history,
		FetchConcurrency: 2,
		Logger:           zerolog.Nop(),
	}
	r, err := command.NewDefault(svc, zerolog.Nop())
	require.NoError(t, err)
	d, err := command.NewDispatcher(r, svc, locale.English)
	require.NoError(t, err)

	return New(d, r, history, zerolog.Nop())
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestStatus(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"online","commands":3}`, w.Body.String())
}

func TestCommands(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodGet, "/api/commands", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	var names []string
	for _, c := range out {
		names = append(names, c["name"].(string))
	}
	assert.ElementsMatch(t, []string{"dex", "location", "learn"}, names)
}

func TestRun(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodPost, "/api/run", map[string]string{"text": "dex mew, red", "scope": "s1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Lines        []string `json:"lines"`
		IsError      bool     `json:"is_error"`
		Kind         string   `json:"kind"`
		Command      string   `json:"command"`
		InvocationID string   `json:"invocation_id"`
		Embed        struct {
			Title string `json:"title"`
		} `json:"embed"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.False(t, out.IsError)
	assert.Equal(t, "ok", out.Kind)
	assert.Equal(t, "dex", out.Command)
	assert.NotEmpty(t, out.InvocationID)
	assert.Equal(t, "Red", out.Embed.Title)
	assert.Equal(t, []string{"**__Mew | #151 | Generation I__**"}, out.Lines)

	w = do(t, s, http.MethodGet, "/api/history/s1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var records []storage.InvocationRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "dex", records[0].Command)
	assert.Equal(t, out.InvocationID, records[0].ID)
}

func TestRun_ValidationError(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodPost, "/api/run", map[string]string{"text": "dex mew"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_error":true`)
	assert.Contains(t, w.Body.String(), `"kind":"argument_number"`)
}

func TestRun_UnknownCommand(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodPost, "/api/run", map[string]string{"text": "evolve mew"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRun_BadBody(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodPost, "/api/run", map[string]string{"scope": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory_EmptyScope(t *testing.T) {
	s := newServer(t)

	w := do(t, s, http.MethodGet, "/api/history/nobody", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
