// Package pokeapitest serves canned API payloads over httptest for tests of
// the client and of everything built on top of it.
package pokeapitest

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"
	"time"
)

//go:embed fixtures
var fixtures embed.FS

// Server is a fake API. Paths map onto fixtures/<endpoint>/<param>.json;
// encounter paths (/pokemon/<id>/encounters) map onto fixtures/encounters/<id>.json.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	hits     map[string]int
	order    []string
	failures map[string]int
	delays   map[string]time.Duration
}

// NewServer starts a fake API closed at test cleanup.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		hits:     make(map[string]int),
		failures: make(map[string]int),
		delays:   make(map[string]time.Duration),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Fail makes every request to p answer with status.
func (s *Server) Fail(p string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[p] = status
}

// Delay holds requests to p for d before answering.
func (s *Server) Delay(p string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[p] = d
}

// Hits returns how often p was requested.
func (s *Server) Hits(p string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[p]
}

// Order returns every requested path in arrival order.
func (s *Server) Order() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path

	s.mu.Lock()
	s.hits[p]++
	s.order = append(s.order, p)
	status, failing := s.failures[p]
	delay := s.delays[p]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}
	if failing {
		http.Error(w, http.StatusText(status), status)
		return
	}

	if r.URL.Query().Has("limit") {
		s.serveList(w, strings.Trim(p, "/"))
		return
	}

	data, err := fs.ReadFile(fixtures, fixturePath(p))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(strings.ReplaceAll(string(data), "{{BASE}}", s.URL)))
}

func (s *Server) serveList(w http.ResponseWriter, endpoint string) {
	entries, err := fs.ReadDir(fixtures, path.Join("fixtures", endpoint))
	if err != nil {
		http.Error(w, "unknown endpoint", http.StatusNotFound)
		return
	}

	type named struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	var page struct {
		Results []named `json:"results"`
	}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		page.Results = append(page.Results, named{Name: name, URL: fmt.Sprintf("%s/%s/%s/", s.URL, endpoint, name)})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func fixturePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	if len(parts) == 3 && parts[0] == "pokemon" && parts[2] == "encounters" {
		return path.Join("fixtures", "encounters", parts[1]+".json")
	}
	if len(parts) != 2 {
		return ""
	}
	return path.Join("fixtures", parts[0], parts[1]+".json")
}
