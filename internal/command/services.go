package command

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Jaideep25/Pokedex/internal/color"
	"github.com/Jaideep25/Pokedex/internal/fetch"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/storage"
)

// ErrMissingService is returned at construction when a declared dependency
// is not available.
var ErrMissingService = errors.New("missing service")

type ServiceType int

const (
	ServiceLookup ServiceType = iota + 1
	ServiceSpellChecker
	ServicePokeAPI
	ServiceColor
	ServiceLocale
	ServiceHistory
)

var serviceNames = map[ServiceType]string{
	ServiceLookup:       "lookup",
	ServiceSpellChecker: "spellchecker",
	ServicePokeAPI:      "pokeapi",
	ServiceColor:        "color",
	ServiceLocale:       "locale",
	ServiceHistory:      "history",
}

func (t ServiceType) String() string {
	if n, ok := serviceNames[t]; ok {
		return n
	}
	return "unknown"
}

// HistoryStore records handled invocations per scope.
type HistoryStore interface {
	AppendInvocation(scope string, rec storage.InvocationRecord) error
	History(scope string) ([]storage.InvocationRecord, error)
}

// Services is the set of collaborators built once at startup and shared by
// every command. All of them are safe for concurrent use.
type Services struct {
	Lookup       lookup.Store
	SpellChecker input.Corrector
	PokeAPI      fetch.Fetcher
	Color        *color.Service
	Locale       *locale.Catalog
	History      HistoryStore

	// FetchConcurrency bounds the concurrent requests of one fetch round.
	FetchConcurrency int
	Logger           zerolog.Logger
}

// Has reports whether service t is available.
func (s *Services) Has(t ServiceType) bool {
	switch t {
	case ServiceLookup:
		return s.Lookup != nil
	case ServiceSpellChecker:
		return s.SpellChecker != nil
	case ServicePokeAPI:
		return s.PokeAPI != nil
	case ServiceColor:
		return s.Color != nil
	case ServiceLocale:
		return s.Locale != nil
	case ServiceHistory:
		return s.History != nil
	default:
		return false
	}
}

// Require fails with ErrMissingService naming every absent service.
func (s *Services) Require(types ...ServiceType) error {
	var missing []string
	for _, t := range types {
		if s == nil || !s.Has(t) {
			missing = append(missing, t.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrMissingService, missing)
	}
	return nil
}
