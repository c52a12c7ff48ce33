// Package pokeapi is the client for the remote game-data API: typed records,
// request paths, response caching, rate limiting and transient-error retries.
package pokeapi

import (
	"net/url"
	"strings"
)

// ResourceType names one kind of record the API serves.
type ResourceType int

const (
	ResourcePokemon ResourceType = iota + 1
	ResourceSpecies
	ResourceVersion
	ResourceEncounters
	ResourceMove
	ResourceLearnMethod
)

var resourceNames = map[ResourceType]string{
	ResourcePokemon:     "pokemon",
	ResourceSpecies:     "pokemon-species",
	ResourceVersion:     "version",
	ResourceEncounters:  "encounters",
	ResourceMove:        "move",
	ResourceLearnMethod: "move-learn-method",
}

func (t ResourceType) String() string {
	if n, ok := resourceNames[t]; ok {
		return n
	}
	return "unknown"
}

// Request describes one fetch. URL, when set, is an absolute reference taken
// from a previously fetched record and wins over Params.
type Request struct {
	Type   ResourceType
	Params []string
	URL    string
}

// NewRequest builds a request by type and path parameters.
func NewRequest(t ResourceType, params ...string) Request {
	return Request{Type: t, Params: params}
}

// Ref builds a request following a reference URL embedded in another record.
func Ref(t ResourceType, ref string) Request {
	return Request{Type: t, URL: ref}
}

func (r Request) String() string {
	if r.URL != "" {
		return r.Type.String() + " " + r.URL
	}
	return r.Type.String() + " " + strings.Join(r.Params, "/")
}

// path resolves the request against base. Encounters hang off the pokemon
// endpoint: <base>/pokemon/<id>/encounters.
func (r Request) path(base string) string {
	if r.URL != "" {
		return r.URL
	}

	parts := make([]string, 0, len(r.Params)+2)
	parts = append(parts, strings.TrimRight(base, "/"))
	switch r.Type {
	case ResourceEncounters:
		parts = append(parts, ResourcePokemon.String())
		for _, p := range r.Params {
			parts = append(parts, url.PathEscape(p))
		}
		return strings.Join(append(parts, "encounters"), "/")
	default:
		parts = append(parts, r.Type.String())
		for _, p := range r.Params {
			parts = append(parts, url.PathEscape(p))
		}
		return strings.Join(parts, "/") + "/"
	}
}
