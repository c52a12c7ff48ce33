package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
	"github.com/Jaideep25/Pokedex/internal/textutil"
)

// Lister is the listing side of the API client.
type Lister interface {
	List(ctx context.Context, t pokeapi.ResourceType) ([]pokeapi.NamedResource, error)
}

// Writer stores lookup records.
type Writer interface {
	Put(ctx context.Context, records ...lookup.Record) error
}

var seedEndpoints = []struct {
	resource pokeapi.ResourceType
	category lookup.Category
}{
	{pokeapi.ResourcePokemon, lookup.CategoryPokemon},
	{pokeapi.ResourceVersion, lookup.CategoryVersion},
	{pokeapi.ResourceMove, lookup.CategoryMove},
}

// SeedFromAPI lists every pokemon, version and move name the API knows and
// stores them. It returns the number of records written.
func SeedFromAPI(ctx context.Context, api Lister, w Writer, log zerolog.Logger) (int, error) {
	total := 0
	for _, ep := range seedEndpoints {
		names, err := api.List(ctx, ep.resource)
		if err != nil {
			return total, err
		}
		records := make([]lookup.Record, 0, len(names))
		for _, n := range names {
			records = append(records, lookup.NewRecord(ep.category, textutil.Proper(n.Name), n.Name))
		}
		if err := w.Put(ctx, records...); err != nil {
			return total, fmt.Errorf("store %s: %w", ep.category, err)
		}
		log.Info().Stringer("category", ep.category).Int("records", len(records)).Msg("seeded")
		total += len(records)
	}
	return total, nil
}

// SeedFromYAML stores the records of a seed document.
func SeedFromYAML(ctx context.Context, r io.Reader, w Writer) (int, error) {
	records, err := lookup.ReadSeed(r)
	if err != nil {
		return 0, err
	}
	if err := w.Put(ctx, records...); err != nil {
		return 0, err
	}
	return len(records), nil
}
