package command

import (
	"context"
	"strconv"

	"github.com/Jaideep25/Pokedex/internal/fetch"
	"github.com/Jaideep25/Pokedex/internal/format"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
)

var locationContract = &Contract{
	Name:        "location",
	Description: "List where a Pokemon can be encountered in a game version",
	Category:    "🗺️ Locations",
	Aliases:     map[string]locale.Language{"loc": locale.English},
	Arguments:   "<pokemon>, <version>",
	Examples:    []string{"fearow, blue", "Abra, Soul Silver", "Ditto, Yellow", "trubbish, black 2"},
	HelpGIF:     "https://i.imgur.com/CkPBiDT.gif",
	Shape: input.Shape{
		Categories: []lookup.Category{lookup.CategoryPokemon, lookup.CategoryVersion},
		Min:        2,
		Max:        2,
	},
	SetOnce: []pokeapi.ResourceType{pokeapi.ResourcePokemon, pokeapi.ResourceEncounters},
}

// Location answers "location <pokemon>, <version>".
type Location struct {
	*pipeline
}

var locationServices = []ServiceType{ServicePokeAPI, ServiceColor, ServiceLocale}

func NewLocation(svc *Services) (*Location, error) {
	p, err := newPipeline(svc, locationContract, locationServices, CodeLocation)
	if err != nil {
		return nil, err
	}
	c := &Location{pipeline: p}
	p.formatter = format.NewLocation(svc.Locale, svc.Color)
	p.gather = c.gather
	return c, nil
}

func (c *Location) RequiredServices() []ServiceType { return locationServices }

// gather fetches the pokemon, then its encounters by numeric id.
func (c *Location) gather(ctx context.Context, in *input.Input) (*fetch.Bundle, error) {
	b, err := c.orchestrator.Fetch(ctx, []pokeapi.Request{
		pokeapi.NewRequest(pokeapi.ResourcePokemon, in.Arg(0).FlexForm),
	}, c.contract.SetOnce...)
	if err != nil {
		return nil, err
	}

	err = c.orchestrator.FetchDependent(ctx, b, []pokeapi.ResourceType{pokeapi.ResourcePokemon}, func(b *fetch.Bundle) ([]pokeapi.Request, error) {
		p, err := fetch.One[*pokeapi.Pokemon](b)
		if err != nil {
			return nil, err
		}
		return []pokeapi.Request{pokeapi.NewRequest(pokeapi.ResourceEncounters, strconv.Itoa(p.ID))}, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}
