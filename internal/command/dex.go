package command

import (
	"context"

	"github.com/Jaideep25/Pokedex/internal/fetch"
	"github.com/Jaideep25/Pokedex/internal/format"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
)

var dexContract = &Contract{
	Name:        "dex",
	Description: "Show the Pokédex entry of a Pokemon in a game version",
	Category:    "📖 Pokédex",
	Aliases: map[string]locale.Language{
		"pokedex":    locale.English,
		"entry":      locale.English,
		"entrada":    locale.Spanish,
		"entree":     locale.French,
		"entrée":     locale.French,
		"iscrizione": locale.Italian,
		"eintrag":    locale.German,
		"entori":     locale.Japanese,
		"エントリ":       locale.Japanese,
		"tiaomu":     locale.Chinese,
		"tiáomù":     locale.Chinese,
		"条目":         locale.Chinese,
		"giib":       locale.Korean,
		"기입":         locale.Korean,
	},
	Arguments: "<pokemon>, <version>",
	Examples:  []string{"Mew, Red", "kadabra, fire red", "Phantump, y", "Darumaka, white"},
	HelpGIF:   "https://i.imgur.com/AvJMBpR.gif",
	Shape: input.Shape{
		Categories: []lookup.Category{lookup.CategoryPokemon, lookup.CategoryVersion},
		Min:        2,
		Max:        2,
	},
	SetOnce: []pokeapi.ResourceType{pokeapi.ResourcePokemon, pokeapi.ResourceVersion, pokeapi.ResourceSpecies},
}

// Dex answers "dex <pokemon>, <version>" with the version's Pokédex entry.
type Dex struct {
	*pipeline
}

var dexServices = []ServiceType{ServicePokeAPI, ServiceColor, ServiceLocale}

func NewDex(svc *Services) (*Dex, error) {
	p, err := newPipeline(svc, dexContract, dexServices, CodeDex)
	if err != nil {
		return nil, err
	}
	c := &Dex{pipeline: p}
	p.formatter = format.NewDex(svc.Locale, svc.Color)
	p.gather = c.gather
	return c, nil
}

func (c *Dex) RequiredServices() []ServiceType { return dexServices }

// gather fetches the pokemon and version together, then the species the
// pokemon references.
func (c *Dex) gather(ctx context.Context, in *input.Input) (*fetch.Bundle, error) {
	b, err := c.orchestrator.Fetch(ctx, []pokeapi.Request{
		pokeapi.NewRequest(pokeapi.ResourcePokemon, in.Arg(0).FlexForm),
		pokeapi.NewRequest(pokeapi.ResourceVersion, in.Arg(1).FlexForm),
	}, c.contract.SetOnce...)
	if err != nil {
		return nil, err
	}

	err = c.orchestrator.FetchDependent(ctx, b, []pokeapi.ResourceType{pokeapi.ResourcePokemon}, speciesOf)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// speciesOf follows the species reference of the fetched pokemon.
func speciesOf(b *fetch.Bundle) ([]pokeapi.Request, error) {
	p, err := fetch.One[*pokeapi.Pokemon](b)
	if err != nil {
		return nil, err
	}
	return []pokeapi.Request{pokeapi.Ref(pokeapi.ResourceSpecies, p.Species.URL)}, nil
}
