package command

import (
	"context"
	"slices"

	"github.com/Jaideep25/Pokedex/internal/fetch"
	"github.com/Jaideep25/Pokedex/internal/format"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
)

var learnContract = &Contract{
	Name:        "learn",
	Description: "Check whether a Pokemon can learn up to four moves, and how",
	Category:    "⚔️ Moves",
	Aliases: map[string]locale.Language{
		"canlearn":  locale.English,
		"aprender":  locale.Spanish,
		"apprendre": locale.French,
		"imparare":  locale.Italian,
		"lernen":    locale.German,
		"oboeru":    locale.Japanese,
		"xue":       locale.Chinese,
	},
	Arguments: "<pokemon>, <move>, <move>, ...",
	Examples:  []string{"Pikachu, Thunderbolt", "mew, surf, psychic", "Gengar, Shadow Ball, Hypnosis"},
	Shape: input.Shape{
		Categories: []lookup.Category{lookup.CategoryPokemon, lookup.CategoryMove},
		Min:        2,
		Max:        5,
	},
	SetOnce: []pokeapi.ResourceType{pokeapi.ResourcePokemon, pokeapi.ResourceSpecies},
}

// Learn answers "learn <pokemon>, <move>...". Unknown moves do not reject
// the input; they are reported next to the recognized ones.
type Learn struct {
	*pipeline
}

var learnServices = []ServiceType{ServicePokeAPI, ServiceColor, ServiceLocale}

func NewLearn(svc *Services) (*Learn, error) {
	p, err := newPipeline(svc, learnContract, learnServices, CodeLearn)
	if err != nil {
		return nil, err
	}
	c := &Learn{pipeline: p}
	p.formatter = format.NewLearn(svc.Locale, svc.Color)
	p.gather = c.gather
	p.accepts = func(in *input.Input) bool {
		return in.Valid() || (in.Arg(0).Valid && in.InvalidOnlyIn(lookup.CategoryMove))
	}
	return c, nil
}

func (c *Learn) RequiredServices() []ServiceType { return learnServices }

// gather runs three rounds: the pokemon with every recognized move, the
// species, then the learn methods those moves use.
func (c *Learn) gather(ctx context.Context, in *input.Input) (*fetch.Bundle, error) {
	moves := recognizedMoves(in)

	reqs := []pokeapi.Request{pokeapi.NewRequest(pokeapi.ResourcePokemon, in.Arg(0).FlexForm)}
	for _, m := range moves {
		reqs = append(reqs, pokeapi.NewRequest(pokeapi.ResourceMove, m))
	}
	b, err := c.orchestrator.Fetch(ctx, reqs, c.contract.SetOnce...)
	if err != nil {
		return nil, err
	}

	pokemonDep := []pokeapi.ResourceType{pokeapi.ResourcePokemon}
	if err := c.orchestrator.FetchDependent(ctx, b, pokemonDep, speciesOf); err != nil {
		return nil, err
	}

	err = c.orchestrator.FetchDependent(ctx, b, pokemonDep, func(b *fetch.Bundle) ([]pokeapi.Request, error) {
		p, err := fetch.One[*pokeapi.Pokemon](b)
		if err != nil {
			return nil, err
		}
		var methods []string
		for _, m := range moves {
			for _, via := range p.LearnMethods(m) {
				if !slices.Contains(methods, via.Name) {
					methods = append(methods, via.Name)
				}
			}
		}
		reqs := make([]pokeapi.Request, len(methods))
		for i, name := range methods {
			reqs[i] = pokeapi.NewRequest(pokeapi.ResourceLearnMethod, name)
		}
		return reqs, nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// recognizedMoves lists the API forms of the valid move arguments, once each.
func recognizedMoves(in *input.Input) []string {
	var moves []string
	for _, a := range in.Args[1:] {
		if a.Valid && !slices.Contains(moves, a.FlexForm) {
			moves = append(moves, a.FlexForm)
		}
	}
	return moves
}
