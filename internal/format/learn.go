package format

import (
	"slices"
	"strings"

	"github.com/Jaideep25/Pokedex/internal/color"
	"github.com/Jaideep25/Pokedex/internal/fetch"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
	"github.com/Jaideep25/Pokedex/internal/response"
	"github.com/Jaideep25/Pokedex/internal/textutil"
)

// Learn renders whether a pokemon can learn each requested move, and how.
type Learn struct{ base }

func NewLearn(c *locale.Catalog, colors *color.Service) *Learn {
	return &Learn{base{catalog: c, colors: colors, arityKey: "learn.arity"}}
}

// InvalidInput only reaches the per-argument case when the pokemon itself
// is unknown; unknown moves are rendered by Format.
func (f *Learn) InvalidInput(in *input.Input) *response.Response {
	if in.Error == input.ErrorInvalidArgument && !in.Arg(0).Valid {
		lang := in.Language
		return response.New(response.KindInvalidArgument,
			f.catalog.Textf("learn.invalid_pokemon", lang, in.Arg(0).Original, lang.Name()))
	}
	return f.base.InvalidInput(in)
}

// Format expects Pokemon, Species, one Move per recognized move argument and
// the LearnMethods those moves use. Fields follow argument order.
func (f *Learn) Format(in *input.Input, b *fetch.Bundle) (*response.Response, error) {
	p, err := fetch.One[*pokeapi.Pokemon](b)
	if err != nil {
		return nil, err
	}
	s, err := fetch.One[*pokeapi.Species](b)
	if err != nil {
		return nil, err
	}

	lang := in.Language
	flex := lang.FlexKey()

	moves := make(map[string]*pokeapi.Move)
	for _, m := range fetch.All[*pokeapi.Move](b) {
		moves[m.Name] = m
	}
	methods := make(map[string]*pokeapi.LearnMethod)
	for _, m := range fetch.All[*pokeapi.LearnMethod](b) {
		methods[m.Name] = m
	}

	embed := &response.Embed{
		Color:     f.colors.ForType(p.LastType()),
		Thumbnail: p.Sprites.FrontDefault,
		Footer:    f.correctedFooter(in),
	}
	for _, arg := range in.Args[1:] {
		m, ok := moves[arg.FlexForm]
		if !arg.Valid || !ok {
			embed.Fields = append(embed.Fields, response.Field{
				Name:   textutil.Proper(arg.RawInput),
				Value:  f.catalog.Text("learn.not_recognized", lang),
				Inline: true,
			})
			continue
		}

		value := "*" + f.catalog.Text("learn.not_able", lang) + "*"
		if via := p.LearnMethods(m.Name); len(via) > 0 {
			value = "*" + f.catalog.Text("learn.able", lang) + "*:\n" + methodList(via, methods, flex)
		}
		embed.Fields = append(embed.Fields, response.Field{
			Name:   textutil.Proper(m.NameIn(flex)),
			Value:  value,
			Inline: true,
		})
	}

	r := response.New(response.KindOK, f.header(s, lang))
	r.Embed = embed
	return r, nil
}

// methodList lists the localized method names, one per line, without duplicates.
func methodList(via []pokeapi.NamedResource, methods map[string]*pokeapi.LearnMethod, flex string) string {
	var names []string
	for _, v := range via {
		name := textutil.Proper(v.Name)
		if m, ok := methods[v.Name]; ok {
			name = m.NameIn(flex)
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	var sb strings.Builder
	for _, n := range names {
		sb.WriteString("  " + n + "\n")
	}
	return sb.String()
}
