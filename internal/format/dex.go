package format

import (
	"github.com/Jaideep25/Pokedex/internal/color"
	"github.com/Jaideep25/Pokedex/internal/fetch"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
	"github.com/Jaideep25/Pokedex/internal/response"
	"github.com/Jaideep25/Pokedex/internal/textutil"
)

// Dex renders a species' Pokédex entry for one version.
type Dex struct{ base }

func NewDex(c *locale.Catalog, colors *color.Service) *Dex {
	return &Dex{base{catalog: c, colors: colors, arityKey: "dex.arity"}}
}

// Format expects Pokemon, Version and Species in b.
func (f *Dex) Format(in *input.Input, b *fetch.Bundle) (*response.Response, error) {
	p, err := fetch.One[*pokeapi.Pokemon](b)
	if err != nil {
		return nil, err
	}
	v, err := fetch.One[*pokeapi.Version](b)
	if err != nil {
		return nil, err
	}
	s, err := fetch.One[*pokeapi.Species](b)
	if err != nil {
		return nil, err
	}

	lang := in.Language
	flex := lang.FlexKey()
	embed := &response.Embed{
		Title:     v.NameIn(flex),
		Color:     f.colors.ForType(p.LastType()),
		Thumbnail: p.Sprites.FrontDefault,
		Footer:    f.correctedFooter(in),
	}

	kind := response.KindOK
	text, ok := s.FlavorText(v.Name, flex)
	if ok {
		embed.Description = "*" + s.GenusIn(flex) + "*\n" + textutil.CollapseSpace(text)
	} else {
		kind = response.KindNoMatch
		embed.Description = f.catalog.Textf("dex.no_entry", lang, v.NameIn(flex)) + "\n" + f.catalog.Text("dex.hint", lang)
	}

	r := response.New(kind, f.header(s, lang))
	r.Embed = embed
	return r, nil
}
