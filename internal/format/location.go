package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Jaideep25/Pokedex/internal/color"
	"github.com/Jaideep25/Pokedex/internal/fetch"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
	"github.com/Jaideep25/Pokedex/internal/response"
	"github.com/Jaideep25/Pokedex/internal/textutil"
)

// CellWidth is the display width of every line in a location field.
// Longer text is truncated with an ellipsis; wide runes count as two cells.
const CellWidth = 25

// Embed limits enforced by Discord. A location reply never exceeds them so
// transports never have to split or drop fields.
const (
	MaxFields     = 25
	MaxFieldValue = 1024
)

var rule = "`|" + strings.Repeat("-", CellWidth) + "|`"

// Location renders where a pokemon can be encountered in one version.
type Location struct{ base }

func NewLocation(c *locale.Catalog, colors *color.Service) *Location {
	return &Location{base{catalog: c, colors: colors, arityKey: "location.arity"}}
}

// Format expects Pokemon and Encounters in b; the version comes from the
// second argument.
func (f *Location) Format(in *input.Input, b *fetch.Bundle) (*response.Response, error) {
	p, err := fetch.One[*pokeapi.Pokemon](b)
	if err != nil {
		return nil, err
	}
	enc, err := fetch.One[*pokeapi.Encounters](b)
	if err != nil {
		return nil, err
	}

	lang := in.Language
	version := in.Arg(1)
	name := textutil.Proper(p.Name)
	versionName := displayName(version)

	areas := enc.InVersion(version.FlexForm)
	if len(areas) == 0 {
		return response.New(response.KindNoMatch, f.catalog.Textf("location.none", lang, name, versionName)), nil
	}

	shown, hidden := areas, 0
	if len(areas) > MaxFields {
		shown, hidden = areas[:MaxFields-1], len(areas)-(MaxFields-1)
	}

	embed := &response.Embed{
		Color:     f.colors.ForVersion(version.FlexForm),
		Thumbnail: p.Sprites.FrontDefault,
		Footer:    f.correctedFooter(in),
		Fields:    make([]response.Field, 0, len(shown)+1),
	}
	for _, a := range shown {
		embed.Fields = append(embed.Fields, response.Field{
			Name:   textutil.Proper(a.Area.Name),
			Value:  f.areaDetail(a.Detail, lang),
			Inline: true,
		})
	}
	if hidden > 0 {
		embed.Fields = append(embed.Fields, response.Field{
			Name:   f.catalog.Text("location.more_areas", lang),
			Value:  f.catalog.Textf("location.more_areas_value", lang, hidden),
			Inline: true,
		})
	}

	r := response.New(response.KindOK, f.catalog.Textf("location.found", lang, name, len(areas), versionName))
	r.Embed = embed
	return r, nil
}

// areaDetail renders one block of cells per encounter. Blocks that would push
// the value past MaxFieldValue bytes are dropped whole and counted in a
// trailing cell, so a code span is never cut.
func (f *Location) areaDetail(d pokeapi.VersionEncounterDetail, lang locale.Language) string {
	var sb strings.Builder
	sb.WriteString(f.cell("location.max_rate", lang, percent(d.MaxChance)))
	n := len(d.EncounterDetails)
	for i, e := range d.EncounterDetails {
		block := f.encounterBlock(e, lang)
		// Room for the trailing cell stays reserved until the last block.
		reserve := 0
		if i < n-1 {
			reserve = 1 + len(f.moreCell(n-i-1, lang))
		}
		if sb.Len()+len(block)+reserve > MaxFieldValue {
			sb.WriteString("\n" + f.moreCell(n-i, lang))
			break
		}
		sb.WriteString(block)
	}
	return sb.String()
}

func (f *Location) encounterBlock(e pokeapi.EncounterDetail, lang locale.Language) string {
	lines := []string{"", rule}
	if e.MinLevel == e.MaxLevel {
		lines = append(lines, f.cell("location.level", lang, itoa(e.MinLevel)))
	} else {
		lines = append(lines, f.cell("location.levels", lang, fmt.Sprintf("%2d/%d", e.MinLevel, e.MaxLevel)))
	}
	lines = append(lines,
		f.cell("location.method", lang, textutil.Proper(e.Method.Name)),
		f.cell("location.conditions", lang, f.conditions(e, lang)),
		f.cell("location.rate", lang, percent(e.Chance)),
	)
	return strings.Join(lines, "\n")
}

func (f *Location) moreCell(n int, lang locale.Language) string {
	return fixedWidth(f.catalog.Textf("location.more_encounters", lang, n))
}

func (f *Location) conditions(e pokeapi.EncounterDetail, lang locale.Language) string {
	if len(e.ConditionValues) == 0 {
		return f.catalog.Text("location.no_conditions", lang)
	}
	names := make([]string, len(e.ConditionValues))
	for i, c := range e.ConditionValues {
		names[i] = textutil.Proper(c.Name)
	}
	return strings.Join(names, " & ")
}

func (f *Location) cell(key string, lang locale.Language, value string) string {
	return fixedWidth(f.catalog.Text(key, lang) + ": " + value)
}

// fixedWidth pads or truncates s to CellWidth cells inside a code span.
func fixedWidth(s string) string {
	s = runewidth.Truncate(s, CellWidth, "…")
	return "`|" + runewidth.FillRight(s, CellWidth) + "|`"
}

func percent(n int) string {
	return strconv.Itoa(n) + "%"
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
