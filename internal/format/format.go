// Package format renders fetched bundles into replies. Formatters are pure:
// they read the input and the bundle and never mutate either or do I/O.
package format

import (
	"fmt"
	"strings"

	"github.com/Jaideep25/Pokedex/internal/color"
	"github.com/Jaideep25/Pokedex/internal/fetch"
	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
	"github.com/Jaideep25/Pokedex/internal/response"
	"github.com/Jaideep25/Pokedex/internal/textutil"
)

// Formatter renders the replies of one command.
type Formatter interface {
	Format(in *input.Input, b *fetch.Bundle) (*response.Response, error)
	InvalidInput(in *input.Input) *response.Response
}

// base carries the read-only tables every formatter needs.
type base struct {
	catalog  *locale.Catalog
	colors   *color.Service
	arityKey string
}

// InvalidInput explains why in was rejected. Arity errors carry no
// per-argument detail since nothing was resolved.
func (f base) InvalidInput(in *input.Input) *response.Response {
	lang := in.Language
	switch in.Error {
	case input.ErrorArgumentNumber:
		return response.New(response.KindArgumentNumber, f.catalog.Text(f.arityKey, lang))
	case input.ErrorInvalidArgument:
		lines := []string{f.catalog.Text("invalid.header", lang)}
		for _, a := range in.Invalid() {
			lines = append(lines, f.catalog.Textf("invalid.argument", lang, a.Original, a.Category))
		}
		return response.New(response.KindInvalidArgument, lines...)
	default:
		return response.New(response.KindTechnical, f.catalog.Textf("error.technical", lang, "input"))
	}
}

// header is the bold title line shared by species-based replies:
// "**__Mew | #151 | Generation I__**".
func (f base) header(s *pokeapi.Species, lang locale.Language) string {
	gen := f.catalog.Textf("generation", lang, textutil.Generation(s.Generation.Name))
	return fmt.Sprintf("**__%s | #%d | %s__**", s.NameIn(lang.FlexKey()), s.ID, gen)
}

// correctedFooter acknowledges spelling corrections, or is empty.
func (f base) correctedFooter(in *input.Input) string {
	corrected := in.Corrected()
	if len(corrected) == 0 {
		return ""
	}
	names := make([]string, len(corrected))
	for i, a := range corrected {
		names[i] = displayName(a)
	}
	return f.catalog.Textf("corrected", in.Language, strings.Join(names, ", "))
}

func displayName(a input.Argument) string {
	if a.Display != "" {
		return a.Display
	}
	if a.FlexForm != "" {
		return textutil.Proper(a.FlexForm)
	}
	return a.RawInput
}

// Technical is the generic apology for unexpected failures.
func Technical(c *locale.Catalog, lang locale.Language, code string) *response.Response {
	r := response.New(response.KindTechnical, c.Textf("error.technical", lang, code))
	r.Code = code
	return r
}

// FetchFailure is the reply when the data service could not be reached or
// answered with something unusable.
func FetchFailure(c *locale.Catalog, lang locale.Language, code string) *response.Response {
	r := response.New(response.KindFetchError, c.Textf("error.fetch", lang, code))
	r.Code = code
	return r
}
