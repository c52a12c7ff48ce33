package pokeapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed marks a payload that decoded but lacks a required field.
var ErrMalformed = errors.New("malformed payload")

// Record is one decoded API resource. The set is closed: only this package
// produces records.
type Record interface {
	Resource() ResourceType
	validate() error
}

// NamedResource is a reference to another resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Name is a localized name.
type Name struct {
	Name     string        `json:"name"`
	Language NamedResource `json:"language"`
}

func nameIn(names []Name, lang, fallback string) string {
	var english string
	for _, n := range names {
		if n.Language.Name == lang {
			return n.Name
		}
		if n.Language.Name == "en" {
			english = n.Name
		}
	}
	if english != "" {
		return english
	}
	return fallback
}

type Pokemon struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Height  int           `json:"height"`
	Weight  int           `json:"weight"`
	Species NamedResource `json:"species"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
	Types []PokemonType `json:"types"`
	Moves []PokemonMove `json:"moves"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonMove struct {
	Move                NamedResource        `json:"move"`
	VersionGroupDetails []VersionGroupDetail `json:"version_group_details"`
}

type VersionGroupDetail struct {
	LevelLearnedAt  int           `json:"level_learned_at"`
	MoveLearnMethod NamedResource `json:"move_learn_method"`
	VersionGroup    NamedResource `json:"version_group"`
}

func (*Pokemon) Resource() ResourceType { return ResourcePokemon }

func (p *Pokemon) validate() error {
	switch {
	case p.ID == 0 || p.Name == "":
		return fmt.Errorf("%w: pokemon without id or name", ErrMalformed)
	case p.Species.URL == "":
		return fmt.Errorf("%w: pokemon %s has no species reference", ErrMalformed, p.Name)
	case len(p.Types) == 0:
		return fmt.Errorf("%w: pokemon %s has no types", ErrMalformed, p.Name)
	}
	return nil
}

// LastType is the name of the last listed type, the one replies are colored by.
func (p *Pokemon) LastType() string {
	return p.Types[len(p.Types)-1].Type.Name
}

// LearnMethods returns the distinct learn methods of move, in first-seen
// order, or nil when the pokemon cannot learn it.
func (p *Pokemon) LearnMethods(move string) []NamedResource {
	for _, m := range p.Moves {
		if m.Move.Name != move {
			continue
		}
		seen := make(map[string]bool)
		var out []NamedResource
		for _, d := range m.VersionGroupDetails {
			if seen[d.MoveLearnMethod.Name] {
				continue
			}
			seen[d.MoveLearnMethod.Name] = true
			out = append(out, d.MoveLearnMethod)
		}
		return out
	}
	return nil
}

type Species struct {
	ID                int           `json:"id"`
	Name              string        `json:"name"`
	Names             []Name        `json:"names"`
	Generation        NamedResource `json:"generation"`
	Genera            []Genus       `json:"genera"`
	FlavorTextEntries []FlavorText  `json:"flavor_text_entries"`
}

type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

func (*Species) Resource() ResourceType { return ResourceSpecies }

func (s *Species) validate() error {
	if s.ID == 0 || s.Name == "" {
		return fmt.Errorf("%w: species without id or name", ErrMalformed)
	}
	if s.Generation.Name == "" {
		return fmt.Errorf("%w: species %s has no generation", ErrMalformed, s.Name)
	}
	return nil
}

// NameIn returns the species name in lang, falling back to English and then the API name.
func (s *Species) NameIn(lang string) string {
	return nameIn(s.Names, lang, s.Name)
}

// GenusIn returns the genus ("Psi Pokémon") in lang, falling back to English.
func (s *Species) GenusIn(lang string) string {
	var english string
	for _, g := range s.Genera {
		if g.Language.Name == lang {
			return g.Genus
		}
		if g.Language.Name == "en" {
			english = g.Genus
		}
	}
	return english
}

// FlavorText returns the entry for version in lang, falling back to the
// English entry of the same version.
func (s *Species) FlavorText(version, lang string) (string, bool) {
	var english string
	for _, f := range s.FlavorTextEntries {
		if f.Version.Name != version {
			continue
		}
		if f.Language.Name == lang {
			return f.FlavorText, true
		}
		if f.Language.Name == "en" {
			english = f.FlavorText
		}
	}
	return english, english != ""
}

type Version struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Names        []Name        `json:"names"`
	VersionGroup NamedResource `json:"version_group"`
}

func (*Version) Resource() ResourceType { return ResourceVersion }

func (v *Version) validate() error {
	if v.ID == 0 || v.Name == "" {
		return fmt.Errorf("%w: version without id or name", ErrMalformed)
	}
	return nil
}

// NameIn returns the version name in lang, falling back to English and then the API name.
func (v *Version) NameIn(lang string) string {
	return nameIn(v.Names, lang, v.Name)
}

// Encounters lists where a pokemon can be met across all versions. The API
// serves it as a bare JSON array.
type Encounters struct {
	PokemonID string
	Areas     []LocationAreaEncounter
}

type LocationAreaEncounter struct {
	LocationArea   NamedResource            `json:"location_area"`
	VersionDetails []VersionEncounterDetail `json:"version_details"`
}

type VersionEncounterDetail struct {
	MaxChance        int               `json:"max_chance"`
	Version          NamedResource     `json:"version"`
	EncounterDetails []EncounterDetail `json:"encounter_details"`
}

type EncounterDetail struct {
	MinLevel        int             `json:"min_level"`
	MaxLevel        int             `json:"max_level"`
	ConditionValues []NamedResource `json:"condition_values"`
	Chance          int             `json:"chance"`
	Method          NamedResource   `json:"method"`
}

func (*Encounters) Resource() ResourceType { return ResourceEncounters }

func (e *Encounters) validate() error {
	for _, a := range e.Areas {
		if a.LocationArea.Name == "" {
			return fmt.Errorf("%w: encounter without location area", ErrMalformed)
		}
	}
	return nil
}

func (e *Encounters) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &e.Areas)
}

// InVersion returns the areas with encounter data for version, in API order,
// each paired with that version's detail.
func (e *Encounters) InVersion(version string) []AreaInVersion {
	var out []AreaInVersion
	for _, a := range e.Areas {
		for _, vd := range a.VersionDetails {
			if vd.Version.Name == version {
				out = append(out, AreaInVersion{Area: a.LocationArea, Detail: vd})
				break
			}
		}
	}
	return out
}

// AreaInVersion is one location area with the encounter detail of a single version.
type AreaInVersion struct {
	Area   NamedResource
	Detail VersionEncounterDetail
}

type Move struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Names       []Name        `json:"names"`
	Type        NamedResource `json:"type"`
	Power       *int          `json:"power"`
	Accuracy    *int          `json:"accuracy"`
	PP          int           `json:"pp"`
	DamageClass NamedResource `json:"damage_class"`
}

func (*Move) Resource() ResourceType { return ResourceMove }

func (m *Move) validate() error {
	if m.ID == 0 || m.Name == "" {
		return fmt.Errorf("%w: move without id or name", ErrMalformed)
	}
	return nil
}

// NameIn returns the move name in lang, falling back to English and then the API name.
func (m *Move) NameIn(lang string) string {
	return nameIn(m.Names, lang, m.Name)
}

type LearnMethod struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

func (*LearnMethod) Resource() ResourceType { return ResourceLearnMethod }

func (m *LearnMethod) validate() error {
	if m.ID == 0 || m.Name == "" {
		return fmt.Errorf("%w: learn method without id or name", ErrMalformed)
	}
	return nil
}

// NameIn returns the method name in lang, falling back to English and then the API name.
func (m *LearnMethod) NameIn(lang string) string {
	return nameIn(m.Names, lang, m.Name)
}

// Decode parses a payload into the record type of t and checks required fields.
func Decode(t ResourceType, data []byte) (Record, error) {
	var rec Record
	switch t {
	case ResourcePokemon:
		rec = &Pokemon{}
	case ResourceSpecies:
		rec = &Species{}
	case ResourceVersion:
		rec = &Version{}
	case ResourceEncounters:
		rec = &Encounters{}
	case ResourceMove:
		rec = &Move{}
	case ResourceLearnMethod:
		rec = &LearnMethod{}
	default:
		return nil, fmt.Errorf("decode: unknown resource type %d", t)
	}

	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, t, err)
	}
	if err := rec.validate(); err != nil {
		return nil, err
	}
	return rec, nil
}
