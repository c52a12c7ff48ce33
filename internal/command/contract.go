package command

import (
	"slices"

	"github.com/Jaideep25/Pokedex/internal/input"
	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/pokeapi"
)

// Contract is the static description of a command. It is built once and
// never modified afterwards.
type Contract struct {
	Name        string                     `json:"name"`
	Description string                     `json:"description"`
	Category    string                     `json:"category"`
	Aliases     map[string]locale.Language `json:"aliases,omitempty"`
	// Arguments is the argument list as shown in help, e.g. "<pokemon>, <version>".
	Arguments string      `json:"arguments"`
	Examples  []string    `json:"examples,omitempty"`
	HelpGIF   string      `json:"help_gif,omitempty"`
	Shape     input.Shape `json:"-"`
	// SetOnce lists the resource types no later fetch round may replace.
	SetOnce []pokeapi.ResourceType `json:"-"`
}

func (c *Contract) ArgumentShape() input.Shape {
	return c.Shape
}

// AliasNames returns the aliases, sorted.
func (c *Contract) AliasNames() []string {
	names := make([]string, 0, len(c.Aliases))
	for a := range c.Aliases {
		names = append(names, a)
	}
	slices.Sort(names)
	return names
}

// Usage is the invocation line shown in help: "dex <pokemon>, <version>".
func (c *Contract) Usage(prefix string) string {
	return prefix + c.Name + " " + c.Arguments
}
