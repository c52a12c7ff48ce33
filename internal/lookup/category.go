package lookup

import "strings"

// Category is the kind of resource a user token is expected to name.
type Category int

const (
	CategoryAny Category = iota
	CategoryPokemon
	CategoryVersion
	CategoryMove
	CategoryType
	CategoryAbility
	CategoryItem
)

var categoryNames = map[Category]string{
	CategoryAny:     "Any",
	CategoryPokemon: "Pokemon",
	CategoryVersion: "Version",
	CategoryMove:    "Move",
	CategoryType:    "Type",
	CategoryAbility: "Ability",
	CategoryItem:    "Item",
}

// Categories lists every concrete category, in declaration order.
var Categories = []Category{
	CategoryPokemon, CategoryVersion, CategoryMove, CategoryType, CategoryAbility, CategoryItem,
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return "Unknown"
}

// Slug is the lower-case name used in storage and seed files.
func (c Category) Slug() string {
	return strings.ToLower(c.String())
}

// ParseCategory accepts a category slug or name, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for c, n := range categoryNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return c, true
		}
	}
	return CategoryAny, false
}
