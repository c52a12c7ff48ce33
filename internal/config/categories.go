package config

// CategoryWeights orders command categories in help listings.
var CategoryWeights = map[string]int{
	"📖 Pokédex":    0,
	"🗺️ Locations": 10,
	"⚔️ Moves":     20,
}

// CategoryWeight returns the sort weight of a category, unknown ones last.
func CategoryWeight(category string) int {
	if w, ok := CategoryWeights[category]; ok {
		return w
	}
	return 1000
}
