// Package color maps elemental types and game versions to embed colors.
package color

import (
	"hash/fnv"
	"strings"
)

// Default is used when a key has no dedicated color.
const Default = 0xb01e66

var typeColors = map[string]int{
	"normal":   0xA8A878,
	"fire":     0xF08030,
	"water":    0x6890F0,
	"electric": 0xF8D030,
	"grass":    0x78C850,
	"ice":      0x98D8D8,
	"fighting": 0xC03028,
	"poison":   0xA040A0,
	"ground":   0xE0C068,
	"flying":   0xA890F0,
	"psychic":  0xF85888,
	"bug":      0xA8B820,
	"rock":     0xB8A038,
	"ghost":    0x705898,
	"dragon":   0x7038F8,
	"dark":     0x705848,
	"steel":    0xB8B8D0,
	"fairy":    0xEE99AC,
}

var versionColors = map[string]int{
	"red":           0xFF1111,
	"blue":          0x1111FF,
	"yellow":        0xFFD733,
	"gold":          0xDAA520,
	"silver":        0xC0C0C0,
	"crystal":       0x4FD9FF,
	"ruby":          0xA00000,
	"sapphire":      0x0000A0,
	"emerald":       0x00A000,
	"firered":       0xFF7327,
	"leafgreen":     0x00DD00,
	"diamond":       0xAAAAFF,
	"pearl":         0xFFAAAA,
	"platinum":      0x999999,
	"heartgold":     0xB69E00,
	"soulsilver":    0xC0C0E1,
	"black":         0x444444,
	"white":         0xE1E1E1,
	"black2":        0x424B50,
	"white2":        0xE3CED0,
	"x":             0x025DA6,
	"y":             0xEA1A3E,
	"omegaruby":     0xCF3025,
	"alphasapphire": 0x1768D1,
	"sun":           0xF1912B,
	"moon":          0x5599CA,
	"ultrasun":      0xE95B2B,
	"ultramoon":     0x226DB5,
	"letsgopikachu": 0xF5DA26,
	"letsgoeevee":   0xD4924B,
	"sword":         0x00A1E9,
	"shield":        0xBF004F,
	"colosseum":     0xB6CAE4,
	"xd":            0x604E82,
}

// Service is a read-only color lookup, safe for concurrent use.
type Service struct {
	types    map[string]int
	versions map[string]int
}

// New returns the built-in color tables.
func New() *Service {
	return &Service{types: typeColors, versions: versionColors}
}

// ForType returns the color of an elemental type ("fire", "Fire").
func (s *Service) ForType(name string) int {
	if c, ok := s.types[strings.ToLower(name)]; ok {
		return c
	}
	return Default
}

// ForVersion returns the color of a game version, keyed by its normalized
// name ("firered") or its API form ("fire-red").
func (s *Service) ForVersion(name string) int {
	key := strings.ToLower(strings.NewReplacer("-", "", " ", "").Replace(name))
	if c, ok := s.versions[key]; ok {
		return c
	}
	return Default
}

// ColorFor returns a color for any key: a known type or version color,
// otherwise a stable hash-derived one.
func (s *Service) ColorFor(key string) int {
	if c, ok := s.types[strings.ToLower(key)]; ok {
		return c
	}
	if c := s.ForVersion(key); c != Default {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(key)))
	return int(h.Sum32() & 0xFFFFFF)
}
