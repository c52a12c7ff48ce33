package command

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Jaideep25/Pokedex/internal/config"
	"github.com/Jaideep25/Pokedex/internal/locale"
)

type entry struct {
	cmd  Command
	lang locale.Language
}

// Registry resolves command names and aliases. Registration happens at
// startup; lookups are safe from any goroutine.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]entry
	ordered []Command
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]entry)}
}

// Register adds c under its name and every alias. A name already taken by
// another command is an error.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	contract := c.Contract()
	names := map[string]locale.Language{contract.Name: ""}
	for alias, lang := range contract.Aliases {
		names[alias] = lang
	}
	for name := range names {
		if e, taken := r.byName[normalizeName(name)]; taken {
			return fmt.Errorf("register %s: %q already belongs to %s", contract.Name, name, e.cmd.Contract().Name)
		}
	}

	for name, lang := range names {
		r.byName[normalizeName(name)] = entry{cmd: c, lang: lang}
	}
	r.ordered = append(r.ordered, c)
	return nil
}

// Get resolves name. lang is the language the alias implies, empty for the
// canonical name.
func (r *Registry) Get(name string) (c Command, lang locale.Language, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[normalizeName(name)]
	return e.cmd, e.lang, ok
}

// All returns every command ordered by category weight, then name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	list := append([]Command(nil), r.ordered...)
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].Contract(), list[j].Contract()
		wa, wb := config.CategoryWeight(a.Category), config.CategoryWeight(b.Category)
		if wa != wb {
			return wa < wb
		}
		return a.Name < b.Name
	})
	return list
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
