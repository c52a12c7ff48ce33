// Package spellcheck suggests the closest known name for a misspelled token.
package spellcheck

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/textutil"
)

// Checker corrects tokens against the dictionary of a lookup store. The
// dictionary of each category is loaded once, on first use.
type Checker struct {
	store       lookup.Store
	maxDistance int

	mu    sync.Mutex
	dicts map[lookup.Category][]string
}

// New returns a Checker accepting corrections up to maxDistance edits away.
func New(store lookup.Store, maxDistance int) *Checker {
	if maxDistance < 1 {
		maxDistance = 1
	}
	return &Checker{
		store:       store,
		maxDistance: maxDistance,
		dicts:       make(map[lookup.Category][]string),
	}
}

// Correct returns the closest dictionary key to raw, or "" when nothing is
// within reach. The candidate is a lookup key; callers re-validate it.
func (c *Checker) Correct(ctx context.Context, cat lookup.Category, raw string) (string, error) {
	key := textutil.Key(raw)
	if key == "" {
		return "", nil
	}

	dict, err := c.dictionary(ctx, cat)
	if err != nil {
		return "", err
	}

	// Lengths are in runes, like the edit distance.
	keyLen := utf8.RuneCountInString(key)
	dmp := diffmatchpatch.New()
	best, bestDist := "", c.maxDistance+1
	for _, candidate := range dict {
		if abs(utf8.RuneCountInString(candidate)-keyLen) > c.maxDistance {
			continue
		}
		d := dmp.DiffLevenshtein(dmp.DiffMain(key, candidate, false))
		if d < bestDist || (d == bestDist && closerLength(candidate, best, keyLen)) {
			best, bestDist = candidate, d
		}
	}
	if bestDist > c.maxDistance {
		return "", nil
	}
	return best, nil
}

// Invalidate drops cached dictionaries, e.g. after reseeding the store.
func (c *Checker) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dicts = make(map[lookup.Category][]string)
}

func (c *Checker) dictionary(ctx context.Context, cat lookup.Category) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dict, ok := c.dicts[cat]; ok {
		return dict, nil
	}
	dict, err := c.store.Keys(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("load %s dictionary: %w", cat, err)
	}
	c.dicts[cat] = dict
	return dict, nil
}

func closerLength(candidate, best string, keyLen int) bool {
	if best == "" {
		return true
	}
	return abs(utf8.RuneCountInString(candidate)-keyLen) < abs(utf8.RuneCountInString(best)-keyLen)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
