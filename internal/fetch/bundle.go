package fetch

import (
	"errors"
	"fmt"

	"github.com/Jaideep25/Pokedex/internal/pokeapi"
)

var (
	// ErrSetOnce is returned when a set-once resource would be overwritten.
	ErrSetOnce = errors.New("resource already set")
	// ErrMissing is returned when a bundle lacks a requested resource.
	ErrMissing = errors.New("resource not in bundle")
)

// multiValued resource types hold one record per request; the rest hold one
// record per bundle.
var multiValued = map[pokeapi.ResourceType]bool{
	pokeapi.ResourceMove:        true,
	pokeapi.ResourceLearnMethod: true,
}

// Bundle accumulates the records of one invocation across rounds. It is
// owned by a single invocation and not safe for concurrent mutation; rounds
// add their records only after every fetch of the round has joined.
type Bundle struct {
	order   []pokeapi.ResourceType
	records map[pokeapi.ResourceType][]pokeapi.Record
	setOnce map[pokeapi.ResourceType]bool
	rounds  int
}

// NewBundle returns an empty bundle. Single-valued types listed in setOnce
// refuse to be replaced by a later round.
func NewBundle(setOnce ...pokeapi.ResourceType) *Bundle {
	b := &Bundle{
		records: make(map[pokeapi.ResourceType][]pokeapi.Record),
		setOnce: make(map[pokeapi.ResourceType]bool, len(setOnce)),
	}
	for _, t := range setOnce {
		b.setOnce[t] = true
	}
	return b
}

// Add stores rec. Multi-valued types append; single-valued types replace
// unless declared set-once.
func (b *Bundle) Add(rec pokeapi.Record) error {
	t := rec.Resource()
	existing, present := b.records[t]
	switch {
	case !present:
		b.order = append(b.order, t)
		b.records[t] = []pokeapi.Record{rec}
	case multiValued[t]:
		b.records[t] = append(existing, rec)
	case b.setOnce[t]:
		return fmt.Errorf("%w: %s", ErrSetOnce, t)
	default:
		b.records[t] = []pokeapi.Record{rec}
	}
	return nil
}

// Has reports whether every type is present.
func (b *Bundle) Has(types ...pokeapi.ResourceType) bool {
	for _, t := range types {
		if len(b.records[t]) == 0 {
			return false
		}
	}
	return true
}

// Types lists the present resource types in the order they first arrived.
func (b *Bundle) Types() []pokeapi.ResourceType {
	return append([]pokeapi.ResourceType(nil), b.order...)
}

// Rounds is the number of completed fetch rounds.
func (b *Bundle) Rounds() int {
	return b.rounds
}

// Count is the number of records of type t.
func (b *Bundle) Count(t pokeapi.ResourceType) int {
	return len(b.records[t])
}

// One returns the record of a single-valued type.
func One[T pokeapi.Record](b *Bundle) (T, error) {
	var zero T
	t := zero.Resource()
	recs := b.records[t]
	if len(recs) == 0 {
		return zero, fmt.Errorf("%w: %s", ErrMissing, t)
	}
	rec, ok := recs[0].(T)
	if !ok {
		return zero, fmt.Errorf("bundle: %s holds %T", t, recs[0])
	}
	return rec, nil
}

// All returns every record of a type in arrival order.
func All[T pokeapi.Record](b *Bundle) []T {
	var zero T
	recs := b.records[zero.Resource()]
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if rec, ok := r.(T); ok {
			out = append(out, rec)
		}
	}
	return out
}
