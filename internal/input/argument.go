// Package input turns raw user tokens into validated, normalized arguments.
package input

import (
	"context"
	"fmt"

	"github.com/Jaideep25/Pokedex/internal/lookup"
	"github.com/Jaideep25/Pokedex/internal/textutil"
)

// Argument is one user token bound to the category it was expected to name.
type Argument struct {
	// RawInput is what the user typed, or the correction when Corrected is set.
	RawInput string
	// Original is always what the user typed.
	Original string
	Category lookup.Category
	// Key is the normalized lookup key.
	Key string
	// FlexForm is the API form used in fetch requests.
	FlexForm  string
	Display   string
	Valid     bool
	Corrected bool
}

// Corrector proposes a spelling correction. The candidate may not exist.
type Corrector interface {
	Correct(ctx context.Context, cat lookup.Category, raw string) (string, error)
}

// Resolver validates tokens against a lookup store, falling back to a
// Corrector when the token is unknown.
type Resolver struct {
	store     lookup.Store
	corrector Corrector
}

// NewResolver returns a Resolver. corrector may be nil to disable correction.
func NewResolver(store lookup.Store, corrector Corrector) *Resolver {
	return &Resolver{store: store, corrector: corrector}
}

// Resolve binds raw to cat. An unknown token yields an invalid Argument, not
// an error; errors are reserved for store failures.
func (r *Resolver) Resolve(ctx context.Context, raw string, cat lookup.Category) (Argument, error) {
	arg := Argument{
		RawInput: raw,
		Original: raw,
		Category: cat,
		Key:      textutil.Key(raw),
	}

	rec, found, err := r.store.Get(ctx, cat, arg.Key)
	if err != nil {
		return arg, fmt.Errorf("resolve %q: %w", raw, err)
	}

	if !found && r.corrector != nil {
		correction, err := r.corrector.Correct(ctx, cat, raw)
		if err != nil {
			return arg, fmt.Errorf("correct %q: %w", raw, err)
		}
		if correction == "" {
			return arg, nil
		}

		key := textutil.Key(correction)
		rec, found, err = r.store.Get(ctx, cat, key)
		if err != nil {
			return arg, fmt.Errorf("resolve correction %q: %w", correction, err)
		}
		if !found {
			return arg, nil
		}
		arg.RawInput = correction
		arg.Key = key
		arg.Corrected = true
	}

	if !found {
		return arg, nil
	}

	arg.FlexForm = rec.FlexForm
	arg.Display = rec.Display
	arg.Valid = true
	return arg, nil
}
