package input

import (
	"context"

	"github.com/Jaideep25/Pokedex/internal/locale"
	"github.com/Jaideep25/Pokedex/internal/lookup"
)

// ErrorKind says why an Input is not valid.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorArgumentNumber
	ErrorInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "NONE"
	case ErrorArgumentNumber:
		return "ARGUMENT_NUMBER"
	case ErrorInvalidArgument:
		return "INVALID_ARGUMENT"
	default:
		return "UNKNOWN"
	}
}

// Shape is the ordered argument categories of a command with its arity
// bounds. Positions past the last category repeat the last category.
type Shape struct {
	Categories []lookup.Category
	Min, Max   int
}

// Accepts reports whether n tokens fit the arity bounds.
func (s Shape) Accepts(n int) bool {
	return n >= s.Min && n <= s.Max
}

// CategoryAt is the expected category of position i.
func (s Shape) CategoryAt(i int) lookup.Category {
	if len(s.Categories) == 0 {
		return lookup.CategoryAny
	}
	if i >= len(s.Categories) {
		return s.Categories[len(s.Categories)-1]
	}
	return s.Categories[i]
}

// Shaped is anything that declares an argument shape, usually a command contract.
type Shaped interface {
	ArgumentShape() Shape
}

// Input is the validated form of one incoming message.
type Input struct {
	Tokens   []string
	Args     []Argument
	Language locale.Language
	Error    ErrorKind
}

// Valid is true iff the arity matched and every argument resolved.
func (in *Input) Valid() bool {
	return in.Error == ErrorNone
}

// Arg returns argument i; out of range yields an invalid zero Argument.
func (in *Input) Arg(i int) Argument {
	if i < 0 || i >= len(in.Args) {
		return Argument{}
	}
	return in.Args[i]
}

// Invalid returns the arguments that failed to resolve, in input order.
func (in *Input) Invalid() []Argument {
	var out []Argument
	for _, a := range in.Args {
		if !a.Valid {
			out = append(out, a)
		}
	}
	return out
}

// Corrected returns the arguments resolved through spelling correction.
func (in *Input) Corrected() []Argument {
	var out []Argument
	for _, a := range in.Args {
		if a.Valid && a.Corrected {
			out = append(out, a)
		}
	}
	return out
}

// InvalidOnlyIn reports whether the input failed only on arguments of the
// given categories. It is false for valid inputs and arity errors.
func (in *Input) InvalidOnlyIn(cats ...lookup.Category) bool {
	if in.Error != ErrorInvalidArgument {
		return false
	}
	for _, a := range in.Invalid() {
		allowed := false
		for _, c := range cats {
			if a.Category == c {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	return true
}

// Validator checks arity and resolves every token of a message.
type Validator struct {
	resolver *Resolver
}

// NewValidator returns a Validator resolving through r.
func NewValidator(r *Resolver) *Validator {
	return &Validator{resolver: r}
}

// Validate builds the Input for tokens. An arity mismatch short-circuits
// with ErrorArgumentNumber and resolves nothing.
func (v *Validator) Validate(ctx context.Context, tokens []string, contract Shaped, lang locale.Language) (*Input, error) {
	shape := contract.ArgumentShape()
	in := &Input{Tokens: tokens, Language: lang}

	if !shape.Accepts(len(tokens)) {
		in.Error = ErrorArgumentNumber
		return in, nil
	}

	in.Args = make([]Argument, 0, len(tokens))
	for i, tok := range tokens {
		arg, err := v.resolver.Resolve(ctx, tok, shape.CategoryAt(i))
		if err != nil {
			return nil, err
		}
		in.Args = append(in.Args, arg)
		if !arg.Valid {
			in.Error = ErrorInvalidArgument
		}
	}
	return in, nil
}
