package command

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Diagnostic code prefixes, one per pipeline stage.
const (
	CodeValidation = "1000"
	CodeDex        = "1010"
	CodeLocation   = "1020"
	CodeLearn      = "1030"
	CodePanic      = "1099"
)

// ErrUnknownCommand is returned by the dispatcher for names no command answers to.
var ErrUnknownCommand = errors.New("unknown command")

// TechnicalError is an unexpected failure. Code is shown to the user and
// logged next to Err so the two can be matched.
type TechnicalError struct {
	Code string
	Err  error
}

// NewTechnicalError tags err with the stage prefix and a short unique suffix.
func NewTechnicalError(stage string, err error) *TechnicalError {
	return &TechnicalError{Code: stage + "-" + uuid.NewString()[:8], Err: err}
}

func (e *TechnicalError) Error() string {
	return fmt.Sprintf("technical error %s: %v", e.Code, e.Err)
}

func (e *TechnicalError) Unwrap() error { return e.Err }
