package diag

import (
	"errors"
	"fmt"

	"kappa/internal/source"
)

// Error is a fatal front-end failure. It aborts lexing or parsing and carries
// the diagnostic that explains it.
type Error struct {
	Diag Diagnostic
}

// Errorf builds a fatal error diagnostic.
func Errorf(code Code, primary source.Span, format string, args ...any) *Error {
	return &Error{Diag: NewError(code, primary, fmt.Sprintf(format, args...))}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d-%d: %s", e.Diag.Code.ID(), e.Diag.Primary.Start, e.Diag.Primary.End, e.Diag.Message)
}

// Code returns the diagnostic code of the failure.
func (e *Error) Code() Code { return e.Diag.Code }

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
