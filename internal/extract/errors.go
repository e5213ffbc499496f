package extract

import (
	"errors"
	"fmt"
)

// ErrStartLineOutOfRange is returned when a declaration's start line does not
// index into the source lines.
var ErrStartLineOutOfRange = errors.New("start line out of range")

// MalformedInputError is returned when brace counting cannot delimit a method
// body: the input ran out while braces were still open, or a closing brace
// appeared before its opening brace.
type MalformedInputError struct {
	StartLine     int
	LinesConsumed int
	Balance       int
}

func (e *MalformedInputError) Error() string {
	if e.Balance < 0 {
		return fmt.Sprintf("malformed input at line %d: unmatched '}' after %d lines",
			e.StartLine, e.LinesConsumed)
	}
	return fmt.Sprintf("malformed input at line %d: %d unclosed '{' after %d lines",
		e.StartLine, e.Balance, e.LinesConsumed)
}

// MalformedSignatureError is returned when the parameter list cannot be
// located in a method's signature text.
type MalformedSignatureError struct {
	Signature string
	Reason    string
}

func (e *MalformedSignatureError) Error() string {
	return fmt.Sprintf("malformed signature (%s): %q", e.Reason, e.Signature)
}

// IsMalformed reports whether err is one of the per-method extraction errors
// that batch callers skip instead of aborting on.
func IsMalformed(err error) bool {
	var in *MalformedInputError
	var sig *MalformedSignatureError
	return errors.As(err, &in) || errors.As(err, &sig) || errors.Is(err, ErrStartLineOutOfRange)
}
