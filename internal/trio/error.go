package trio

import (
	"fmt"
	"strings"
)

// ErrorKind classifies runtime failures. Every kind is recoverable at the
// top-level evaluation boundary: the session's environment and continuation
// stack survive a failed expression.
type ErrorKind int

const (
	TypeMismatch ErrorKind = iota
	DivisionByZero
	IndexOutOfBounds
	KeyNotFound
	UnboundVariable
	ExternalCommandError
	FutureRejected
	ParseError
)

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "type mismatch"
	case DivisionByZero:
		return "division by zero"
	case IndexOutOfBounds:
		return "index out of bounds"
	case KeyNotFound:
		return "key not found"
	case UnboundVariable:
		return "unbound variable"
	case ExternalCommandError:
		return "external command error"
	case FutureRejected:
		return "future rejected"
	case ParseError:
		return "parse error"
	default:
		return "error"
	}
}

// TrioError carries an error kind, a human-readable message and an optional
// help hint shown to the user.
type TrioError struct {
	Kind    ErrorKind
	Message string
	Help    string
}

func (e *TrioError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// FormatError renders an error for the terminal.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString("✗ ")
	if te, ok := err.(*TrioError); ok {
		b.WriteString(te.Error())
		if te.Help != "" {
			b.WriteString("\n  💡 Help: ")
			b.WriteString(te.Help)
		}
	} else {
		b.WriteString(err.Error())
	}
	return b.String()
}

// Kind extracts the error kind, defaulting to TypeMismatch for foreign errors.
func Kind(err error) ErrorKind {
	if te, ok := err.(*TrioError); ok {
		return te.Kind
	}
	return TypeMismatch
}
