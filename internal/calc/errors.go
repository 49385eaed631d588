package calc

import "errors"

var (
	// ErrInvalidCharacters is returned when an expression contains a
	// character outside the calculator alphabet.
	ErrInvalidCharacters = errors.New("invalid characters")

	// ErrDivisionByZero is returned when evaluation produces an infinite value.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrMalformedExpression is returned for syntactically invalid input such
	// as unbalanced parentheses or a dangling operator.
	ErrMalformedExpression = errors.New("malformed expression")
)

// Kind is a stable, wire-safe name for an evaluation error.
type Kind string

const (
	KindNone                Kind = ""
	KindInvalidCharacters   Kind = "INVALID_CHARACTERS"
	KindDivisionByZero      Kind = "DIVISION_BY_ZERO"
	KindMalformedExpression Kind = "MALFORMED_EXPRESSION"
	KindUnknown             Kind = "UNKNOWN"
)

// KindOf classifies err. A nil error has KindNone.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidCharacters):
		return KindInvalidCharacters
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrMalformedExpression):
		return KindMalformedExpression
	}
	return KindUnknown
}

// ErrorForKind returns the sentinel for k, or nil if k is not an
// evaluation kind.
func ErrorForKind(k Kind) error {
	switch k {
	case KindInvalidCharacters:
		return ErrInvalidCharacters
	case KindDivisionByZero:
		return ErrDivisionByZero
	case KindMalformedExpression:
		return ErrMalformedExpression
	}
	return nil
}
