package calc

import (
	"fmt"
	"math"
	"regexp"
)

var (
	percentLiteral = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	allowedText    = regexp.MustCompile(`^[0-9+\-*/().% ]*$`)
)

// RewritePercent replaces every numeric literal followed by "%" with that
// literal divided by 100, so "50%" becomes "(50/100)". It is purely
// textual: no left operand is taken into account.
func RewritePercent(expr string) string {
	return percentLiteral.ReplaceAllString(expr, "(${1}/100)")
}

// Evaluate computes expr and returns the result as a canonical decimal
// string.
//
// An empty expression yields "" without being evaluated. A result that is
// not a number (e.g. 0/0) also yields "" with a nil error. Infinite results
// fail with ErrDivisionByZero, characters outside the calculator alphabet
// with ErrInvalidCharacters and syntax errors with ErrMalformedExpression.
func Evaluate(expr string) (string, error) {
	if expr == "" {
		return "", nil
	}

	rewritten := RewritePercent(expr)
	if !allowedText.MatchString(rewritten) {
		return "", fmt.Errorf("%w in %q", ErrInvalidCharacters, expr)
	}

	tree, err := parse(rewritten)
	if err != nil {
		return "", err
	}

	v := tree.eval()
	switch {
	case math.IsInf(v, 0):
		return "", ErrDivisionByZero
	case math.IsNaN(v):
		return "", nil
	}
	return FormatNumber(v), nil
}
