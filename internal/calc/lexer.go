package calc

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokPower
	tokSlash
	tokPercent
	tokLParen
	tokRParen
	tokIncrement
	tokDecrement
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && l.s[l.i] == ' ' {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	ch := l.s[l.i]
	switch ch {
	case '+', '-':
		l.i++
		// "++" and "--" are lexed as one token so "5++2" stays malformed.
		if l.i < len(l.s) && l.s[l.i] == ch {
			l.i++
			if ch == '+' {
				return token{kind: tokIncrement, text: "++", pos: start}
			}
			return token{kind: tokDecrement, text: "--", pos: start}
		}
		if ch == '+' {
			return token{kind: tokPlus, text: "+", pos: start}
		}
		return token{kind: tokMinus, text: "-", pos: start}
	case '*':
		l.i++
		if l.i < len(l.s) && l.s[l.i] == '*' {
			l.i++
			return token{kind: tokPower, text: "**", pos: start}
		}
		return token{kind: tokStar, text: "*", pos: start}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: start}
	case '%':
		l.i++
		return token{kind: tokPercent, text: "%", pos: start}
	case '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: start}
	case ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: start}
	}

	if ch == '.' || isDigit(ch) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		if txt == "." || hasLeadingZero(txt) {
			return token{kind: tokInvalid, text: txt, pos: start}
		}
		return token{kind: tokNumber, text: txt, pos: start}
	}

	l.i++
	return token{kind: tokInvalid, text: string(ch), pos: start}
}

// scanNumber returns the end of the decimal literal starting at i:
// digits, optionally followed by "." and more digits, or "." and digits.
func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i
}

// hasLeadingZero reports legacy-octal style literals like "05" or "00.5".
func hasLeadingZero(txt string) bool {
	return len(txt) > 1 && txt[0] == '0' && isDigit(txt[1])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
