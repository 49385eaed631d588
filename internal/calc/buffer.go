package calc

import "strings"

const operators = "+-*/"

// IsOperator reports whether token is one of + - * /.
func IsOperator(token string) bool {
	return len(token) == 1 && strings.Contains(operators, token)
}

// Buffer holds the expression being typed.
type Buffer struct {
	text string
}

// Text returns the raw expression.
func (b *Buffer) Text() string {
	return b.text
}

// Display returns the text shown to the user: "0" for an empty buffer.
func (b *Buffer) Display() string {
	if b.text == "" {
		return "0"
	}
	return b.text
}

// Set replaces the expression wholesale, e.g. with an evaluated result.
func (b *Buffer) Set(text string) {
	b.text = text
}

// Append adds token to the expression. Operators never start an
// expression (except "-"), and a trailing operator is replaced by a new
// one unless the new one is "-" after a different operator. A lone "0" is
// dropped before anything but ".".
func (b *Buffer) Append(token string) {
	if token == "" {
		return
	}
	if IsOperator(token) {
		if b.text == "" && token != "-" {
			return
		}
		last := b.last()
		if IsOperator(last) && !(token == "-" && last != "-") {
			b.text = b.text[:len(b.text)-1]
		}
	}
	if b.text == "0" && token != "." {
		b.text = ""
	}
	b.text += token
}

// Backspace removes the last character.
func (b *Buffer) Backspace() {
	if len(b.text) > 0 {
		b.text = b.text[:len(b.text)-1]
	}
}

// Clear resets the buffer.
func (b *Buffer) Clear() {
	b.text = ""
}

func (b *Buffer) last() string {
	if b.text == "" {
		return ""
	}
	return b.text[len(b.text)-1:]
}
