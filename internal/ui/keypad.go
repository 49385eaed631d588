package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyKind groups keys for styling.
type KeyKind int

const (
	KindDigit KeyKind = iota
	KindOperator
	KindAction
)

// Key is one button on the keypad. Press is the keystroke it stands for.
type Key struct {
	Label string
	Press string
	Kind  KeyKind
}

// Keypad lays keys out in rows. Rows may differ in length.
type Keypad [][]Key

// DefaultKeypad mirrors the keyboard shortcuts: c clears, backspace
// deletes and enter evaluates.
var DefaultKeypad = Keypad{
	{{"C", "c", KindAction}, {"⌫", "backspace", KindAction}, {"%", "%", KindOperator}, {"/", "/", KindOperator}},
	{{"7", "7", KindDigit}, {"8", "8", KindDigit}, {"9", "9", KindDigit}, {"*", "*", KindOperator}},
	{{"4", "4", KindDigit}, {"5", "5", KindDigit}, {"6", "6", KindDigit}, {"-", "-", KindOperator}},
	{{"1", "1", KindDigit}, {"2", "2", KindDigit}, {"3", "3", KindDigit}, {"+", "+", KindOperator}},
	{{"0", "0", KindDigit}, {".", ".", KindDigit}, {"(", "(", KindOperator}, {")", ")", KindOperator}, {"=", "enter", KindAction}},
}

// Cursor addresses a key on a Keypad.
type Cursor struct {
	Row, Col int
}

// Key returns the key under c.
func (k Keypad) Key(c Cursor) Key {
	return k[c.Row][c.Col]
}

// Move shifts c by the given deltas, clamping to the keypad edges. Moving
// onto a shorter row lands on its last key.
func (k Keypad) Move(c Cursor, dRow, dCol int) Cursor {
	c.Row = clamp(c.Row+dRow, 0, len(k)-1)
	c.Col = clamp(c.Col+dCol, 0, len(k[c.Row])-1)
	return c
}

// Find returns the cursor of the first key whose Press equals press.
func (k Keypad) Find(press string) (Cursor, bool) {
	for r, row := range k {
		for c, key := range row {
			if key.Press == press {
				return Cursor{Row: r, Col: c}, true
			}
		}
	}
	return Cursor{}, false
}

const keyWidth = 5

// Width is the rendered width of the widest row.
func (k Keypad) Width() int {
	widest := 0
	for _, row := range k {
		widest = max(widest, len(row))
	}
	return widest*keyWidth + (widest-1)*1
}

// Render draws the keypad with the key under active highlighted.
func (k Keypad) Render(active Cursor) string {
	var b strings.Builder
	for r, row := range k {
		for c, key := range row {
			if c > 0 {
				b.WriteString(" ")
			}
			cell := center(key.Label, keyWidth)
			style := styleFor(key.Kind)
			if r == active.Row && c == active.Col {
				style = ActiveStyle
			}
			b.WriteString(style.Render(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderDisplay draws the display box at the given inner width.
func RenderDisplay(text string, width int, isError bool) string {
	if isError {
		text = ErrorStyle.Render(text)
	}
	return DisplayStyle.Width(width).Render(text)
}

func styleFor(kind KeyKind) lipgloss.Style {
	switch kind {
	case KindOperator:
		return OperatorStyle
	case KindAction:
		return ActionStyle
	}
	return KeyStyle
}

func center(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return fmt.Sprintf("%s%s%s", strings.Repeat(" ", left), s, strings.Repeat(" ", width-n-left))
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
