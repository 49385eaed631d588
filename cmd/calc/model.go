package main

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vhscom/calc/internal/session"
	"github.com/vhscom/calc/internal/ui"
)

// evalTimeout bounds a remote evaluation started from the keypad.
const evalTimeout = 10 * time.Second

// messages
type (
	// renderMsg means the session rendered outside Update, e.g. the
	// error-reset timer fired.
	renderMsg struct{}
	// evalDoneMsg ends an evaluation started by evaluate.
	evalDoneMsg struct{ err error }
)

type model struct {
	sess     *session.Session
	renders  <-chan struct{}
	keypad   ui.Keypad
	cursor   ui.Cursor
	remote   string
	pending  int
	quitting bool
}

// newModel builds the keypad model. renders is signalled by the session's
// render callback; it may be nil.
func newModel(sess *session.Session, renders <-chan struct{}, remote string) model {
	m := model{sess: sess, renders: renders, keypad: ui.DefaultKeypad, remote: remote}
	m.cursor, _ = m.keypad.Find("enter")
	return m
}

// renderNotifier returns a render callback and the channel it signals.
// Signals coalesce, so a slow event loop sees at most one pending wake-up.
func renderNotifier() (session.RenderFunc, <-chan struct{}) {
	ch := make(chan struct{}, 1)
	return func(string) {
		select {
		case ch <- struct{}{}:
		default:
		}
	}, ch
}

func waitForRender(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		<-ch
		return renderMsg{}
	}
}

// evaluate runs Equals off the event loop; a remote evaluator may be slow.
func evaluate(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
		defer cancel()
		return evalDoneMsg{err: sess.Equals(ctx)}
	}
}

func (m model) Init() tea.Cmd {
	return waitForRender(m.renders)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case renderMsg:
		// the session already holds the new display text
		return m, waitForRender(m.renders)
	case evalDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = m.keypad.Move(m.cursor, -1, 0)
	case "down", "j":
		m.cursor = m.keypad.Move(m.cursor, 1, 0)
	case "left", "h":
		m.cursor = m.keypad.Move(m.cursor, 0, -1)
	case "right", "l":
		m.cursor = m.keypad.Move(m.cursor, 0, 1)
	case " ":
		return m.press(m.keypad.Key(m.cursor).Press)
	case "ctrl+h":
		return m.press("backspace")
	default:
		return m.press(key)
	}
	return m, nil
}

// press forwards a keystroke to the session and moves the cursor to the
// matching on-screen key. Evaluation is returned as a command.
func (m model) press(key string) (tea.Model, tea.Cmd) {
	key = strings.ToLower(key)
	if key == "=" {
		key = "enter"
	}

	var cmd tea.Cmd
	if key == "enter" {
		m.pending++
		cmd = evaluate(m.sess)
	} else if !m.sess.Press(context.Background(), key) {
		return m, nil
	}

	if c, ok := m.keypad.Find(key); ok {
		m.cursor = c
	}
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("Calculator"))
	b.WriteString("\n\n")

	display := m.sess.Display()
	b.WriteString(ui.RenderDisplay(display, m.keypad.Width(), display == session.ErrorText))
	b.WriteString("\n\n")
	b.WriteString(m.keypad.Render(m.cursor))

	if m.pending > 0 {
		b.WriteString(ui.DimStyle.Render("evaluating…"))
		b.WriteString("\n")
	}
	b.WriteString(ui.DimStyle.Render("\ntype keys or ←↑↓→/hjkl + space • enter = • c clear • q quit"))
	if m.remote != "" {
		b.WriteString(ui.DimStyle.Render("\nevaluating on " + m.remote))
	}
	b.WriteString("\n")
	return b.String()
}
