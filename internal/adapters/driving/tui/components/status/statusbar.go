// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/styles"
)

// State represents what the application is doing.
type State string

const (
	StateReady      State = "ready"
	StateAsking     State = "asking"
	StateRefreshing State = "refreshing"
	StateResults    State = "results"
	StateReading    State = "reading"
	StateError      State = "error"
)

// Bar displays the current state, index size and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	files   int
	pages   int
	width   int
}

// NewBar creates a new status bar.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	inner := b.width - b.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateAsking:
		return b.styles.Muted.Render("Ranking pages...")
	case StateRefreshing:
		return b.styles.Muted.Render("Refreshing index...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	}
	if b.message != "" {
		return b.styles.Normal.Render(b.message)
	}
	return b.styles.Muted.Render(fmt.Sprintf("%d files · %d pages", b.files, b.pages))
}

func (b *Bar) renderRight() string {
	var bindings []key.Binding
	switch b.state {
	case StateResults:
		bindings = b.keymap.ResultsHelp()
	case StateReading:
		bindings = b.keymap.PageHelp()
	default:
		bindings = b.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets a transient message shown instead of the index size.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetIndexSize records the index size shown when idle.
func (b *Bar) SetIndexSize(files, pages int) {
	b.files = files
	b.pages = pages
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}
