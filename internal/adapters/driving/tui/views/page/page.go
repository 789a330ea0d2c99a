// Package page provides the full-page reader for the TUI.
package page

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askpdf/internal/core/domain"
)

// chromeHeight is the number of lines used by the header and footer.
const chromeHeight = 5

// View shows one ranked page in a scrollable viewport.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model

	hit   *domain.PageHit
	width int
	ready bool
}

// NewView creates a new page view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 24-chromeHeight),
		width:    80,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetHit replaces the page being read and scrolls to the top.
func (v *View) SetHit(hit domain.PageHit) {
	v.hit = &hit
	v.setContent()
	v.viewport.GotoTop()
}

// Hit returns the page being read.
func (v *View) Hit() *domain.PageHit {
	return v.hit
}

func (v *View) setContent() {
	if v.hit == nil {
		v.viewport.SetContent("")
		return
	}
	text := v.hit.Text
	if text == "" {
		text = v.styles.Muted.Render("(empty page)")
	}
	v.viewport.SetContent(lipgloss.NewStyle().Width(v.viewport.Width).Render(text))
}

// Update handles scrolling and the back binding.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil
	case tea.KeyMsg:
		keyStr := msg.String()
		if keymap.Matches(keyStr, v.keymap.Back) || keyStr == "q" {
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewAsk} }
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the page view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.hit == nil {
		return v.styles.Muted.Render("No page selected")
	}

	header := v.styles.Title.Render(fmt.Sprintf("#%d  page %d", v.hit.Rank, v.hit.Index)) +
		"  " + v.styles.Score.Render(fmt.Sprintf("score %.4f", v.hit.Score))
	footer := v.styles.Muted.Render(fmt.Sprintf("%3.0f%%  ↑/↓ scroll · esc back", v.viewport.ScrollPercent()*100))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		v.styles.Page.Render(v.viewport.View()),
		"",
		footer,
	)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.ready = true

	v.viewport.Width = width - 2
	v.viewport.Height = height - chromeHeight
	if v.viewport.Height < 1 {
		v.viewport.Height = 1
	}
	v.setContent()
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// AtTop reports whether the viewport shows the first line.
func (v *View) AtTop() bool {
	return v.viewport.AtTop()
}
