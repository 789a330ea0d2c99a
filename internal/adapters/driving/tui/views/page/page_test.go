package page

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askpdf/internal/core/domain"
)

func longHit() domain.PageHit {
	lines := make([]string, 60)
	for i := range lines {
		lines[i] = "line of page text"
	}
	return domain.PageHit{Rank: 2, Index: 9, Score: 0.42, Text: strings.Join(lines, "\n")}
}

func TestView_NotReady(t *testing.T) {
	v := NewView(nil, nil)

	assert.Equal(t, "Initialising...", v.View())
	assert.Nil(t, v.Init())
}

func TestView_NoHit(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 24)

	assert.Contains(t, v.View(), "No page selected")
	assert.Nil(t, v.Hit())
}

func TestView_RendersHit(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 24)
	v.SetHit(longHit())

	view := v.View()

	require.NotNil(t, v.Hit())
	assert.Contains(t, view, "#2  page 9")
	assert.Contains(t, view, "score 0.4200")
	assert.Contains(t, view, "line of page text")
}

func TestView_EmptyPage(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 24)
	v.SetHit(domain.PageHit{Rank: 1})

	assert.Contains(t, v.View(), "(empty page)")
}

func TestView_Scroll(t *testing.T) {
	v := NewView(nil, nil)
	v.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	v.SetHit(longHit())
	require.True(t, v.AtTop())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, v.AtTop())

	v.SetHit(longHit())
	assert.True(t, v.AtTop())
}

func TestView_Back(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyRunes, Runes: []rune("q")},
	} {
		v := NewView(nil, nil)
		v.SetDimensions(80, 24)

		_, cmd := v.Update(key)

		require.NotNil(t, cmd)
		assert.Equal(t, messages.ViewChanged{View: messages.ViewAsk}, cmd())
	}
}
