package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuestionInput(t *testing.T) {
	in := NewQuestionInput(nil)

	require.NotNil(t, in)
	assert.True(t, in.Focused())
	assert.Empty(t, in.Value())
	assert.NotNil(t, in.Init())
}

func TestQuestionInput_Typing(t *testing.T) {
	in := NewQuestionInput(nil)

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cat")})

	assert.Equal(t, "cat", in.Value())
	assert.Contains(t, in.View(), "Ask:")
}

func TestQuestionInput_FocusAndValue(t *testing.T) {
	in := NewQuestionInput(nil)

	in.Blur()
	assert.False(t, in.Focused())
	in.Focus()
	assert.True(t, in.Focused())

	in.SetValue("where is the index stored")
	assert.Equal(t, "where is the index stored", in.Value())
}

func TestQuestionInput_SetWidth(t *testing.T) {
	in := NewQuestionInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 88, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, 20, in.textinput.Width)
}
