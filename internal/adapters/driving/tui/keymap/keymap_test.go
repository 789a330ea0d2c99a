package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.Ask.Keys(), "enter")
	assert.Contains(t, km.Refresh.Keys(), "ctrl+r")
	assert.Equal(t, "more pages", km.More.Help().Desc)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key      string
		expected bool
	}{
		{"k", true},
		{"up", true},
		{"j", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, Matches(tt.key, km.Up))
		})
	}
}

func TestHelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 3)
	assert.Len(t, km.ResultsHelp(), 5)
	assert.Len(t, km.PageHelp(), 3)
	assert.Len(t, km.FullHelp(), 4)
}
