package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askpdf/internal/core/domain"
)

func newTestApp(t *testing.T, ctrl *MockController) *App {
	t.Helper()
	app, err := NewApp(NewPorts(ctrl, "/docs"))
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

func update(app *App, msg tea.Msg) tea.Cmd {
	_, cmd := app.Update(msg)
	return cmd
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(NewPorts(&MockController{}, "/docs"))

	require.NoError(t, err)
	assert.Equal(t, messages.ViewAsk, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
	assert.NotNil(t, app.Init())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Directory: "/docs"})

	require.ErrorIs(t, err, ErrMissingController)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(NewPorts(&MockController{}, "/docs"))

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_WindowSize(t *testing.T) {
	app, _ := NewApp(NewPorts(&MockController{}, "/docs"))

	update(app, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "/docs")
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t, &MockController{})

	cmd := update(app, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_AskOpenPageAndBack(t *testing.T) {
	ctrl := &MockController{
		AskFunc: func(_ context.Context, question string, _ domain.QueryOptions) ([]domain.PageHit, error) {
			return []domain.PageHit{{Rank: 1, Index: 3, Score: 0.5, Text: "the cat page"}}, nil
		},
	}
	app := newTestApp(t, ctrl)

	update(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cat")})
	cmd := update(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	update(app, cmd())
	require.Len(t, app.AskView().Hits(), 1)

	cmd = update(app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	update(app, cmd())
	assert.Equal(t, messages.ViewPage, app.CurrentView())
	assert.Contains(t, app.View(), "the cat page")

	cmd = update(app, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	update(app, cmd())
	assert.Equal(t, messages.ViewAsk, app.CurrentView())
}

func TestApp_HelpView(t *testing.T) {
	app := newTestApp(t, &MockController{})

	update(app, messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Help")
	assert.Contains(t, app.View(), "new question")

	update(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewAsk, app.CurrentView())
}

func TestApp_ResultsWhileReadingGoToAskView(t *testing.T) {
	app := newTestApp(t, &MockController{})
	update(app, messages.PageOpened{Hit: domain.PageHit{Rank: 1, Text: "x"}})

	update(app, messages.ErrorOccurred{Err: errors.New("refresh stage: boom")})

	assert.Equal(t, messages.ViewPage, app.CurrentView())
	assert.EqualError(t, app.AskView().Err(), "refresh stage: boom")
}
