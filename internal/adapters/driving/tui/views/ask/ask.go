// Package ask provides the question view for the TUI.
package ask

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
)

// maxPages bounds the page count adjustable with the More binding.
const maxPages = 50

// View is the question input, the ranked page list and the status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QuestionInput
	list      *list.HitList
	statusbar *status.Bar

	controller driving.IndexController
	ctx        context.Context
	directory  string

	// asked is the question the current hits answer.
	asked string
	limit int
	// notice replaces the page count once a pending re-ask answers.
	notice string

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a question, false = browsing pages
}

// NewView creates a new ask view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	controller driving.IndexController,
	directory string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		list:       list.NewHitList(s),
		statusbar:  status.NewBar(s, km),
		controller: controller,
		ctx:        context.Background(),
		directory:  directory,
		limit:      domain.DefaultPageCount,
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts the input cursor and loads index statistics.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.loadStatus())
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QuestionAnswered:
		v.handleAnswered(msg)
		return v, nil

	case messages.RefreshCompleted:
		return v, v.handleRefreshed(msg)

	case messages.StatusLoaded:
		if msg.Err == nil && msg.Status != nil {
			v.statusbar.SetIndexSize(msg.Status.Files, msg.Status.Pages)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keymap.Refresh) {
		v.statusbar.SetState(status.StateRefreshing)
		return v, v.refresh()
	}

	if v.focusInput {
		switch {
		case msg.Type == tea.KeyEnter:
			question := strings.TrimSpace(v.input.Value())
			if question == "" {
				return v, nil
			}
			return v, v.submit(question)
		case msg.Type == tea.KeyEsc:
			if !v.list.IsEmpty() {
				v.focusInput = false
				v.input.Blur()
				v.statusbar.SetState(status.StateResults)
			}
			return v, nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Open):
		hit := v.list.SelectedHit()
		if hit == nil {
			return v, nil
		}
		opened := *hit
		return v, func() tea.Msg { return messages.PageOpened{Hit: opened} }
	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(keyStr, v.keymap.NewQuestion):
		v.focusInput = true
		v.input.SetValue("")
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
		return v, v.input.Focus()
	case keymap.Matches(keyStr, v.keymap.More):
		if v.limit < maxPages {
			v.limit++
			return v, v.reask()
		}
	case keymap.Matches(keyStr, v.keymap.Fewer):
		if v.limit > 1 {
			v.limit--
			return v, v.reask()
		}
	case keymap.Matches(keyStr, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, tea.Quit
	}
	return v, nil
}

// submit ranks pages for question with the current page count.
func (v *View) submit(question string) tea.Cmd {
	v.statusbar.SetState(status.StateAsking)
	v.statusbar.SetMessage("")
	v.notice = ""
	v.focusInput = false
	v.input.Blur()
	return v.askCmd(question)
}

func (v *View) askCmd(question string) tea.Cmd {
	limit := v.limit
	return func() tea.Msg {
		if v.controller == nil {
			return messages.QuestionAnswered{Question: question, Err: ErrNoController}
		}
		hits, err := v.controller.Ask(v.ctx, question, domain.QueryOptions{Limit: limit})
		return messages.QuestionAnswered{Question: question, Hits: hits, Err: err}
	}
}

// reask repeats the last question after a refresh. The status bar keeps
// showing the refresh summary while it runs.
func (v *View) reask() tea.Cmd {
	if v.asked == "" {
		return nil
	}
	return v.askCmd(v.asked)
}

func (v *View) refresh() tea.Cmd {
	return func() tea.Msg {
		if v.controller == nil {
			return messages.RefreshCompleted{Err: ErrNoController}
		}
		report, err := v.controller.Refresh(v.ctx)
		return messages.RefreshCompleted{Report: report, Err: err}
	}
}

func (v *View) loadStatus() tea.Cmd {
	return func() tea.Msg {
		if v.controller == nil {
			return messages.StatusLoaded{Err: ErrNoController}
		}
		st, err := v.controller.Status(v.ctx)
		return messages.StatusLoaded{Status: st, Err: err}
	}
}

func (v *View) handleAnswered(msg messages.QuestionAnswered) {
	if msg.Err != nil {
		v.setError(msg.Err)
		v.focusInput = true
		v.input.Focus()
		return
	}

	v.err = nil
	v.asked = msg.Question
	v.focusInput = false
	v.input.Blur()
	v.list.SetHits(msg.Hits)
	v.statusbar.SetState(status.StateResults)
	switch {
	case v.notice != "":
		v.statusbar.SetMessage(v.notice)
		v.notice = ""
	case len(msg.Hits) == 0:
		v.statusbar.SetMessage("The index has no pages yet")
	default:
		v.statusbar.SetMessage(pagesMessage(len(msg.Hits)))
	}
}

func (v *View) handleRefreshed(msg messages.RefreshCompleted) tea.Cmd {
	if msg.Err != nil {
		v.setError(msg.Err)
		return nil
	}

	v.err = nil
	if v.focusInput {
		v.statusbar.SetState(status.StateReady)
	} else {
		v.statusbar.SetState(status.StateResults)
	}

	added, skipped := 0, 0
	if msg.Report != nil {
		added, skipped = len(msg.Report.Added), len(msg.Report.Skipped)
	}
	summary := fmt.Sprintf("Refreshed: %d added, %d skipped", added, skipped)
	v.statusbar.SetMessage(summary)

	if added > 0 {
		if cmd := v.reask(); cmd != nil {
			v.notice = summary
			return tea.Batch(v.loadStatus(), cmd)
		}
		return v.loadStatus()
	}
	return nil
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func pagesMessage(n int) string {
	if n == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", n)
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections,
		v.styles.Title.Render("askpdf"),
		v.styles.Subtitle.Render(v.directory),
		"",
		v.input.View(),
		"",
	)

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.asked != "" {
		sections = append(sections, v.styles.Muted.Render(fmt.Sprintf("%q, top %d", v.asked, v.limit)))
	}
	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Question returns the text in the input.
func (v *View) Question() string {
	return v.input.Value()
}

// SetQuestion sets the text in the input.
func (v *View) SetQuestion(question string) {
	v.input.SetValue(question)
}

// Asked returns the question the current hits answer.
func (v *View) Asked() string {
	return v.asked
}

// Hits returns the current hits.
func (v *View) Hits() []domain.PageHit {
	return v.list.Hits()
}

// SelectedIndex returns the position of the selected hit.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Limit returns how many pages a question returns.
func (v *View) Limit() int {
	return v.limit
}

// SetLimit sets how many pages a question returns.
func (v *View) SetLimit(limit int) {
	if limit < 1 {
		limit = 1
	}
	v.limit = limit
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// StatusState returns the status bar state.
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
