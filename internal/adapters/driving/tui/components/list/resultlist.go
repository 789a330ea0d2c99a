// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askpdf/internal/core/domain"
)

// HitList displays ranked pages in a navigable list.
type HitList struct {
	hits     []domain.PageHit
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewHitList creates an empty hit list.
func NewHitList(s *styles.Styles) *HitList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &HitList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *HitList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation keys.
func (l *HitList) Update(msg tea.Msg) (*HitList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible part of the list. Each hit takes two lines.
func (l *HitList) View() string {
	if len(l.hits) == 0 {
		return l.styles.Muted.Render("No pages")
	}

	lines := make([]string, 0, len(l.hits)*2+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Pages (%d)", len(l.hits))), "")

	visible := (l.height - 2) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.hits) {
		end = len(l.hits)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderHit(i, &l.hits[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *HitList) renderHit(i int, hit *domain.PageHit) string {
	indicator := "  "
	if i == l.selected {
		indicator = "> "
	}

	title := fmt.Sprintf("%s%d. page %d", indicator, hit.Rank, hit.Index)
	score := fmt.Sprintf("%.4f", hit.Score)

	var titleLine string
	if i == l.selected {
		titleLine = l.styles.Selected.Render(title + "  " + score)
	} else {
		titleLine = l.styles.Normal.Render(title+"  ") + l.styles.Score.Render(score)
	}

	return titleLine + "\n" + l.styles.Muted.Render("    "+Preview(hit.Text, l.width-6))
}

// Preview collapses whitespace in text and truncates it to max runes.
func Preview(text string, max int) string {
	if max < 20 {
		max = 20
	}
	collapsed := strings.Join(strings.Fields(text), " ")
	if collapsed == "" {
		return "(empty page)"
	}
	runes := []rune(collapsed)
	if len(runes) <= max {
		return collapsed
	}
	return string(runes[:max-3]) + "..."
}

// SetHits replaces the list contents and selects the first hit.
func (l *HitList) SetHits(hits []domain.PageHit) {
	l.hits = hits
	l.selected = 0
}

// Hits returns the current hits.
func (l *HitList) Hits() []domain.PageHit {
	return l.hits
}

// Selected returns the index of the selected hit.
func (l *HitList) Selected() int {
	return l.selected
}

// SelectedHit returns the selected hit, or nil if the list is empty.
func (l *HitList) SelectedHit() *domain.PageHit {
	if l.selected < 0 || l.selected >= len(l.hits) {
		return nil
	}
	return &l.hits[l.selected]
}

// MoveUp moves selection up.
func (l *HitList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *HitList) MoveDown() {
	if l.selected < len(l.hits)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *HitList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// IsEmpty returns whether the list is empty.
func (l *HitList) IsEmpty() bool {
	return len(l.hits) == 0
}
