// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/askpdf/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAsk is the question input and answer list.
	ViewAsk ViewType = iota
	// ViewPage shows one answer page in full.
	ViewPage
	// ViewHelp lists keybindings.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAsk:
		return "ask"
	case ViewPage:
		return "page"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// QuestionAnswered carries ranked pages back to the model.
type QuestionAnswered struct {
	Question string
	Hits     []domain.PageHit
	Err      error
}

// PageOpened asks the app to show hit in the page view.
type PageOpened struct {
	Hit domain.PageHit
}

// RefreshCompleted carries the result of a directory refresh.
type RefreshCompleted struct {
	Report *domain.RefreshReport
	Err    error
}

// StatusLoaded carries index statistics for the status bar.
type StatusLoaded struct {
	Status *domain.IndexStatus
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
