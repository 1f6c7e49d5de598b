// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewGroupInput prompts for a company id.
	ViewGroupInput
	// ViewOutcomes shows refresh outcomes as they arrive.
	ViewOutcomes
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewGroupInput:
		return "group_input"
	case ViewOutcomes:
		return "outcomes"
	default:
		return "unknown"
	}
}

// RefreshRequested asks the app to start a refresh run.
type RefreshRequested struct {
	Mode domain.DispatchMode
}

// ResultReceived carries one dataset outcome while a run is in progress.
type ResultReceived struct {
	Result domain.RefreshResult
}

// RefreshCompleted signals the end of a run.
// Err is set when the run could not start or was cut short.
type RefreshCompleted struct {
	Mode    domain.DispatchMode
	Results []domain.RefreshResult
	Err     error
}

// EditorRequested asks the app to open the companies file in an editor.
type EditorRequested struct{}

// EditorFinished signals the editor process exited.
type EditorFinished struct {
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
