// Package outcomes shows the results of a refresh run as they arrive.
package outcomes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// View lists dataset outcomes with a status bar.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	list    *list.OutcomeList
	bar     *status.Bar
	mode    domain.DispatchMode
	running bool
	width   int
	height  int
}

// NewView creates a new outcomes view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	return &View{
		styles: s,
		keymap: km,
		list:   list.NewOutcomeList(s),
		bar:    status.NewBar(s, km),
		width:  80,
		height: 24,
	}
}

// Start clears previous outcomes and marks a run for mode as in progress.
func (v *View) Start(mode domain.DispatchMode) {
	v.mode = mode
	v.running = true
	v.list.Reset()
	v.bar.Clear()
	v.bar.SetState(status.StateRefreshing)
}

// Update handles run progress and key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ResultReceived:
		v.list.Append(msg.Result)
		v.bar.SetCounts(v.list.Counts())
		return v, nil

	case messages.RefreshCompleted:
		v.running = false
		if msg.Results != nil && len(msg.Results) != v.list.Count() {
			v.list.SetResults(msg.Results)
		}
		v.bar.SetCounts(v.list.Counts())
		if msg.Err != nil {
			v.bar.SetState(status.StateError)
			v.bar.SetMessage(msg.Err.Error())
		} else {
			v.bar.SetState(status.StateDone)
		}
		return v, nil

	case tea.KeyMsg:
		if v.running {
			return v, nil
		}
		switch {
		case key.Matches(msg, v.keymap.Back), key.Matches(msg, v.keymap.Select):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case key.Matches(msg, v.keymap.Quit):
			return v, tea.Quit
		}
		var cmd tea.Cmd
		v.list, cmd = v.list.Update(msg)
		return v, cmd
	}
	return v, nil
}

// View renders the title, outcomes and status bar.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.title()))
	b.WriteString("\n\n")
	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func (v *View) title() string {
	if k, single := v.mode.Key(); single {
		return fmt.Sprintf("Refreshing company %s", k)
	}
	return "Refreshing all companies"
}

// Running reports whether a run is still in progress.
func (v *View) Running() bool {
	return v.running
}

// Results returns the outcomes shown so far.
func (v *View) Results() []domain.RefreshResult {
	return v.list.Results()
}

// State returns the status bar state.
func (v *View) State() status.State {
	return v.bar.State()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, max(height-5, 1))
	v.bar.SetWidth(width)
}
