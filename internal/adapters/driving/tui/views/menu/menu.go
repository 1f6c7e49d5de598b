// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// Item represents a single menu option.
type Item struct {
	Label string
	// Action is sent when the item is selected.
	Action tea.Msg
	Quit   bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	items    []Item
	selected int
	status   string
	isError  bool
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		items: []Item{
			{Label: "All companies", Action: messages.RefreshRequested{Mode: domain.AllGroups()}},
			{Label: "One company", Action: messages.ViewChanged{View: messages.ViewGroupInput}},
			{Label: "Settings", Action: messages.EditorRequested{}},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keymap.Up):
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case key.Matches(msg, v.keymap.Down):
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case key.Matches(msg, v.keymap.Select):
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			action := item.Action
			return v, func() tea.Msg { return action }

		case key.Matches(msg, v.keymap.Quit):
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Banner.Render("PBI Refresh"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Power BI dataset refresher"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}
		b.WriteString(cursor + style.Render(item.Label))
		b.WriteString("\n")
	}

	if v.status != "" {
		b.WriteString("\n")
		if v.isError {
			b.WriteString(v.styles.Error.Render(v.status))
		} else {
			b.WriteString(v.styles.Warning.Render(v.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetStatus shows a notice under the menu items.
func (v *View) SetStatus(status string, isError bool) {
	v.status = status
	v.isError = isError
}

// Status returns the current notice.
func (v *View) Status() string {
	return v.status
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
