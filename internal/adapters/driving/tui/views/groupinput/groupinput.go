// Package groupinput provides the company id prompt.
package groupinput

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// View prompts for a company id until a parseable one is submitted.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	input  *input.GroupInput
	err    string
	width  int
	height int
}

// NewView creates a new prompt view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		input:  input.NewGroupInput(s),
		width:  80,
		height: 24,
	}
}

// Init starts the cursor blinking.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Focus(), v.input.Init())
}

// Update handles key presses.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

		case key.Matches(msg, v.keymap.Submit):
			k, err := v.input.Key()
			if err != nil {
				v.err = "Enter a whole number, e.g. 3."
				return v, nil
			}
			v.err = ""
			return v, func() tea.Msg { return messages.RefreshRequested{Mode: domain.SingleGroup(k)} }
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the prompt.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Refresh one company"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n")

	if v.err != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Enter] Refresh  [Esc] Back"))
	return b.String()
}

// SetError shows msg under the input, keeping what the user typed.
func (v *View) SetError(msg string) {
	v.err = msg
}

// Err returns the current error text.
func (v *View) Err() string {
	return v.err
}

// Reset clears the input and any error.
func (v *View) Reset() {
	v.input.Reset()
	v.err = ""
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
}
