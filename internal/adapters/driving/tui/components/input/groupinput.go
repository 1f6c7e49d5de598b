// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// GroupInput wraps a bubbles textinput that reads a company id.
type GroupInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewGroupInput creates a new company id input.
func NewGroupInput(s *styles.Styles) *GroupInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "e.g. 3"
	ti.Focus()
	ti.CharLimit = 10
	ti.Width = 20

	return &GroupInput{
		textinput: ti,
		styles:    s,
		width:     20,
	}
}

// Init initialises the input.
func (g *GroupInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (g *GroupInput) Update(msg tea.Msg) (*GroupInput, tea.Cmd) {
	var cmd tea.Cmd
	g.textinput, cmd = g.textinput.Update(msg)
	return g, cmd
}

// View renders the prompt and input.
func (g *GroupInput) View() string {
	label := g.styles.Title.Render("Company id: ")
	field := g.styles.InputField.Render(g.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (g *GroupInput) Value() string {
	return g.textinput.Value()
}

// SetValue sets the input value.
func (g *GroupInput) SetValue(value string) {
	g.textinput.SetValue(value)
}

// Key parses the current value as a company id.
func (g *GroupInput) Key() (domain.GroupKey, error) {
	return domain.ParseGroupKey(strings.TrimSpace(g.textinput.Value()))
}

// Focus sets focus on the input.
func (g *GroupInput) Focus() tea.Cmd {
	return g.textinput.Focus()
}

// Focused returns whether the input is focused.
func (g *GroupInput) Focused() bool {
	return g.textinput.Focused()
}

// SetWidth sets the width of the input.
func (g *GroupInput) SetWidth(width int) {
	g.width = width
	inputWidth := width - 20
	if inputWidth < 12 {
		inputWidth = 12
	}
	g.textinput.Width = inputWidth
}

// Width returns the current width.
func (g *GroupInput) Width() int {
	return g.width
}

// Reset clears the input.
func (g *GroupInput) Reset() {
	g.textinput.Reset()
}
