// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// OutcomeList renders refresh results under a header per company and scrolls
// when they do not fit.
type OutcomeList struct {
	results []domain.RefreshResult
	offset  int
	styles  *styles.Styles
	width   int
	height  int
}

// NewOutcomeList creates an empty outcome list.
func NewOutcomeList(s *styles.Styles) *OutcomeList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &OutcomeList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (o *OutcomeList) Init() tea.Cmd {
	return nil
}

// Update handles scrolling.
func (o *OutcomeList) Update(msg tea.Msg) (*OutcomeList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			o.ScrollUp()
		case "down", "j":
			o.ScrollDown()
		}
	}
	return o, nil
}

// View renders the visible lines.
func (o *OutcomeList) View() string {
	if len(o.results) == 0 {
		return o.styles.Muted.Render("No datasets refreshed yet")
	}

	lines := o.lines()
	visible := o.visibleCount()
	start := o.offset
	if start > len(lines)-visible {
		start = max(len(lines)-visible, 0)
	}
	end := min(start+visible, len(lines))

	return strings.Join(lines[start:end], "\n")
}

// lines renders every result, inserting a company header whenever the group changes.
func (o *OutcomeList) lines() []string {
	lines := make([]string, 0, len(o.results)+4)
	var current *domain.GroupKey

	for i := range o.results {
		r := &o.results[i]
		if current == nil || *current != r.GroupKey {
			key := r.GroupKey
			current = &key
			lines = append(lines, o.styles.Subtitle.Render(fmt.Sprintf("Company: %s", key)))
		}
		lines = append(lines, o.renderResult(r))
	}
	return lines
}

func (o *OutcomeList) renderResult(r *domain.RefreshResult) string {
	label := o.styles.Accepted.Render("Accepted")
	if !r.Outcome.Succeeded() {
		label = o.styles.Rejected.Render("Rejected")
	}

	line := fmt.Sprintf("  - %s: %s", r.ResourceID, label)
	if !r.Outcome.Succeeded() && r.Outcome.Detail != "" {
		detail := r.Outcome.Detail
		maxLen := max(o.width-len(r.ResourceID)-20, 10)
		if len(detail) > maxLen {
			detail = detail[:maxLen-3] + "..."
		}
		line += o.styles.Muted.Render("  " + detail)
	}
	return line
}

func (o *OutcomeList) visibleCount() int {
	return max(o.height, 1)
}

// Append adds a result and keeps the newest line in view.
func (o *OutcomeList) Append(r domain.RefreshResult) {
	o.results = append(o.results, r)
	o.offset = max(len(o.lines())-o.visibleCount(), 0)
}

// SetResults replaces all results and scrolls to the top.
func (o *OutcomeList) SetResults(results []domain.RefreshResult) {
	o.results = results
	o.offset = 0
}

// Results returns the current results.
func (o *OutcomeList) Results() []domain.RefreshResult {
	return o.results
}

// Offset returns the index of the first visible line.
func (o *OutcomeList) Offset() int {
	return o.offset
}

// ScrollUp moves the view up one line.
func (o *OutcomeList) ScrollUp() {
	if o.offset > 0 {
		o.offset--
	}
}

// ScrollDown moves the view down one line.
func (o *OutcomeList) ScrollDown() {
	if o.offset < len(o.lines())-o.visibleCount() {
		o.offset++
	}
}

// Counts returns the number of accepted and rejected datasets.
func (o *OutcomeList) Counts() (accepted, rejected int) {
	for i := range o.results {
		if o.results[i].Outcome.Succeeded() {
			accepted++
		} else {
			rejected++
		}
	}
	return accepted, rejected
}

// SetDimensions sets the component dimensions.
func (o *OutcomeList) SetDimensions(width, height int) {
	o.width = width
	o.height = height
}

// Count returns the number of results.
func (o *OutcomeList) Count() int {
	return len(o.results)
}

// IsEmpty returns whether the list is empty.
func (o *OutcomeList) IsEmpty() bool {
	return len(o.results) == 0
}

// Reset clears all results.
func (o *OutcomeList) Reset() {
	o.results = nil
	o.offset = 0
}
