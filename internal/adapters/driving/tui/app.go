package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/views/groupinput"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/views/outcomes"
	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView     *menu.View
	groupView    *groupinput.View
	outcomesView *outcomes.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// pending delivers progress of the run in flight; nil when idle.
	pending <-chan tea.Msg

	// err holds the last error that occurred.
	err error

	// fatal is set when a run cannot proceed without a token; the app quits on it.
	fatal error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		groupView:    groupinput.NewView(s),
		outcomesView: outcomes.NewView(s),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("pbi-refresh"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewGroupInput:
			a.groupView, cmd = a.groupView.Update(msg)
		case messages.ViewOutcomes:
			a.outcomesView, cmd = a.outcomesView.Update(msg)
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewGroupInput {
			a.groupView.Reset()
			return a, a.groupView.Init()
		}
		return a, nil

	case messages.RefreshRequested:
		return a, a.startRefresh(msg.Mode)

	case messages.ResultReceived:
		a.outcomesView, _ = a.outcomesView.Update(msg)
		return a, waitForMsg(a.pending)

	case messages.RefreshCompleted:
		a.pending = nil
		return a, a.finishRefresh(msg)

	case messages.EditorRequested:
		return a, a.openEditor()

	case messages.EditorFinished:
		if msg.Err != nil {
			a.err = msg.Err
			a.menuView.SetStatus(fmt.Sprintf("Editor failed: %v", msg.Err), true)
		} else {
			a.menuView.SetStatus(fmt.Sprintf("Edited %s. Restart pbi-refresh to apply your changes.", msg.Path), false)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.menuView.SetStatus(msg.Err.Error(), true)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink) to the active view
	switch a.currentView {
	case messages.ViewGroupInput:
		a.groupView, cmd = a.groupView.Update(msg)
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewOutcomes:
		a.outcomesView, cmd = a.outcomesView.Update(msg)
	}
	return a, cmd
}

// startRefresh runs the dispatch in the background and streams its progress
// back through a channel, one message per command.
func (a *App) startRefresh(mode domain.DispatchMode) tea.Cmd {
	if a.pending != nil {
		logger.Debug("refresh already running, ignoring request for %s", mode)
		return nil
	}

	ch := make(chan tea.Msg, 1)
	ctx := a.ctx
	refresh := a.ports.Refresh

	send := func(m tea.Msg) {
		select {
		case ch <- m:
		case <-ctx.Done():
		}
	}

	go func() {
		defer close(ch)
		results, err := refresh.Refresh(ctx, mode, func(r domain.RefreshResult) {
			send(messages.ResultReceived{Result: r})
		})
		send(messages.RefreshCompleted{Mode: mode, Results: results, Err: err})
	}()

	a.pending = ch
	a.err = nil
	a.outcomesView.Start(mode)
	a.currentView = messages.ViewOutcomes
	return waitForMsg(ch)
}

// finishRefresh routes an unknown company back to the prompt and quits when
// no token could be obtained; anything else is shown on the outcomes view.
func (a *App) finishRefresh(msg messages.RefreshCompleted) tea.Cmd {
	if key, single := msg.Mode.Key(); single && errors.Is(msg.Err, domain.ErrNotFound) {
		a.currentView = messages.ViewGroupInput
		a.groupView.SetError(fmt.Sprintf("Company %s was not found in %s. Try again.", key, a.ports.Refresh.RegistryPath()))
		return nil
	}

	a.err = msg.Err
	var cmd tea.Cmd
	a.outcomesView, cmd = a.outcomesView.Update(msg)
	if errors.Is(msg.Err, domain.ErrTokenUnavailable) {
		a.fatal = msg.Err
		return tea.Quit
	}
	return cmd
}

func (a *App) openEditor() tea.Cmd {
	if a.ports.Editor == nil {
		a.menuView.SetStatus(ErrNoEditor.Error(), true)
		return nil
	}

	path := a.ports.Refresh.RegistryPath()
	c, err := a.ports.Editor.Command(path)
	if err != nil {
		a.err = err
		a.menuView.SetStatus(err.Error(), true)
		return nil
	}

	return tea.ExecProcess(c, func(err error) tea.Msg {
		return messages.EditorFinished{Path: path, Err: err}
	})
}

// waitForMsg blocks on ch and returns its next message, or nil once it is closed.
func waitForMsg(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewGroupInput:
		return a.groupView.View()
	case messages.ViewOutcomes:
		return a.outcomesView.View()
	case messages.ViewMenu:
		return a.menuView.View()
	default:
		return a.menuView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Results returns the outcomes of the current or last run.
func (a *App) Results() []domain.RefreshResult {
	return a.outcomesView.Results()
}

// Refreshing reports whether a run is in flight.
func (a *App) Refreshing() bool {
	return a.pending != nil
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Fatal returns the error that ended the session, or nil after a normal quit.
func (a *App) Fatal() error {
	return a.fatal
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.groupView.SetDimensions(width, height)
	a.outcomesView.SetDimensions(width, height)
}
