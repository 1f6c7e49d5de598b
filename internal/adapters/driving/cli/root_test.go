package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "pbi-refresh", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"dir", "verbose", "pause", "no-cache"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"refresh", "groups", "token", "config", "tui", "mcp", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_NoTerminalShowsHelp(t *testing.T) {
	out, _, err := execute(t, nil)

	require.NoError(t, err)
	assert.Contains(t, out, "pbi-refresh triggers refreshes")
	assert.Contains(t, out, "Available Commands")
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	defer logger.SetVerbose(false)

	_, _, err := execute(t, nil, "version", "--verbose")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestLoadServices_UsesWirerWithFlags(t *testing.T) {
	var got WireOptions
	originalWirer := wirer
	SetWirer(func(opts WireOptions) (*Services, error) {
		got = opts
		svc, _, _, _ := newMockServices()
		return svc, nil
	})
	defer SetWirer(originalWirer)

	dir := t.TempDir()
	_, _, err := execute(t, nil, "groups", "--dir", dir, "--no-cache")

	require.NoError(t, err)
	assert.Equal(t, WireOptions{Dir: dir, NoCache: true}, got)
}

func TestLoadServices_DefaultsToWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var got WireOptions
	originalWirer := wirer
	SetWirer(func(opts WireOptions) (*Services, error) {
		got = opts
		svc, _, _, _ := newMockServices()
		return svc, nil
	})
	defer SetWirer(originalWirer)

	_, _, err := execute(t, nil, "groups")

	require.NoError(t, err)
	assert.NotEmpty(t, got.Dir)
	assert.False(t, got.NoCache)
}

func TestLoadServices_NoWirer(t *testing.T) {
	originalWirer := wirer
	SetWirer(nil)
	defer SetWirer(originalWirer)

	_, _, err := execute(t, nil, "groups")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}

func TestPause(t *testing.T) {
	originalTerminal := isTerminal
	originalStdin := stdin
	defer func() {
		isTerminal = originalTerminal
		stdin = originalStdin
		flagPause = false
	}()

	t.Run("disabled", func(t *testing.T) {
		flagPause = false
		isTerminal = func(int) bool { return true }
		out := new(bytes.Buffer)

		pause(out)

		assert.Empty(t, out.String())
	})

	t.Run("not a terminal", func(t *testing.T) {
		flagPause = true
		isTerminal = func(int) bool { return false }
		out := new(bytes.Buffer)

		pause(out)

		assert.Empty(t, out.String())
	})

	t.Run("waits for enter", func(t *testing.T) {
		flagPause = true
		isTerminal = func(int) bool { return true }
		reader := strings.NewReader("\nleftover")
		stdin = reader
		out := new(bytes.Buffer)

		pause(out)

		assert.Contains(t, out.String(), "Press Enter to exit")
		assert.Less(t, reader.Len(), len("\nleftover"))
	})
}

func TestTUICmd_RunsApp(t *testing.T) {
	var ran *tui.App
	original := runApp
	runApp = func(app *tui.App) error {
		ran = app
		return nil
	}
	defer func() { runApp = original }()

	svc, _, _, _ := newMockServices()
	_, _, err := execute(t, svc, "tui")

	require.NoError(t, err)
	require.NotNil(t, ran)
}

func TestTUICmd_RunError(t *testing.T) {
	original := runApp
	runApp = func(*tui.App) error { return errors.New("could not open a new TTY") }
	defer func() { runApp = original }()

	svc, _, _, _ := newMockServices()
	_, _, err := execute(t, svc, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TUI error")
}

func TestTUICmd_TokenFailureExitsWithError(t *testing.T) {
	original := runApp
	runApp = func(app *tui.App) error {
		app.Update(messages.RefreshCompleted{
			Mode: domain.AllGroups(),
			Err:  fmt.Errorf("%w: status 401", domain.ErrTokenUnavailable),
		})
		return nil
	}
	defer func() { runApp = original }()

	svc, _, _, _ := newMockServices()
	_, _, err := execute(t, svc, "tui")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTokenUnavailable)
}

func TestRootCmd_TerminalLaunchesTUI(t *testing.T) {
	var ran bool
	original := runApp
	runApp = func(*tui.App) error {
		ran = true
		return nil
	}
	defer func() { runApp = original }()

	svc, _, _, _ := newMockServices()
	SetServices(svc)
	resetFlags(rootCmd)
	originalTerminal := isTerminal
	isTerminal = func(int) bool { return true }
	defer func() {
		isTerminal = originalTerminal
		SetServices(nil)
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetArgs([]string{})
	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, ran)
}

func TestMCPServeCmd_Flags(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("http")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}
