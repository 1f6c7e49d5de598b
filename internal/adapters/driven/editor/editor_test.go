package editor

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func launcher(env map[string]string, goos string) *Launcher {
	return &Launcher{
		getenv: func(k string) string { return env[k] },
		goos:   goos,
	}
}

func TestLauncher_VisualWins(t *testing.T) {
	l := launcher(map[string]string{"VISUAL": "code --wait", "EDITOR": "vim"}, "linux")

	cmd, err := l.Command("dataset.json")
	require.NoError(t, err)

	assert.Equal(t, "code", filepath.Base(cmd.Args[0]))
	assert.Equal(t, []string{"--wait", "dataset.json"}, cmd.Args[1:])
	assert.True(t, l.IsTerminalEditor())
}

func TestLauncher_EditorFallback(t *testing.T) {
	l := launcher(map[string]string{"VISUAL": "   ", "EDITOR": "nano"}, "linux")

	cmd, err := l.Command("dataset.json")
	require.NoError(t, err)

	assert.Equal(t, []string{"nano", "dataset.json"}, cmd.Args)
}

func TestLauncher_PlatformOpeners(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"open", "f.json"}},
		{"linux", []string{"xdg-open", "f.json"}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "f.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			l := launcher(nil, tt.goos)

			cmd, err := l.Command("f.json")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Args)
			assert.False(t, l.IsTerminalEditor())
		})
	}
}

func TestLauncher_UnsupportedPlatform(t *testing.T) {
	_, err := launcher(nil, "plan9").Command("f.json")
	assert.ErrorIs(t, err, ErrNoEditor)
}
