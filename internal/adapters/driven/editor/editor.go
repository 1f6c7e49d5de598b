// Package editor builds the command that opens a file for the user to edit.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoEditor is returned when neither an editor variable nor a platform opener is available.
var ErrNoEditor = errors.New("no editor available: set $VISUAL or $EDITOR")

// Launcher resolves the program used to open files.
type Launcher struct {
	getenv func(string) string
	goos   string
}

// New creates a Launcher reading the process environment.
func New() *Launcher {
	return &Launcher{getenv: os.Getenv, goos: runtime.GOOS}
}

// Command returns an unstarted command that opens path.
// $VISUAL wins over $EDITOR; both may carry arguments ("code --wait").
// Without either, the platform's default opener is used.
func (l *Launcher) Command(path string) (*exec.Cmd, error) {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(l.getenv(name)); len(fields) > 0 {
			args := append(fields[1:], path)
			return exec.Command(fields[0], args...), nil //nolint:gosec // the user chose this program
		}
	}

	switch l.goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path), nil
	default:
		return nil, fmt.Errorf("%w (platform %s)", ErrNoEditor, l.goos)
	}
}

// IsTerminalEditor reports whether cmd came from $VISUAL or $EDITOR and
// therefore needs the terminal, as opposed to a detached desktop opener.
func (l *Launcher) IsTerminalEditor() bool {
	return strings.TrimSpace(l.getenv("VISUAL")) != "" || strings.TrimSpace(l.getenv("EDITOR")) != ""
}
