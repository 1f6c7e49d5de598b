// Package cli implements the pbi-refresh command line.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driving"
	"github.com/custodia-labs/pbi-refresh/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// SetVersion overrides the reported version.
func SetVersion(v string) {
	version = v
}

// Services bundles the driving ports the commands use.
type Services struct {
	Refresh  driving.RefreshService
	Token    driving.TokenService
	Settings driving.SettingsService
}

// WireOptions carries the global flags needed to build Services.
type WireOptions struct {
	// Dir is the working directory holding .token, secrets.toml, config.toml and the registry.
	Dir string
	// NoCache keeps the token in memory only.
	NoCache bool
}

// Wirer builds Services for the given options.
type Wirer func(opts WireOptions) (*Services, error)

var (
	wirer Wirer
	wired *Services
)

// Persistent flags.
var (
	flagDir     string
	flagVerbose bool
	flagPause   bool
	flagNoCache bool
)

// isTerminal reports whether fd is an interactive terminal. Replaced in tests.
var isTerminal = func(fd int) bool { return term.IsTerminal(fd) }

// stdin is where the pause prompt reads from. Replaced in tests.
var stdin io.Reader = os.Stdin

// SetWirer sets the function that builds services once flags are parsed.
func SetWirer(w Wirer) {
	wirer = w
}

// SetServices injects ready-made services, bypassing the wirer.
func SetServices(s *Services) {
	wired = s
}

var rootCmd = &cobra.Command{
	Use:   "pbi-refresh",
	Short: "Trigger Power BI dataset refreshes",
	Long: `pbi-refresh triggers refreshes of Power BI datasets, grouped by company.

It reads its files from the working directory (--dir):
  secrets.toml  credentials for the identity endpoint
  dataset.json  companies and their dataset ids
  config.toml   optional settings (see 'pbi-refresh config show')
  .token        cached bearer token, managed automatically

Run without a command on a terminal to open the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if isTerminal(int(os.Stdin.Fd())) && isTerminal(int(os.Stdout.Fd())) {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", "", "working directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagPause, "pause", false, "wait for Enter before exiting")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "keep the token in memory instead of .token")
}

// loadServices returns the injected services or builds them from the global flags.
func loadServices() (*Services, error) {
	if wired != nil {
		return wired, nil
	}
	if wirer == nil {
		return nil, errors.New("services not configured")
	}

	dir, err := workingDir()
	if err != nil {
		return nil, err
	}
	logger.Debug("working directory: %s", dir)

	s, err := wirer(WireOptions{Dir: dir, NoCache: flagNoCache})
	if err != nil {
		return nil, err
	}
	wired = s
	return s, nil
}

func workingDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return dir, nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.SetOut(os.Stdout)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	pause(rootCmd.OutOrStdout())
	if err != nil {
		return 1
	}
	return 0
}

// pause waits for Enter when --pause is set and stdin is a terminal,
// so a window opened by double-click stays visible.
func pause(out io.Writer) {
	if !flagPause || !isTerminal(int(os.Stdin.Fd())) {
		return
	}
	fmt.Fprint(out, "Press Enter to exit...")
	_, _ = bufio.NewReader(stdin).ReadString('\n')
}
