package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driven/editor"
	"github.com/custodia-labs/pbi-refresh/internal/adapters/driving/tui"
)

// runApp runs the TUI program. Replaced in tests.
var runApp = func(app *tui.App) error {
	return app.Run()
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive menu",
	Long: `Launch the interactive menu.

Options:
  All companies  refresh every dataset of every company
  One company    prompt for a company id and refresh its datasets
  Settings       open the companies file in your editor
  Quit

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	svc, err := loadServices()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(svc.Refresh, editor.New()))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return app.Fatal()
}
