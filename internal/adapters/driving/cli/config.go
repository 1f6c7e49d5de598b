package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pbi-refresh/internal/adapters/driven/editor"
	"github.com/custodia-labs/pbi-refresh/internal/core/services"
)

// editorCommand builds the process that opens path in the user's editor. Replaced in tests.
var editorCommand = func(path string) (*exec.Cmd, error) {
	return editor.New().Command(path)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `Show and change the settings stored in config.toml in the working directory.

Keys:
  auth.authority_url           identity endpoint for token requests
  powerbi.api_url              Power BI REST base URL
  powerbi.requests_per_second  pacing of refresh requests (0 = unlimited)
  http.timeout_seconds         per-request timeout
  registry.file                companies file, relative to the working directory`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the companies file in your editor",
	Long: `Open the companies file (dataset.json by default) in $VISUAL, $EDITOR,
or the platform's default application. Use --config to edit config.toml instead.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

func init() {
	configEditCmd.Flags().Bool("config", false, "edit config.toml instead of the companies file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}

	settings, err := svc.Settings.Get()
	if err != nil {
		return err
	}

	values := map[string]string{
		services.KeyAuthorityURL:      settings.AuthorityURL,
		services.KeyAPIBaseURL:        settings.APIBaseURL,
		services.KeyTimeoutSeconds:    strconv.Itoa(int(settings.Timeout.Seconds())),
		services.KeyRequestsPerSecond: strconv.FormatFloat(settings.RequestsPerSecond, 'g', -1, 64),
		services.KeyRegistryFile:      settings.RegistryFile,
	}

	out := cmd.OutOrStdout()
	for _, key := range svc.Settings.Keys() {
		fmt.Fprintf(out, "%-28s %s\n", key, values[key])
	}

	if err := svc.Settings.Validate(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "\nWarning: %v\n", err)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	if err := svc.Settings.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	cmd.Println(svc.Settings.Path())
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	editConfig, _ := cmd.Flags().GetBool("config")

	svc, err := loadServices()
	if err != nil {
		return err
	}

	path := svc.Refresh.RegistryPath()
	if editConfig {
		path = svc.Settings.Path()
	}
	if err := ensureFile(path, seedContent(path)); err != nil {
		return err
	}

	c, err := editorCommand(path)
	if err != nil {
		return err
	}
	c.Stdin = os.Stdin
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	cmd.Printf("Edited %s. Changes apply from the next run.\n", path)
	return nil
}

// seedContent is written to a new file so it parses before the user adds anything.
func seedContent(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "[]\n"
	}
	return ""
}

// ensureFile creates path with seed if it does not exist.
func ensureFile(path, seed string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(seed), 0o600); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}
