package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driving"
)

// mockRefreshService implements driving.RefreshService.
type mockRefreshService struct {
	registry    domain.Registry
	registryErr error
	path        string
	token       *domain.Token
	tokenErr    error
	results     []domain.RefreshResult
	refreshErr  error
	modes       []domain.DispatchMode
}

func (m *mockRefreshService) Registry(_ context.Context) (domain.Registry, error) {
	return m.registry, m.registryErr
}

func (m *mockRefreshService) RegistryPath() string {
	if m.path == "" {
		return "/work/dataset.json"
	}
	return m.path
}

func (m *mockRefreshService) Token(_ context.Context) (*domain.Token, error) {
	return m.token, m.tokenErr
}

func (m *mockRefreshService) Refresh(
	_ context.Context,
	mode domain.DispatchMode,
	onResult driving.ResultHandler,
) ([]domain.RefreshResult, error) {
	m.modes = append(m.modes, mode)
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	for _, r := range m.results {
		if onResult != nil {
			onResult(r)
		}
	}
	return m.results, nil
}

// mockTokenService implements driving.TokenService.
type mockTokenService struct {
	info     domain.TokenInfo
	clearErr error
	cleared  int
}

func (m *mockTokenService) ObtainToken(_ context.Context, _ domain.CredentialSet) (*domain.Token, error) {
	return nil, errors.New("mockTokenService: ObtainToken not stubbed")
}

func (m *mockTokenService) Inspect(_ domain.Token) domain.TokenInfo {
	return m.info
}

func (m *mockTokenService) ClearCache(_ context.Context) error {
	m.cleared++
	return m.clearErr
}

// mockSettingsService implements driving.SettingsService.
type mockSettingsService struct {
	settings    domain.Settings
	setErr      error
	validateErr error
	set         map[string]string
	path        string
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = map[string]string{}
	}
	m.set[key] = value
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) Keys() []string {
	return []string{
		"auth.authority_url",
		"powerbi.api_url",
		"http.timeout_seconds",
		"powerbi.requests_per_second",
		"registry.file",
	}
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (m *mockSettingsService) Path() string {
	if m.path == "" {
		return "/work/config.toml"
	}
	return m.path
}

// newMockServices returns services backed by fresh mocks.
func newMockServices() (*Services, *mockRefreshService, *mockTokenService, *mockSettingsService) {
	refresh := &mockRefreshService{}
	tokens := &mockTokenService{}
	settings := &mockSettingsService{settings: domain.DefaultSettings()}
	return &Services{Refresh: refresh, Token: tokens, Settings: settings}, refresh, tokens, settings
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with svc injected and returns what it printed.
func execute(t *testing.T, svc *Services, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	originalTerminal := isTerminal
	isTerminal = func(int) bool { return false }
	SetServices(svc)
	resetFlags(rootCmd)

	t.Cleanup(func() {
		isTerminal = originalTerminal
		SetServices(nil)
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}
