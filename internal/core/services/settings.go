package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyAuthorityURL      = "auth.authority_url"
	KeyAPIBaseURL        = "powerbi.api_url"
	KeyTimeoutSeconds    = "http.timeout_seconds"
	KeyRequestsPerSecond = "powerbi.requests_per_second"
	KeyRegistryFile      = "registry.file"
)

var settingKeys = []string{
	KeyAuthorityURL,
	KeyAPIBaseURL,
	KeyTimeoutSeconds,
	KeyRequestsPerSecond,
	KeyRegistryFile,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Unset or unusable values fall back to defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		AuthorityURL:      s.getString(KeyAuthorityURL, defaults.AuthorityURL),
		APIBaseURL:        strings.TrimRight(s.getString(KeyAPIBaseURL, defaults.APIBaseURL), "/"),
		Timeout:           defaults.Timeout,
		RequestsPerSecond: defaults.RequestsPerSecond,
		RegistryFile:      s.getString(KeyRegistryFile, defaults.RegistryFile),
	}

	if secs := s.configStore.GetInt(KeyTimeoutSeconds); secs > 0 {
		settings.Timeout = time.Duration(secs) * time.Second
	}
	if _, exists := s.configStore.Get(KeyRequestsPerSecond); exists {
		settings.RequestsPerSecond = s.configStore.GetFloat(KeyRequestsPerSecond)
	}

	return settings, nil
}

// Set validates value for key and persists it with its native type.
func (s *SettingsService) Set(key, value string) error {
	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Validate checks every stored setting.
func (s *SettingsService) Validate() error {
	var result *multierror.Error
	for _, key := range settingKeys {
		raw, exists := s.configStore.Get(key)
		if !exists {
			continue
		}
		if _, err := parseSetting(key, fmt.Sprint(raw)); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Keys returns the recognised config keys.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func parseSetting(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyAuthorityURL, KeyAPIBaseURL:
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("%w: %s must be an absolute URL, got %q", domain.ErrInvalidInput, key, value)
		}
		return value, nil
	case KeyTimeoutSeconds:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
		}
		return n, nil
	case KeyRequestsPerSecond:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number, got %q", domain.ErrInvalidInput, key, value)
		}
		return f, nil
	case KeyRegistryFile:
		if value == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownSetting, key)
	}
}
