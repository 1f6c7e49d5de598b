package driving

import "github.com/custodia-labs/pbi-refresh/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults for unset keys.
	Get() (*domain.Settings, error)

	// Set validates and persists one setting by its config key.
	Set(key, value string) error

	// Validate checks every stored setting and reports all problems at once.
	Validate() error

	// Keys returns the recognised config keys in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings

	// Path returns the configuration file path.
	Path() string
}
