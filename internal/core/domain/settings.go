package domain

import "time"

// Fixed file names inside the working directory.
const (
	TokenFileName    = ".token"
	SecretsFileName  = "secrets.toml"
	ConfigFileName   = "config.toml"
	RegistryFileName = "dataset.json"
)

// Default endpoints and limits.
const (
	DefaultAuthorityURL      = "https://login.windows.net/common/oauth2/token"
	DefaultAPIBaseURL        = "https://api.powerbi.com/v1.0/myorg"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerSecond = 5.0
)

// Settings holds the runtime configuration read from config.toml.
type Settings struct {
	// AuthorityURL is the OAuth token endpoint.
	AuthorityURL string
	// APIBaseURL is the Power BI REST root; datasets live under it.
	APIBaseURL string
	// Timeout bounds each HTTP request.
	Timeout time.Duration
	// RequestsPerSecond paces refresh calls. Zero or less disables pacing.
	RequestsPerSecond float64
	// RegistryFile is the registry file name, relative to the working directory.
	RegistryFile string
}

// DefaultSettings returns the settings used when config.toml is absent.
func DefaultSettings() Settings {
	return Settings{
		AuthorityURL:      DefaultAuthorityURL,
		APIBaseURL:        DefaultAPIBaseURL,
		Timeout:           DefaultTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		RegistryFile:      RegistryFileName,
	}
}
