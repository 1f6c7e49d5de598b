package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
)

// Ensure SecretsSource implements the interface.
var _ driven.CredentialSource = (*SecretsSource)(nil)

// SecretEnvPrefix prefixes environment variables that override secrets.toml,
// e.g. PBI_REFRESH_PASSWORD overrides password.
//
//nolint:gosec // G101: This is a variable name prefix, not a credential.
const SecretEnvPrefix = "PBI_REFRESH_"

// SecretsSource reads credentials from a flat TOML file of key = "value" pairs.
type SecretsSource struct {
	path   string
	lookup func(string) (string, bool)
}

// NewSecretsSource creates a credential source reading dir/secrets.toml.
func NewSecretsSource(dir string) *SecretsSource {
	return &SecretsSource{
		path:   filepath.Join(dir, domain.SecretsFileName),
		lookup: os.LookupEnv,
	}
}

// Path returns the secrets file path.
func (s *SecretsSource) Path() string {
	return s.path
}

// Credentials loads the secrets file and applies environment overrides.
// A missing file is fine when the environment supplies the secrets.
// Scalar values are converted to strings; tables and arrays are rejected.
func (s *SecretsSource) Credentials(_ context.Context) (domain.CredentialSet, error) {
	creds := domain.CredentialSet{}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	default:
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", s.path, err)
		}
		for key, value := range raw {
			switch v := value.(type) {
			case map[string]any, []any:
				return nil, fmt.Errorf("%w: %s: %q must be a plain value", domain.ErrInvalidInput, s.path, key)
			case string:
				creds[key] = v
			default:
				creds[key] = fmt.Sprint(v)
			}
		}
	}

	for _, name := range domain.TokenRequestSecrets {
		if v, ok := s.lookup(SecretEnvPrefix + strings.ToUpper(name)); ok {
			creds[name] = v
		}
	}

	if len(creds) == 0 {
		return nil, fmt.Errorf("%w in %s or %s* environment", domain.ErrMissingCredentials, s.path, SecretEnvPrefix)
	}
	return creds, nil
}
