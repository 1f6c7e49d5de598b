package driven

import (
	"context"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// CredentialSource loads the named secrets used to acquire a token.
type CredentialSource interface {
	Credentials(ctx context.Context) (domain.CredentialSet, error)
}

// RegistrySource loads the resource group registry.
// The registry is read once per process; later edits need a restart.
type RegistrySource interface {
	Registry(ctx context.Context) (domain.Registry, error)

	// Path returns the file the registry is read from.
	Path() string
}
