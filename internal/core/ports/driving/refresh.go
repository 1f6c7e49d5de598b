package driving

import (
	"context"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// RefreshService is the entry point the user interfaces drive:
// it loads credentials and the registry, obtains a token and dispatches.
type RefreshService interface {
	// Registry returns the resource groups. The file is read on first use only.
	Registry(ctx context.Context) (domain.Registry, error)

	// RegistryPath returns the file the registry is read from.
	RegistryPath() string

	// Token returns a valid token, acquiring one if the cache cannot serve.
	Token(ctx context.Context) (*domain.Token, error)

	// Refresh obtains a token and dispatches refreshes for mode.
	// An unknown group fails with domain.ErrNotFound before any network call.
	Refresh(ctx context.Context, mode domain.DispatchMode, onResult ResultHandler) ([]domain.RefreshResult, error)
}
