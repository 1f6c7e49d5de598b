package driven

import (
	"context"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// TokenCache persists the most recently issued token.
// Only one record exists at a time; Save overwrites it.
type TokenCache interface {
	// Load returns the cached token.
	// Any failure (absent, unreadable, corrupt) is reported as an error wrapping domain.ErrCacheMiss.
	Load(ctx context.Context) (*domain.Token, error)

	// Save replaces the cached token.
	Save(ctx context.Context, token domain.Token) error

	// Clear removes the cached token. Clearing an empty cache is not an error.
	Clear(ctx context.Context) error
}

// TokenAcquirer exchanges credentials for a new token at the identity endpoint.
type TokenAcquirer interface {
	// Acquire performs the credential exchange.
	// It never returns a partially populated token.
	Acquire(ctx context.Context, creds domain.CredentialSet) (*domain.Token, error)
}

// TokenInspector decodes display-only information from an access token.
// Claims are not verified; they must never drive authorization decisions.
type TokenInspector interface {
	// Inspect fills the claim fields of info from the token.
	Inspect(token domain.Token, info *domain.TokenInfo) error
}
