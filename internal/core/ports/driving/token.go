package driving

import (
	"context"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// TokenService hands out a usable bearer token, reusing the cached one while it is valid.
type TokenService interface {
	// ObtainToken returns a valid token: the cached one if it has not expired,
	// otherwise a newly acquired one which is then cached.
	// Returns an error wrapping domain.ErrTokenUnavailable if acquisition fails.
	ObtainToken(ctx context.Context, creds domain.CredentialSet) (*domain.Token, error)

	// Inspect describes a token as of the service clock.
	Inspect(token domain.Token) domain.TokenInfo

	// ClearCache removes the cached token so the next ObtainToken acquires a new one.
	ClearCache(ctx context.Context) error
}
