package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
)

// Ensure TokenCache implements the interface.
var _ driven.TokenCache = (*TokenCache)(nil)

// TokenCache holds the token in process memory.
// Selected by --no-cache, so a token never touches disk.
type TokenCache struct {
	mu    sync.RWMutex
	token *domain.Token
}

// NewTokenCache creates an empty in-memory token cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// Load returns a copy of the cached token.
func (c *TokenCache) Load(_ context.Context) (*domain.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return nil, domain.ErrCacheMiss
	}
	t := *c.token
	return &t, nil
}

// Save replaces the cached token.
func (c *TokenCache) Save(_ context.Context, token domain.Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = &token
	return nil
}

// Clear drops the cached token.
func (c *TokenCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = nil
	return nil
}
