// Package file provides file-backed storage adapters.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
)

// Ensure TokenCache implements the interface.
var _ driven.TokenCache = (*TokenCache)(nil)

// TokenCache stores the token as a JSON object in a single file.
// The file holds a live bearer credential, so it is written owner-only.
type TokenCache struct {
	path string
}

// NewTokenCache creates a token cache at dir/.token.
func NewTokenCache(dir string) *TokenCache {
	return &TokenCache{path: filepath.Join(dir, domain.TokenFileName)}
}

// Path returns the cache file path.
func (c *TokenCache) Path() string {
	return c.path
}

// Load reads the cached token.
func (c *TokenCache) Load(_ context.Context) (*domain.Token, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCacheMiss, err)
	}

	var token domain.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", domain.ErrCacheMiss, c.path, err)
	}
	if token.IsZero() {
		return nil, fmt.Errorf("%w: %s has no access_token", domain.ErrCacheMiss, c.path)
	}
	return &token, nil
}

// Save overwrites the cache file.
// The token is written to a temporary file and renamed so readers never see a partial record.
func (c *TokenCache) Save(_ context.Context, token domain.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write token: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close token: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		return fmt.Errorf("replace %s: %w", c.path, err)
	}
	return nil
}

// Clear removes the cache file.
func (c *TokenCache) Clear(_ context.Context) error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", c.path, err)
	}
	return nil
}
