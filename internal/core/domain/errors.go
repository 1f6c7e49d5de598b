package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	// For group lookups this is recoverable: the caller re-prompts.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Token Errors.

	// ErrCacheMiss indicates no usable token could be read from the token cache.
	// The lifecycle manager recovers from it by acquiring a new token.
	ErrCacheMiss = errors.New("token cache miss")

	// ErrTokenUnavailable indicates acquisition failed and no cached token could stand in.
	// Every refresh needs a token, so callers treat this as terminal.
	ErrTokenUnavailable = errors.New("token acquisition failed")

	// ErrMissingCredentials indicates neither secrets.toml nor the environment supplied any secret.
	ErrMissingCredentials = errors.New("no credentials")

	// ErrInvalidExpiry indicates a token's expires_on is not a numeric epoch timestamp.
	ErrInvalidExpiry = errors.New("invalid token expiry")

	// Configuration Errors.

	// ErrUnknownSetting indicates a configuration key that pbi-refresh does not recognise.
	ErrUnknownSetting = errors.New("unknown setting")
)
