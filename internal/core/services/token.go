package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driving"
	"github.com/custodia-labs/pbi-refresh/internal/logger"
)

// Ensure TokenService implements the interface.
var _ driving.TokenService = (*TokenService)(nil)

// ValidateToken reports whether token is usable at now.
// A token whose expiry cannot be parsed is treated as expired.
func ValidateToken(token domain.Token, now time.Time) bool {
	expiresAt, err := token.ExpiresAt()
	if err != nil {
		return false
	}
	return now.Before(expiresAt)
}

// TokenService manages the bearer token lifecycle: cache lookup,
// validity check and acquisition on miss or expiry.
type TokenService struct {
	cache     driven.TokenCache
	acquirer  driven.TokenAcquirer
	inspector driven.TokenInspector
	clock     func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the time source used for validity checks.
func WithClock(clock func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.clock = clock
	}
}

// WithInspector sets the claim decoder used by Inspect.
func WithInspector(inspector driven.TokenInspector) TokenOption {
	return func(s *TokenService) {
		s.inspector = inspector
	}
}

// NewTokenService creates a new token service.
func NewTokenService(cache driven.TokenCache, acquirer driven.TokenAcquirer, opts ...TokenOption) *TokenService {
	s := &TokenService{
		cache:    cache,
		acquirer: acquirer,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ObtainToken returns a token valid at the current clock reading.
func (s *TokenService) ObtainToken(ctx context.Context, creds domain.CredentialSet) (*domain.Token, error) {
	logger.Section("Token")

	cached, err := s.cache.Load(ctx)
	switch {
	case err != nil:
		logger.Debug("token cache: %v", err)
	case ValidateToken(*cached, s.clock()):
		logger.Debug("using cached token (expires_on=%s)", cached.ExpiresOn)
		return cached, nil
	default:
		logger.Info("cached token expired (expires_on=%s), acquiring a new one", cached.ExpiresOn)
	}

	if missing := creds.Missing(); len(missing) > 0 {
		logger.Debug("credentials missing %v; the identity endpoint may reject the request", missing)
	}

	token, err := s.acquirer.Acquire(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenUnavailable, err)
	}

	if err := s.cache.Save(ctx, *token); err != nil {
		logger.Warn("could not write token cache: %v", err)
	} else {
		logger.Debug("token cached (expires_on=%s)", token.ExpiresOn)
	}

	return token, nil
}

// Inspect describes token as of the service clock.
// Claim decoding failures are logged and leave the claim fields empty.
func (s *TokenService) Inspect(token domain.Token) domain.TokenInfo {
	now := s.clock()
	info := domain.TokenInfo{
		TokenType: token.TokenType,
		CheckedAt: now,
		Valid:     ValidateToken(token, now),
	}
	if exp, err := token.ExpiresAt(); err == nil {
		info.ExpiresAt = exp
	}

	if s.inspector != nil {
		if err := s.inspector.Inspect(token, &info); err != nil {
			logger.Debug("token claims unavailable: %v", err)
		}
	}
	return info
}

// ClearCache removes the cached token.
func (s *TokenService) ClearCache(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear token cache: %w", err)
	}
	return nil
}
