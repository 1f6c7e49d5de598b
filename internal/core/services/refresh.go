package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driving"
	"github.com/custodia-labs/pbi-refresh/internal/logger"
)

// Ensure RefreshService implements the interface.
var _ driving.RefreshService = (*RefreshService)(nil)

// RefreshService ties the credential and registry sources to the token and dispatch services.
type RefreshService struct {
	credentials driven.CredentialSource
	registry    driven.RegistrySource
	tokens      driving.TokenService
	dispatcher  driving.DispatchService

	mu     sync.Mutex
	groups *domain.Registry
}

// NewRefreshService creates a new refresh service.
func NewRefreshService(
	credentials driven.CredentialSource,
	registry driven.RegistrySource,
	tokens driving.TokenService,
	dispatcher driving.DispatchService,
) *RefreshService {
	return &RefreshService{
		credentials: credentials,
		registry:    registry,
		tokens:      tokens,
		dispatcher:  dispatcher,
	}
}

// Registry returns the resource groups, reading the registry file once.
// A failed read is not cached, so a fixed file is picked up on the next call.
func (s *RefreshService) Registry(ctx context.Context) (domain.Registry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.groups != nil {
		return *s.groups, nil
	}

	groups, err := s.registry.Registry(ctx)
	if err != nil {
		return domain.Registry{}, err
	}
	logger.Info("loaded %d group(s), %d dataset(s) from %s", groups.Len(), groups.ResourceCount(), s.registry.Path())
	s.groups = &groups
	return groups, nil
}

// RegistryPath returns the registry file path.
func (s *RefreshService) RegistryPath() string {
	return s.registry.Path()
}

// Token loads credentials and obtains a valid token.
func (s *RefreshService) Token(ctx context.Context) (*domain.Token, error) {
	creds, err := s.credentials.Credentials(ctx)
	if err != nil {
		// Only ErrTokenUnavailable may match; the source's own sentinels stay out of the chain.
		return nil, fmt.Errorf("%w: load credentials: %v", domain.ErrTokenUnavailable, err)
	}
	return s.tokens.ObtainToken(ctx, creds)
}

// Refresh dispatches refreshes for mode with a freshly obtained or cached token.
func (s *RefreshService) Refresh(
	ctx context.Context,
	mode domain.DispatchMode,
	onResult driving.ResultHandler,
) ([]domain.RefreshResult, error) {
	groups, err := s.Registry(ctx)
	if err != nil {
		return nil, err
	}

	if key, single := mode.Key(); single {
		if _, ok := groups.Get(key); !ok {
			return nil, fmt.Errorf("group %s: %w", key, domain.ErrNotFound)
		}
	}

	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}

	return s.dispatcher.Dispatch(ctx, mode, groups, *token, onResult)
}
