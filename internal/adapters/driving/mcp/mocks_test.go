package mcp

import (
	"context"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driving"
)

// mockRefreshService is a mock implementation of driving.RefreshService.
type mockRefreshService struct {
	registry    domain.Registry
	registryErr error
	token       *domain.Token
	results     []domain.RefreshResult
	refreshErr  error
	modes       []domain.DispatchMode
}

func (m *mockRefreshService) Registry(_ context.Context) (domain.Registry, error) {
	return m.registry, m.registryErr
}

func (m *mockRefreshService) RegistryPath() string {
	return "/tmp/dataset.json"
}

func (m *mockRefreshService) Token(_ context.Context) (*domain.Token, error) {
	return m.token, nil
}

func (m *mockRefreshService) Refresh(
	_ context.Context,
	mode domain.DispatchMode,
	onResult driving.ResultHandler,
) ([]domain.RefreshResult, error) {
	m.modes = append(m.modes, mode)
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	for _, r := range m.results {
		if onResult != nil {
			onResult(r)
		}
	}
	return m.results, nil
}
