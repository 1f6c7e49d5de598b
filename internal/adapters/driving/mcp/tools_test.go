package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

func newTestServer(t *testing.T, svc *mockRefreshService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Refresh: svc})
	require.NoError(t, err)
	return server
}

func TestServer_handleListGroups(t *testing.T) {
	ctx := context.Background()

	t.Run("returns groups in key order", func(t *testing.T) {
		svc := &mockRefreshService{
			registry: domain.NewRegistry([]domain.RegistryEntry{
				{ID: 7, GUID: []string{"d-3"}},
				{ID: 2, GUID: []string{"d-1", "d-2"}},
				{ID: 9},
			}),
		}
		server := newTestServer(t, svc)

		_, output, err := server.handleListGroups(ctx, nil, ListGroupsInput{})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
		require.Len(t, output.Groups, 3)
		assert.Equal(t, uint32(2), output.Groups[0].GroupID)
		assert.Equal(t, []string{"d-1", "d-2"}, output.Groups[0].Datasets)
		assert.Equal(t, uint32(7), output.Groups[1].GroupID)
		assert.Equal(t, []string{}, output.Groups[2].Datasets)
	})

	t.Run("returns error when registry fails", func(t *testing.T) {
		svc := &mockRefreshService{registryErr: errors.New("read registry: no such file")}
		server := newTestServer(t, svc)

		_, _, err := server.handleListGroups(ctx, nil, ListGroupsInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no such file")
	})
}

func TestServer_handleRefreshGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches the requested group and counts outcomes", func(t *testing.T) {
		svc := &mockRefreshService{
			results: []domain.RefreshResult{
				{RunID: "run-1", GroupKey: 3, ResourceID: "d-1", Outcome: domain.Success(202)},
				{RunID: "run-1", GroupKey: 3, ResourceID: "d-2", Outcome: domain.Failure(404, "not found")},
			},
		}
		server := newTestServer(t, svc)

		_, output, err := server.handleRefreshGroup(ctx, nil, RefreshGroupInput{GroupID: 3})

		require.NoError(t, err)
		require.Len(t, svc.modes, 1)
		key, single := svc.modes[0].Key()
		assert.True(t, single)
		assert.Equal(t, domain.GroupKey(3), key)

		assert.Equal(t, "run-1", output.RunID)
		assert.Equal(t, 1, output.Accepted)
		assert.Equal(t, 1, output.Rejected)
		require.Len(t, output.Results, 2)
		assert.True(t, output.Results[0].Accepted)
		assert.Equal(t, 202, output.Results[0].StatusCode)
		assert.False(t, output.Results[1].Accepted)
		assert.Equal(t, "not found", output.Results[1].Detail)
	})

	t.Run("unknown group returns error", func(t *testing.T) {
		svc := &mockRefreshService{refreshErr: fmt.Errorf("group 42: %w", domain.ErrNotFound)}
		server := newTestServer(t, svc)

		_, _, err := server.handleRefreshGroup(ctx, nil, RefreshGroupInput{GroupID: 42})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestServer_handleRefreshAll(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches all groups", func(t *testing.T) {
		svc := &mockRefreshService{
			results: []domain.RefreshResult{
				{RunID: "run-2", GroupKey: 1, ResourceID: "d-1", Outcome: domain.Success(202)},
			},
		}
		server := newTestServer(t, svc)

		_, output, err := server.handleRefreshAll(ctx, nil, RefreshAllInput{})

		require.NoError(t, err)
		require.Len(t, svc.modes, 1)
		assert.True(t, svc.modes[0].IsAll())
		assert.Equal(t, 1, output.Accepted)
		assert.Equal(t, 0, output.Rejected)
	})

	t.Run("empty registry yields empty results", func(t *testing.T) {
		server := newTestServer(t, &mockRefreshService{})

		_, output, err := server.handleRefreshAll(ctx, nil, RefreshAllInput{})

		require.NoError(t, err)
		assert.Empty(t, output.Results)
		assert.Empty(t, output.RunID)
	})

	t.Run("token failure returns error", func(t *testing.T) {
		svc := &mockRefreshService{refreshErr: fmt.Errorf("%w: bad password", domain.ErrTokenUnavailable)}
		server := newTestServer(t, svc)

		_, _, err := server.handleRefreshAll(ctx, nil, RefreshAllInput{})

		assert.ErrorIs(t, err, domain.ErrTokenUnavailable)
	})
}
