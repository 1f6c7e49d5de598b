package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// mockRefresher implements driven.Refresher for testing.
type mockRefresher struct {
	calls    []string
	tokens   []string
	outcomes map[string]domain.RefreshOutcome
	onCall   func(resourceID string)
}

func (m *mockRefresher) Refresh(_ context.Context, resourceID string, token domain.Token) domain.RefreshOutcome {
	m.calls = append(m.calls, resourceID)
	m.tokens = append(m.tokens, token.AccessToken)
	if m.onCall != nil {
		m.onCall(resourceID)
	}
	if o, ok := m.outcomes[resourceID]; ok {
		return o
	}
	return domain.Success(202)
}

func testRegistry() domain.Registry {
	return domain.NewRegistry([]domain.RegistryEntry{
		{ID: 7, GUID: []string{"g1", "g2"}},
		{ID: 3, GUID: []string{"g0"}},
		{ID: 9, GUID: nil},
	})
}

func newTestDispatch(r *mockRefresher) *DispatchService {
	svc := NewDispatchService(r)
	svc.newRunID = func() string { return "run-1" }
	return svc
}

func TestDispatchService_AllGroups(t *testing.T) {
	r := &mockRefresher{}
	svc := newTestDispatch(r)
	tok := domain.Token{AccessToken: "tok"}

	results, err := svc.Dispatch(context.Background(), domain.AllGroups(), testRegistry(), tok, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"g0", "g1", "g2"}, r.calls)
	assert.Equal(t, []string{"tok", "tok", "tok"}, r.tokens)
	require.Len(t, results, 3)
	assert.Equal(t, domain.GroupKey(3), results[0].GroupKey)
	assert.Equal(t, domain.GroupKey(7), results[1].GroupKey)
	assert.Equal(t, "g2", results[2].ResourceID)
	for _, res := range results {
		assert.Equal(t, "run-1", res.RunID)
	}
}

func TestDispatchService_SingleGroup(t *testing.T) {
	r := &mockRefresher{}
	svc := newTestDispatch(r)

	results, err := svc.Dispatch(context.Background(), domain.SingleGroup(7), testRegistry(), domain.Token{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"g1", "g2"}, r.calls)
	require.Len(t, results, 2)
	assert.Equal(t, domain.GroupKey(7), results[0].GroupKey)
}

func TestDispatchService_SingleGroup_NotFound(t *testing.T) {
	r := &mockRefresher{}
	svc := newTestDispatch(r)

	results, err := svc.Dispatch(context.Background(), domain.SingleGroup(42), testRegistry(), domain.Token{}, nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "42")
	assert.Nil(t, results)
	assert.Empty(t, r.calls, "no request may be issued for an unknown group")
}

func TestDispatchService_EmptyGroup(t *testing.T) {
	r := &mockRefresher{}
	svc := newTestDispatch(r)

	results, err := svc.Dispatch(context.Background(), domain.SingleGroup(9), testRegistry(), domain.Token{}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, r.calls)
}

func TestDispatchService_EmptyRegistry(t *testing.T) {
	r := &mockRefresher{}
	svc := newTestDispatch(r)

	results, err := svc.Dispatch(context.Background(), domain.AllGroups(), domain.NewRegistry(nil), domain.Token{}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDispatchService_FailuresDoNotStopBatch(t *testing.T) {
	r := &mockRefresher{outcomes: map[string]domain.RefreshOutcome{
		"g0": domain.Failure(0, "connection refused"),
		"g1": domain.Failure(401, "Unauthorized"),
	}}
	svc := newTestDispatch(r)

	results, err := svc.Dispatch(context.Background(), domain.AllGroups(), testRegistry(), domain.Token{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"g0", "g1", "g2"}, r.calls)
	require.Len(t, results, 3)
	assert.False(t, results[0].Outcome.Succeeded())
	assert.Equal(t, 0, results[0].Outcome.StatusCode)
	assert.False(t, results[1].Outcome.Succeeded())
	assert.True(t, results[2].Outcome.Succeeded())
}

func TestDispatchService_OnResultInOrder(t *testing.T) {
	r := &mockRefresher{}
	svc := newTestDispatch(r)

	var seen []string
	_, err := svc.Dispatch(context.Background(), domain.AllGroups(), testRegistry(), domain.Token{},
		func(res domain.RefreshResult) {
			// The handler runs right after the request for this item.
			assert.Equal(t, res.ResourceID, r.calls[len(r.calls)-1])
			seen = append(seen, res.ResourceID)
		})
	require.NoError(t, err)

	assert.Equal(t, []string{"g0", "g1", "g2"}, seen)
}

func TestDispatchService_DuplicateResourceIDs(t *testing.T) {
	reg := domain.NewRegistry([]domain.RegistryEntry{
		{ID: 1, GUID: []string{"same", "same"}},
	})
	r := &mockRefresher{}
	svc := newTestDispatch(r)

	results, err := svc.Dispatch(context.Background(), domain.AllGroups(), reg, domain.Token{}, nil)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"same", "same"}, r.calls)
}

func TestDispatchService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &mockRefresher{onCall: func(string) { cancel() }}
	svc := newTestDispatch(r)

	results, err := svc.Dispatch(ctx, domain.AllGroups(), testRegistry(), domain.Token{}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 1)
	assert.Equal(t, []string{"g0"}, r.calls)
}

func TestDispatchService_RunIDPerDispatch(t *testing.T) {
	svc := NewDispatchService(&mockRefresher{})
	reg := domain.NewRegistry([]domain.RegistryEntry{{ID: 1, GUID: []string{"a"}}})

	first, err := svc.Dispatch(context.Background(), domain.AllGroups(), reg, domain.Token{}, nil)
	require.NoError(t, err)
	second, err := svc.Dispatch(context.Background(), domain.AllGroups(), reg, domain.Token{}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, first[0].RunID)
	assert.NotEqual(t, first[0].RunID, second[0].RunID)
}
