package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupKey(t *testing.T) {
	tests := []struct {
		input   string
		want    GroupKey
		wantErr bool
	}{
		{input: "7", want: 7},
		{input: " 42 ", want: 42},
		{input: "0", want: 0},
		{input: "4294967295", want: 4294967295},
		{input: "4294967296", wantErr: true},
		{input: "-1", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGroupKey(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupKey_String(t *testing.T) {
	assert.Equal(t, "12", GroupKey(12).String())
}

func TestNewRegistry_LastWriteWins(t *testing.T) {
	reg := NewRegistry([]RegistryEntry{
		{ID: 7, GUID: []string{"a"}},
		{ID: 3, GUID: []string{"x", "y"}},
		{ID: 7, GUID: []string{"b", "c"}},
	})

	assert.Equal(t, 2, reg.Len())

	g, ok := reg.Get(7)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "c"}, g.Members)
	assert.Equal(t, GroupKey(7), g.Key)
}

func TestNewRegistry_EmptyMembers(t *testing.T) {
	reg := NewRegistry([]RegistryEntry{{ID: 1, GUID: nil}})

	g, ok := reg.Get(1)
	require.True(t, ok)
	assert.Empty(t, g.Members)
	assert.Equal(t, 0, reg.ResourceCount())
}

func TestNewRegistry_CopiesMembers(t *testing.T) {
	guids := []string{"a", "b"}
	reg := NewRegistry([]RegistryEntry{{ID: 1, GUID: guids}})
	guids[0] = "changed"

	g, _ := reg.Get(1)
	assert.Equal(t, []string{"a", "b"}, g.Members)
}

func TestRegistry_KeysSorted(t *testing.T) {
	reg := NewRegistry([]RegistryEntry{
		{ID: 30}, {ID: 1}, {ID: 12},
	})

	assert.Equal(t, []GroupKey{1, 12, 30}, reg.Keys())

	groups := reg.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, GroupKey(1), groups[0].Key)
	assert.Equal(t, GroupKey(30), groups[2].Key)
}

func TestRegistry_Empty(t *testing.T) {
	var reg Registry
	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.Keys())
	_, ok := reg.Get(1)
	assert.False(t, ok)
}

func TestRegistry_ResourceCount(t *testing.T) {
	reg := NewRegistry([]RegistryEntry{
		{ID: 1, GUID: []string{"a", "b"}},
		{ID: 2, GUID: []string{"c"}},
	})
	assert.Equal(t, 3, reg.ResourceCount())
}

// TestRegistryEntry_JSON tests decoding the registry file format
func TestRegistryEntry_JSON(t *testing.T) {
	data := `[{"id": 7, "guid": ["a-1", "a-2"]}, {"id": 9, "guid": []}]`

	var entries []RegistryEntry
	require.NoError(t, json.Unmarshal([]byte(data), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, GroupKey(7), entries[0].ID)
	assert.Equal(t, []string{"a-1", "a-2"}, entries[0].GUID)
	assert.Empty(t, entries[1].GUID)
}
