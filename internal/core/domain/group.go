package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// GroupKey identifies a company (tenant) in the registry.
type GroupKey uint32

// String returns the decimal form of the key.
func (k GroupKey) String() string {
	return strconv.FormatUint(uint64(k), 10)
}

// ParseGroupKey parses user input into a GroupKey.
func ParseGroupKey(s string) (GroupKey, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: group id %q must be a non-negative integer", ErrInvalidInput, s)
	}
	return GroupKey(v), nil
}

// RegistryEntry is one record of the registry file: a company and its dataset ids.
type RegistryEntry struct {
	ID   GroupKey `json:"id" yaml:"id"`
	GUID []string `json:"guid" yaml:"guid"`
}

// ResourceGroup is one company with its datasets in stored order.
// A group may have no members; dispatching it is then a no-op.
type ResourceGroup struct {
	Key     GroupKey
	Members []string
}

// Registry holds resource groups keyed by GroupKey.
// It is built once at startup and only read afterwards.
type Registry struct {
	groups map[GroupKey]ResourceGroup
}

// NewRegistry folds registry entries into a Registry.
// Duplicate ids resolve last-write-wins.
func NewRegistry(entries []RegistryEntry) Registry {
	groups := make(map[GroupKey]ResourceGroup, len(entries))
	for _, e := range entries {
		groups[e.ID] = ResourceGroup{
			Key:     e.ID,
			Members: slices.Clone(e.GUID),
		}
	}
	return Registry{groups: groups}
}

// Get returns the group for key.
func (r Registry) Get(key GroupKey) (ResourceGroup, bool) {
	g, ok := r.groups[key]
	return g, ok
}

// Keys returns all group keys in ascending order.
func (r Registry) Keys() []GroupKey {
	keys := make([]GroupKey, 0, len(r.groups))
	for k := range r.groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Groups returns all groups ordered by key.
func (r Registry) Groups() []ResourceGroup {
	keys := r.Keys()
	groups := make([]ResourceGroup, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, r.groups[k])
	}
	return groups
}

// Len returns the number of groups.
func (r Registry) Len() int {
	return len(r.groups)
}

// ResourceCount returns the number of dataset ids across all groups.
func (r Registry) ResourceCount() int {
	n := 0
	for _, g := range r.groups {
		n += len(g.Members)
	}
	return n
}
