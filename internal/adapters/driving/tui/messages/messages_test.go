package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewGroupInput, "group_input"},
		{ViewOutcomes, "outcomes"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewMenu_IsZeroValue(t *testing.T) {
	var v ViewType
	assert.Equal(t, ViewMenu, v)
}

func TestRefreshCompleted_CarriesModeAndError(t *testing.T) {
	err := errors.New("token acquisition failed")
	msg := RefreshCompleted{Mode: domain.SingleGroup(4), Err: err}

	key, single := msg.Mode.Key()
	assert.True(t, single)
	assert.Equal(t, domain.GroupKey(4), key)
	assert.ErrorIs(t, msg.Err, err)
	assert.Empty(t, msg.Results)
}
