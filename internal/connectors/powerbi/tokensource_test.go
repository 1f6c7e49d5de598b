package powerbi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

func TestTokenSource(t *testing.T) {
	ts := NewTokenSource(domain.Token{TokenType: "Bearer", AccessToken: "abc", ExpiresOn: "1"})

	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())
	assert.True(t, tok.Expiry.IsZero(), "expiry is not enforced at the transport")
	assert.True(t, tok.Valid())
}

func TestTokenSource_Empty(t *testing.T) {
	_, err := NewTokenSource(domain.Token{}).Token()
	assert.ErrorIs(t, err, errEmptyToken)
}
