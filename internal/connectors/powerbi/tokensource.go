package powerbi

import (
	"errors"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
)

// errEmptyToken is returned when the dispatcher hands in a token without an access credential.
var errEmptyToken = errors.New("powerbi: token has no access_token")

// staticTokenSource adapts a domain.Token to oauth2.TokenSource.
// Expiry is left unset: validity is the token service's concern,
// and the dispatcher must use the token it was given.
type staticTokenSource struct {
	token domain.Token
}

// NewTokenSource creates an oauth2.TokenSource that always yields token.
func NewTokenSource(token domain.Token) oauth2.TokenSource {
	return &staticTokenSource{token: token}
}

// Token implements oauth2.TokenSource.
func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	if s.token.IsZero() {
		return nil, errEmptyToken
	}
	return &oauth2.Token{
		AccessToken: s.token.AccessToken,
		TokenType:   s.token.TokenType,
	}, nil
}
