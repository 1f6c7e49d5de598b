// Package oauth acquires and inspects bearer tokens from the identity endpoint.
package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
	"github.com/custodia-labs/pbi-refresh/internal/logger"
)

// Ensure Acquirer implements the interface.
var _ driven.TokenAcquirer = (*Acquirer)(nil)

// maxErrorBody caps how much of a rejected response is kept for diagnostics.
const maxErrorBody = 4 << 10

// TokenError is returned when the identity endpoint answers with a non-2xx status.
type TokenError struct {
	StatusCode  int
	Body        string
	Code        string
	Description string
}

func (e *TokenError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("token request failed with status %d: %s - %s", e.StatusCode, e.Code, e.Description)
	}
	return fmt.Sprintf("token request failed with status %d: %s", e.StatusCode, e.Body)
}

// Acquirer performs the resource-owner password exchange against the authority URL.
type Acquirer struct {
	tokenURL string
	client   *http.Client
}

// NewAcquirer creates an acquirer posting to tokenURL.
// A nil client gets a default one with a 30 second timeout.
func NewAcquirer(tokenURL string, client *http.Client) *Acquirer {
	if client == nil {
		client = &http.Client{Timeout: domain.DefaultTimeout}
	}
	return &Acquirer{tokenURL: tokenURL, client: client}
}

// tokenResponse accepts expires_on as either a JSON string or number;
// the v1 endpoint sends strings, some proxies rewrite them as numbers.
type tokenResponse struct {
	TokenType   string      `json:"token_type"`
	AccessToken string      `json:"access_token"`
	ExpiresOn   json.Number `json:"expires_on"`
}

// UnmarshalJSON decodes expires_on from a string or number.
func (r *tokenResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		TokenType   string          `json:"token_type"`
		AccessToken string          `json:"access_token"`
		ExpiresOn   json.RawMessage `json:"expires_on"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.TokenType = raw.TokenType
	r.AccessToken = raw.AccessToken

	exp := bytes.TrimSpace(raw.ExpiresOn)
	switch {
	case len(exp) == 0 || bytes.Equal(exp, []byte("null")):
		r.ExpiresOn = ""
	case exp[0] == '"':
		var s string
		if err := json.Unmarshal(exp, &s); err != nil {
			return err
		}
		r.ExpiresOn = json.Number(s)
	default:
		r.ExpiresOn = json.Number(exp)
	}
	return nil
}

// Acquire exchanges creds for a token.
// Only the recognised secrets are sent; absent ones are omitted.
func (a *Acquirer) Acquire(ctx context.Context, creds domain.CredentialSet) (*domain.Token, error) {
	data := url.Values{}
	for _, name := range domain.TokenRequestSecrets {
		if v, ok := creds.Get(name); ok {
			data.Set(name, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	logger.Debug("requesting token from %s", a.tokenURL)
	start := time.Now()

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("token endpoint answered %d in %s", resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newTokenError(resp)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no access_token", domain.ErrInvalidInput)
	}
	if tokenResp.ExpiresOn == "" {
		return nil, fmt.Errorf("%w: token response has no expires_on", domain.ErrInvalidInput)
	}
	if _, err := strconv.ParseInt(tokenResp.ExpiresOn.String(), 10, 64); err != nil {
		return nil, fmt.Errorf("%w: expires_on %q", domain.ErrInvalidExpiry, tokenResp.ExpiresOn)
	}

	return &domain.Token{
		TokenType:   tokenResp.TokenType,
		ExpiresOn:   tokenResp.ExpiresOn.String(),
		AccessToken: tokenResp.AccessToken,
	}, nil
}

func newTokenError(resp *http.Response) *TokenError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	tokenErr := &TokenError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}

	var errResp struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		tokenErr.Code = errResp.Error
		tokenErr.Description = errResp.Description
	}
	return tokenErr
}
