package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Token is a bearer credential issued by the identity endpoint.
// The JSON shape matches both the token endpoint response and the token cache file.
//
// A Token is never mutated in place: a newly acquired Token replaces the old one.
// Validity is always re-checked against the clock, never stored.
type Token struct {
	// TokenType is passed through unchanged (typically "Bearer").
	TokenType string `json:"token_type"`
	// ExpiresOn is the expiry as seconds since the Unix epoch, kept in its wire form.
	ExpiresOn string `json:"expires_on"`
	// AccessToken is presented on every refresh call.
	AccessToken string `json:"access_token"`
}

// ExpiresAt parses ExpiresOn into an absolute UTC time.
// Returns ErrInvalidExpiry if the value is not an integer epoch timestamp.
func (t Token) ExpiresAt() (time.Time, error) {
	raw := strings.TrimSpace(t.ExpiresOn)
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidExpiry, t.ExpiresOn)
	}
	return time.Unix(secs, 0).UTC(), nil
}

// IsZero returns true if the token carries no access credential.
func (t Token) IsZero() bool {
	return t.AccessToken == ""
}

// NewToken builds a Token expiring at the given time.
func NewToken(tokenType, accessToken string, expiresAt time.Time) Token {
	return Token{
		TokenType:   tokenType,
		ExpiresOn:   strconv.FormatInt(expiresAt.Unix(), 10),
		AccessToken: accessToken,
	}
}

// TokenInfo is a human-oriented description of a Token.
// Claims are decoded without signature verification and are diagnostic only.
type TokenInfo struct {
	// TokenType mirrors Token.TokenType.
	TokenType string `json:"token_type"`
	// ExpiresAt is the parsed expiry; zero if unparsable.
	ExpiresAt time.Time `json:"expires_at"`
	// Valid reports whether the token was usable at CheckedAt.
	Valid bool `json:"valid"`
	// CheckedAt is the observation time used for Valid.
	CheckedAt time.Time `json:"checked_at"`
	// Subject is the signed-in principal (upn, unique_name or sub claim).
	Subject string `json:"subject,omitempty"`
	// Audience is the resource the token was issued for.
	Audience string `json:"audience,omitempty"`
	// TenantID is the issuing directory tenant.
	TenantID string `json:"tenant_id,omitempty"`
}

// Remaining returns how long the token stays valid after CheckedAt.
// Returns zero for invalid tokens.
func (i TokenInfo) Remaining() time.Duration {
	if !i.Valid {
		return 0
	}
	return i.ExpiresAt.Sub(i.CheckedAt)
}
