package oauth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/pbi-refresh/internal/core/domain"
	"github.com/custodia-labs/pbi-refresh/internal/core/ports/driven"
)

// Ensure ClaimsInspector implements the interface.
var _ driven.TokenInspector = (*ClaimsInspector)(nil)

// ClaimsInspector reads identity claims from a JWT access token without verifying its signature.
type ClaimsInspector struct {
	parser *jwt.Parser
}

// NewClaimsInspector creates a claims inspector.
func NewClaimsInspector() *ClaimsInspector {
	return &ClaimsInspector{parser: jwt.NewParser()}
}

// Inspect fills Subject, Audience and TenantID from the token claims.
func (c *ClaimsInspector) Inspect(token domain.Token, info *domain.TokenInfo) error {
	claims := jwt.MapClaims{}
	if _, _, err := c.parser.ParseUnverified(token.AccessToken, claims); err != nil {
		return fmt.Errorf("parse access token: %w", err)
	}

	info.Subject = firstClaim(claims, "upn", "unique_name", "preferred_username", "sub")
	if aud, err := claims.GetAudience(); err == nil && len(aud) > 0 {
		info.Audience = strings.Join(aud, ", ")
	}
	info.TenantID = firstClaim(claims, "tid")
	return nil
}

func firstClaim(claims jwt.MapClaims, names ...string) string {
	for _, name := range names {
		if v, ok := claims[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
