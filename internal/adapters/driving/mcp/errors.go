// Package mcp provides an MCP (Model Context Protocol) server adapter for pbi-refresh.
// It lets AI assistants list companies and trigger dataset refreshes.
package mcp

import "errors"

// ErrMissingRefreshService is returned when the refresh service is not provided.
var ErrMissingRefreshService = errors.New("mcp: refresh service is required")
