package tui

import "errors"

// ErrMissingRefreshService is returned when the refresh service is not provided.
var ErrMissingRefreshService = errors.New("tui: refresh service is required")

// ErrNoEditor is returned when Settings is chosen but no editor launcher is configured.
var ErrNoEditor = errors.New("tui: no editor configured")
