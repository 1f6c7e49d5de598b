// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never terminate the process; unrecoverable conditions
// are returned as errors for the caller to report.
package services
