// Package domain defines the core business entities for pbi-refresh.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Token: A bearer credential as issued by the identity endpoint
//   - CredentialSet: Named secrets used to acquire a Token
//   - Registry: Resource groups (companies) keyed by GroupKey
//   - DispatchMode: Which groups a batch refresh visits
//   - RefreshResult: The observed outcome of one dataset refresh
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
