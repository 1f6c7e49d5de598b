// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - TokenCache: Persists the last issued Token between runs
//   - TokenAcquirer: Exchanges credentials for a new Token
//   - Refresher: Issues one dataset refresh request
//   - CredentialSource: Loads the secrets used for acquisition
//   - RegistrySource: Loads the company/dataset registry
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TokenInspector: Decodes token claims for display. Without it, only expiry is shown.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
