// Package file provides file-based implementations of driven port interfaces.
// Every adapter reads from the working directory passed to its constructor.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage (config.toml)
//   - SecretsSource: TOML credential file (secrets.toml) with environment overrides
//   - RegistrySource: JSON or YAML registry of companies and datasets
package file
