package domain

// Secret names read from the credential store.
//
//nolint:gosec // G101: These are key names, not actual credentials.
const (
	SecretClientID  = "client_id"
	SecretGrantType = "grant_type"
	SecretResource  = "resource"
	SecretUsername  = "username"
	SecretPassword  = "password"
)

// TokenRequestSecrets lists, in order, the secrets sent to the identity endpoint.
var TokenRequestSecrets = []string{
	SecretClientID,
	SecretGrantType,
	SecretResource,
	SecretUsername,
	SecretPassword,
}

// CredentialSet maps secret names to values.
// Missing keys are tolerated here; the acquirer simply omits them.
type CredentialSet map[string]string

// Get returns the value for a secret and whether it is present.
func (c CredentialSet) Get(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c[name]
	return v, ok
}

// Missing returns the token request secrets that are absent.
func (c CredentialSet) Missing() []string {
	var missing []string
	for _, name := range TokenRequestSecrets {
		if _, ok := c.Get(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
