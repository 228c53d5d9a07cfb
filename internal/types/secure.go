package types

// redactedPlaceholder is what secret values render as in logs and dumps.
const redactedPlaceholder = "[REDACTED]"

var redactedJSON = []byte(`"` + redactedPlaceholder + `"`)

// SecretString is a string type for sensitive configuration values
// (database URLs, API keys). It redacts itself in fmt and JSON output so a
// config dump can never leak credentials.
type SecretString string

// String returns a redacted placeholder instead of the raw value.
func (s SecretString) String() string {
	return redactedPlaceholder
}

// MarshalJSON returns the redacted placeholder as a JSON string.
func (s SecretString) MarshalJSON() ([]byte, error) {
	return redactedJSON, nil
}

// Unmask returns the raw plaintext value. Use only where the actual secret
// is required, such as connection strings and Authorization headers.
func (s SecretString) Unmask() string {
	return string(s)
}
