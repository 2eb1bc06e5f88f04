package core

// Secret wraps a sensitive string such as an API key so it cannot leak
// through logging, fmt verbs, or JSON serialization. The underlying value is
// only reachable through Expose.
type Secret struct {
	value string
}

// NewSecret wraps a sensitive value.
func NewSecret(value string) Secret {
	return Secret{value: value}
}

// Expose returns the underlying sensitive value. Call it only at the point
// of use, such as setting an Authorization header.
func (s Secret) Expose() string {
	return s.value
}

// IsZero reports whether the secret holds no value.
func (s Secret) IsZero() bool {
	return s.value == ""
}

func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString prevents %#v from exposing the value.
func (s Secret) GoString() string {
	return "core.Secret{value:\"[REDACTED]\"}"
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"[REDACTED]"`), nil
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}
