package core

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretRedaction(t *testing.T) {
	s := NewSecret("sk-test-12345")

	assert.Equal(t, "[REDACTED]", s.String())
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.NotContains(t, fmt.Sprintf("%#v", s), "sk-test")
	assert.Equal(t, "sk-test-12345", s.Expose())
}

func TestSecretJSON(t *testing.T) {
	payload := struct {
		Key Secret `json:"key"`
	}{Key: NewSecret("sk-test-12345")}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Equal(t, `{"key":"[REDACTED]"}`, string(data))
}

func TestSecretIsZero(t *testing.T) {
	assert.True(t, Secret{}.IsZero())
	assert.False(t, NewSecret("x").IsZero())
}
