package builders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrel-ai/petrel/core"
)

func TestResponsesBuildMinimal(t *testing.T) {
	req, err := NewResponses("gpt-4o").User("Summarize this.").Build()

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", req.Model)
	require.Len(t, req.Input, 1)
}

func TestResponsesRequiresModelAndInput(t *testing.T) {
	_, err := NewResponses("").User("hi").Build()
	assert.Contains(t, err.Error(), "Model")

	_, err = NewResponses("gpt-4o").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message")
}

func TestResponsesNumericRanges(t *testing.T) {
	base := func() *ResponsesBuilder { return NewResponses("gpt-4o").User("hi") }

	_, err := base().Temperature(2.5).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
	assert.ErrorIs(t, err, core.ErrInvalidRequest)

	_, err = base().Temperature(2).Build()
	assert.NoError(t, err)

	_, err = base().TopP(-0.1).Build()
	assert.Contains(t, err.Error(), "top_p")

	_, err = base().MaxOutputTokens(0).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")
}

func TestResponsesReasoningEffort(t *testing.T) {
	req, err := NewResponses("o3-mini").User("hi").ReasoningEffort(ReasoningHigh).Build()
	require.NoError(t, err)
	require.NotNil(t, req.Reasoning)
	assert.Equal(t, ReasoningHigh, req.Reasoning.Effort)
}

func TestResponsesFormatLastWriteWins(t *testing.T) {
	schema := json.RawMessage(`{"type":"object"}`)

	req, err := NewResponses("gpt-4o").User("hi").JSONSchema("out", schema).JSONMode().Build()
	require.NoError(t, err)
	assert.Equal(t, "json_object", req.ResponseFormat.Type)

	req, err = NewResponses("gpt-4o").User("hi").JSONMode().JSONSchema("out", schema).Build()
	require.NoError(t, err)
	assert.Equal(t, "json_schema", req.ResponseFormat.Type)
	assert.Equal(t, "out", req.ResponseFormat.JSONSchema.Name)
}

func TestResponsesSchemaValidation(t *testing.T) {
	base := func() *ResponsesBuilder { return NewResponses("gpt-4o").User("hi") }

	_, err := base().JSONSchema("", json.RawMessage(`{"type":"object"}`)).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema name")

	_, err = base().JSONSchema("out", json.RawMessage(`not json`)).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid JSON object")

	_, err = base().JSONSchema("out", json.RawMessage(`{"properties":{}}`)).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"type"`)

	_, err = base().JSONSchema("out", json.RawMessage(`{"type":"object"}`)).Build()
	assert.NoError(t, err)
}

func TestResponsesSchemaNotValidatedAfterOverwrite(t *testing.T) {
	// A bad schema replaced by JSONMode must not fail the build.
	_, err := NewResponses("gpt-4o").User("hi").
		JSONSchema("", json.RawMessage(`broken`)).
		JSONMode().
		Build()
	assert.NoError(t, err)
}

func TestResponsesWireShape(t *testing.T) {
	req, err := NewResponses("gpt-4o").
		Instructions("Answer in one word.").
		User("Capital of France?").
		MaxOutputTokens(16).
		Build()
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var wire map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Contains(t, wire, "input")
	assert.Contains(t, wire, "instructions")
	assert.Contains(t, wire, "max_output_tokens")
	assert.NotContains(t, wire, "temperature")
	assert.NotContains(t, wire, "reasoning")
}
