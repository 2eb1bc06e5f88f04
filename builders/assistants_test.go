package builders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrel-ai/petrel/core"
)

func TestAssistantBuild(t *testing.T) {
	req, err := NewAssistant("gpt-4o").
		Name("Support Bot").
		Description("Answers billing questions").
		Instructions("Be concise and cite policy documents.").
		Tool(ToolFunction("lookup_invoice", "Fetch an invoice by id", json.RawMessage(`{"type":"object"}`))).
		Metadata("team", "billing").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "Support Bot", req.Name)
	require.Len(t, req.Tools, 1)
	require.NotNil(t, req.Metadata)
}

func TestAssistantRequiresModel(t *testing.T) {
	_, err := NewAssistant("").Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "Model")
}

func TestAssistantValidatesTools(t *testing.T) {
	_, err := NewAssistant("gpt-4o").
		Tool(ToolFunction("bad name", "desc", json.RawMessage(`{"type":"object"}`))).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid characters")
}

func TestRunBuild(t *testing.T) {
	req, err := NewRun("thread_1", "asst_1").
		Model("gpt-4o-mini").
		Instructions("Answer only from the attached files.").
		Temperature(0.2).
		Metadata("trigger", "webhook").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "thread_1", req.ThreadID)
	assert.Equal(t, "asst_1", req.AssistantID)
	assert.Equal(t, 0.2, *req.Temperature)
}

func TestRunRequiredFields(t *testing.T) {
	_, err := NewRun("", "asst_1").Build()
	assert.Contains(t, err.Error(), "Thread id")

	_, err = NewRun("thread_1", "").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Assistant id")
}

func TestRunTemperatureRange(t *testing.T) {
	_, err := NewRun("thread_1", "asst_1").Temperature(2.5).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "temperature")
}
