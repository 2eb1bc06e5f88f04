package builders

import (
	"strings"

	"github.com/petrel-ai/petrel/core"
)

// AssistantRequest is the wire form of an assistant creation request.
type AssistantRequest struct {
	Model        string             `json:"model"`
	Name         string             `json:"name,omitempty"`
	Description  string             `json:"description,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
	Tools        []Tool             `json:"tools,omitempty"`
	Metadata     *map[string]string `json:"metadata,omitempty"`
}

// AssistantBuilder assembles an assistant creation request.
type AssistantBuilder struct {
	req      AssistantRequest
	metadata Metadata
}

// NewAssistant starts an assistant creation request for the given model.
func NewAssistant(model string) *AssistantBuilder {
	return &AssistantBuilder{req: AssistantRequest{Model: model}}
}

var _ core.Builder[AssistantRequest] = (*AssistantBuilder)(nil)

func (b *AssistantBuilder) Name(name string) *AssistantBuilder {
	b.req.Name = name
	return b
}

func (b *AssistantBuilder) Description(description string) *AssistantBuilder {
	b.req.Description = description
	return b
}

// Instructions sets the assistant's standing system prompt.
func (b *AssistantBuilder) Instructions(instructions string) *AssistantBuilder {
	b.req.Instructions = instructions
	return b
}

// Tool enables a tool for the assistant.
func (b *AssistantBuilder) Tool(tool Tool) *AssistantBuilder {
	b.req.Tools = append(b.req.Tools, tool)
	return b
}

// Metadata upserts a metadata key.
func (b *AssistantBuilder) Metadata(key, value string) *AssistantBuilder {
	b.metadata.Set(key, value)
	return b
}

// Build validates and returns the wire request.
func (b *AssistantBuilder) Build() (AssistantRequest, error) {
	if strings.TrimSpace(b.req.Model) == "" {
		return AssistantRequest{}, &core.MissingFieldError{Field: "Model"}
	}
	for _, tool := range b.req.Tools {
		if err := validateTool(tool); err != nil {
			return AssistantRequest{}, err
		}
	}
	req := b.req
	req.Metadata = b.metadata.wire()
	return req, nil
}

// RunRequest is the wire form of a thread run request.
type RunRequest struct {
	ThreadID     string             `json:"-"`
	AssistantID  string             `json:"assistant_id"`
	Model        string             `json:"model,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
	Temperature  *float64           `json:"temperature,omitempty"`
	Stream       *bool              `json:"stream,omitempty"`
	Metadata     *map[string]string `json:"metadata,omitempty"`
}

// RunBuilder assembles a run of an assistant against a thread.
type RunBuilder struct {
	req      RunRequest
	metadata Metadata
}

// NewRun starts a run request for the given thread and assistant.
func NewRun(threadID, assistantID string) *RunBuilder {
	return &RunBuilder{req: RunRequest{ThreadID: threadID, AssistantID: assistantID}}
}

var _ core.Builder[RunRequest] = (*RunBuilder)(nil)

// Model overrides the assistant's configured model for this run.
func (b *RunBuilder) Model(model string) *RunBuilder {
	b.req.Model = model
	return b
}

// Instructions overrides the assistant's instructions for this run.
func (b *RunBuilder) Instructions(instructions string) *RunBuilder {
	b.req.Instructions = instructions
	return b
}

// Temperature sets sampling temperature, valid range 0.0 to 2.0.
func (b *RunBuilder) Temperature(v float64) *RunBuilder {
	b.req.Temperature = floatPtr(v)
	return b
}

func (b *RunBuilder) Stream(enabled bool) *RunBuilder {
	b.req.Stream = boolPtr(enabled)
	return b
}

// Metadata upserts a metadata key.
func (b *RunBuilder) Metadata(key, value string) *RunBuilder {
	b.metadata.Set(key, value)
	return b
}

// Build validates and returns the wire request.
func (b *RunBuilder) Build() (RunRequest, error) {
	if b.req.ThreadID == "" {
		return RunRequest{}, &core.MissingFieldError{Field: "Thread id"}
	}
	if b.req.AssistantID == "" {
		return RunRequest{}, &core.MissingFieldError{Field: "Assistant id"}
	}
	if err := checkRange("temperature", b.req.Temperature, 0, 2); err != nil {
		return RunRequest{}, err
	}
	req := b.req
	req.Metadata = b.metadata.wire()
	return req, nil
}
