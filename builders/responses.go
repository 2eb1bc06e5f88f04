package builders

import (
	"encoding/json"
	"strings"

	"github.com/petrel-ai/petrel/core"
)

// ReasoningEffort tunes how much internal reasoning a reasoning model
// spends before answering.
type ReasoningEffort string

const (
	ReasoningMinimal ReasoningEffort = "minimal"
	ReasoningLow     ReasoningEffort = "low"
	ReasoningMedium  ReasoningEffort = "medium"
	ReasoningHigh    ReasoningEffort = "high"
)

// Reasoning is the wire form of reasoning controls.
type Reasoning struct {
	Effort ReasoningEffort `json:"effort"`
}

// ResponsesRequest is the wire form of a Responses API request.
type ResponsesRequest struct {
	Model           string          `json:"model"`
	Input           []Message       `json:"input"`
	Instructions    string          `json:"instructions,omitempty"`
	Temperature     *float64        `json:"temperature,omitempty"`
	TopP            *float64        `json:"top_p,omitempty"`
	MaxOutputTokens *int            `json:"max_output_tokens,omitempty"`
	Reasoning       *Reasoning      `json:"reasoning,omitempty"`
	ResponseFormat  *ResponseFormat `json:"response_format,omitempty"`
	Tools           []Tool          `json:"tools,omitempty"`
	Stream          *bool           `json:"stream,omitempty"`
	User            string          `json:"user,omitempty"`
}

// ResponsesBuilder assembles a Responses API request.
type ResponsesBuilder struct {
	req ResponsesRequest
}

// NewResponses starts a Responses API request for the given model.
func NewResponses(model string) *ResponsesBuilder {
	return &ResponsesBuilder{req: ResponsesRequest{Model: model}}
}

var _ core.Builder[ResponsesRequest] = (*ResponsesBuilder)(nil)

func (b *ResponsesBuilder) Model(model string) *ResponsesBuilder {
	b.req.Model = model
	return b
}

// Instructions sets the system-level instructions for the response.
func (b *ResponsesBuilder) Instructions(text string) *ResponsesBuilder {
	b.req.Instructions = text
	return b
}

// System appends a system input message.
func (b *ResponsesBuilder) System(content string) *ResponsesBuilder {
	b.req.Input = append(b.req.Input, Message{Role: RoleSystem, Content: Content(content)})
	return b
}

// User appends a user input message.
func (b *ResponsesBuilder) User(content string) *ResponsesBuilder {
	b.req.Input = append(b.req.Input, Message{Role: RoleUser, Content: Content(content)})
	return b
}

// UserParts appends a multimodal user input message.
func (b *ResponsesBuilder) UserParts(parts ...ContentPart) *ResponsesBuilder {
	b.req.Input = append(b.req.Input, Message{Role: RoleUser, Content: ContentParts(parts...)})
	return b
}

// Assistant appends an assistant input message.
func (b *ResponsesBuilder) Assistant(content string) *ResponsesBuilder {
	b.req.Input = append(b.req.Input, Message{Role: RoleAssistant, Content: Content(content)})
	return b
}

// Temperature sets sampling temperature, valid range 0.0 to 2.0.
func (b *ResponsesBuilder) Temperature(v float64) *ResponsesBuilder {
	b.req.Temperature = floatPtr(v)
	return b
}

// TopP sets nucleus sampling probability, valid range 0.0 to 1.0.
func (b *ResponsesBuilder) TopP(v float64) *ResponsesBuilder {
	b.req.TopP = floatPtr(v)
	return b
}

// MaxOutputTokens caps the response length.
func (b *ResponsesBuilder) MaxOutputTokens(n int) *ResponsesBuilder {
	b.req.MaxOutputTokens = intPtr(n)
	return b
}

// ReasoningEffort sets the reasoning effort level.
func (b *ResponsesBuilder) ReasoningEffort(effort ReasoningEffort) *ResponsesBuilder {
	b.req.Reasoning = &Reasoning{Effort: effort}
	return b
}

// JSONMode asks for syntactically valid JSON output without a schema.
// JSONMode and JSONSchema overwrite each other; the last call wins.
func (b *ResponsesBuilder) JSONMode() *ResponsesBuilder {
	b.req.ResponseFormat = &ResponseFormat{Type: "json_object"}
	return b
}

// JSONSchema asks for output conforming to a named JSON Schema, replacing
// any earlier format selection.
func (b *ResponsesBuilder) JSONSchema(name string, schema json.RawMessage) *ResponsesBuilder {
	b.req.ResponseFormat = &ResponseFormat{
		Type:       "json_schema",
		JSONSchema: &JSONSchema{Name: name, Schema: schema, Strict: boolPtr(true)},
	}
	return b
}

// Tool registers a tool the model may call.
func (b *ResponsesBuilder) Tool(tool Tool) *ResponsesBuilder {
	b.req.Tools = append(b.req.Tools, tool)
	return b
}

// Stream enables streaming.
func (b *ResponsesBuilder) Stream(enabled bool) *ResponsesBuilder {
	b.req.Stream = boolPtr(enabled)
	return b
}

// EndUser tags the request with an end-user identifier.
func (b *ResponsesBuilder) EndUser(id string) *ResponsesBuilder {
	b.req.User = id
	return b
}

// Build validates and returns the wire request.
func (b *ResponsesBuilder) Build() (ResponsesRequest, error) {
	if strings.TrimSpace(b.req.Model) == "" {
		return ResponsesRequest{}, &core.MissingFieldError{Field: "Model"}
	}
	if len(b.req.Input) == 0 {
		return ResponsesRequest{}, &core.EmptyCollectionError{Collection: "message"}
	}
	for i, msg := range b.req.Input {
		if err := validateMessage(i, msg); err != nil {
			return ResponsesRequest{}, err
		}
	}
	if err := checkRange("temperature", b.req.Temperature, 0, 2); err != nil {
		return ResponsesRequest{}, err
	}
	if err := checkRange("top_p", b.req.TopP, 0, 1); err != nil {
		return ResponsesRequest{}, err
	}
	if err := checkPositive("max_output_tokens", b.req.MaxOutputTokens); err != nil {
		return ResponsesRequest{}, err
	}
	if rf := b.req.ResponseFormat; rf != nil && rf.Type == "json_schema" {
		if err := validateJSONSchema(rf.JSONSchema); err != nil {
			return ResponsesRequest{}, err
		}
	}
	for _, tool := range b.req.Tools {
		if err := validateTool(tool); err != nil {
			return ResponsesRequest{}, err
		}
	}
	return b.req, nil
}

func validateJSONSchema(s *JSONSchema) error {
	if s == nil || s.Name == "" {
		return &core.MissingFieldError{Field: "JSON schema name"}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(s.Schema, &obj); err != nil {
		return &core.InvalidRequestError{Message: "JSON schema must be a valid JSON object"}
	}
	if _, ok := obj["type"]; !ok {
		return &core.InvalidRequestError{Message: `JSON schema must declare a "type"`}
	}
	return nil
}
