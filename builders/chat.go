package builders

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/petrel-ai/petrel/core"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ContentPart is one element of a multimodal message body.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageRef `json:"image_url,omitempty"`
}

// ImageRef points at image content, either a URL or a base64 data URL.
type ImageRef struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: "text", Text: text}
}

// ImageURLPart builds an image content part referencing a URL.
func ImageURLPart(url string) ContentPart {
	return ContentPart{Type: "image_url", ImageURL: &ImageRef{URL: url}}
}

// ImageURLPartWithDetail builds an image part with an explicit detail level
// ("low", "high", or "auto").
func ImageURLPartWithDetail(url, detail string) ContentPart {
	return ContentPart{Type: "image_url", ImageURL: &ImageRef{URL: url, Detail: detail}}
}

// ImageBase64Part builds an image part from raw base64 data, encoded as a
// data URL.
func ImageBase64Part(data, mediaType string) ContentPart {
	return ContentPart{
		Type:     "image_url",
		ImageURL: &ImageRef{URL: fmt.Sprintf("data:%s;base64,%s", mediaType, data)},
	}
}

// MessageContent is either a plain string or a list of parts. The zero value
// marshals as an empty string.
type MessageContent struct {
	Text  string
	Parts []ContentPart
}

// Content builds a plain-text message body.
func Content(text string) MessageContent {
	return MessageContent{Text: text}
}

// ContentParts builds a multimodal message body.
func ContentParts(parts ...ContentPart) MessageContent {
	return MessageContent{Parts: parts}
}

// IsEmpty reports whether the body carries neither text nor parts.
// Whitespace-only text counts as empty.
func (c MessageContent) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == "" && len(c.Parts) == 0
}

func (c MessageContent) MarshalJSON() ([]byte, error) {
	if len(c.Parts) > 0 {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

func (c *MessageContent) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &c.Parts)
	}
	return json.Unmarshal(data, &c.Text)
}

// Message is one entry in a chat conversation.
type Message struct {
	Role       Role           `json:"role"`
	Content    MessageContent `json:"content"`
	Name       string         `json:"name,omitempty"`
	ToolCalls  []ToolCall     `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// ToolCall is a model-issued request to invoke a tool.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the function name and its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tool describes a capability the model may invoke.
type Tool struct {
	Type     string       `json:"type"`
	Function *FunctionDef `json:"function,omitempty"`
}

// FunctionDef is the schema half of a function tool.
type FunctionDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ToolFunction builds a function tool from a name, description, and JSON
// Schema parameters.
func ToolFunction(name, description string, parameters json.RawMessage) Tool {
	return Tool{
		Type:     "function",
		Function: &FunctionDef{Name: name, Description: description, Parameters: parameters},
	}
}

// ToolWebSearch builds the hosted web search tool.
func ToolWebSearch() Tool {
	return Tool{Type: "web_search"}
}

// ToolChoice constrains how the model selects tools. Use the Auto, None, and
// Required constructors, or Function to force a specific tool.
type ToolChoice struct {
	mode     string
	function string
}

func ToolChoiceAuto() ToolChoice     { return ToolChoice{mode: "auto"} }
func ToolChoiceNone() ToolChoice     { return ToolChoice{mode: "none"} }
func ToolChoiceRequired() ToolChoice { return ToolChoice{mode: "required"} }

// ToolChoiceFunction forces the model to call the named function.
func ToolChoiceFunction(name string) ToolChoice {
	return ToolChoice{function: name}
}

func (tc ToolChoice) MarshalJSON() ([]byte, error) {
	if tc.function != "" {
		return json.Marshal(map[string]any{
			"type":     "function",
			"function": map[string]string{"name": tc.function},
		})
	}
	return json.Marshal(tc.mode)
}

// ChatRequest is the wire form of a chat completion request. Optional fields
// use pointers so unset values are omitted entirely.
type ChatRequest struct {
	Model               string          `json:"model"`
	Messages            []Message       `json:"messages"`
	Temperature         *float64        `json:"temperature,omitempty"`
	TopP                *float64        `json:"top_p,omitempty"`
	N                   *int            `json:"n,omitempty"`
	MaxTokens           *int            `json:"max_tokens,omitempty"`
	MaxCompletionTokens *int            `json:"max_completion_tokens,omitempty"`
	FrequencyPenalty    *float64        `json:"frequency_penalty,omitempty"`
	PresencePenalty     *float64        `json:"presence_penalty,omitempty"`
	Seed                *int            `json:"seed,omitempty"`
	Stop                []string        `json:"stop,omitempty"`
	Stream              *bool           `json:"stream,omitempty"`
	Tools               []Tool          `json:"tools,omitempty"`
	ToolChoice          *ToolChoice     `json:"tool_choice,omitempty"`
	ResponseFormat      *ResponseFormat `json:"response_format,omitempty"`
	User                string          `json:"user,omitempty"`
}

// ResponseFormat selects the output shape for chat and responses requests.
type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

// JSONSchema names a strict output schema.
type JSONSchema struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
	Strict *bool           `json:"strict,omitempty"`
}

// ChatBuilder assembles a chat completion request.
type ChatBuilder struct {
	req ChatRequest
}

// NewChat starts a chat completion request for the given model.
func NewChat(model string) *ChatBuilder {
	return &ChatBuilder{req: ChatRequest{Model: model}}
}

var _ core.Builder[ChatRequest] = (*ChatBuilder)(nil)

// Model replaces the model.
func (b *ChatBuilder) Model(model string) *ChatBuilder {
	b.req.Model = model
	return b
}

// System appends a system message.
func (b *ChatBuilder) System(content string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleSystem, Content: Content(content)})
	return b
}

// User appends a user message.
func (b *ChatBuilder) User(content string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleUser, Content: Content(content)})
	return b
}

// UserParts appends a multimodal user message.
func (b *ChatBuilder) UserParts(parts ...ContentPart) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleUser, Content: ContentParts(parts...)})
	return b
}

// Assistant appends an assistant message.
func (b *ChatBuilder) Assistant(content string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleAssistant, Content: Content(content)})
	return b
}

// AssistantToolCalls appends an assistant message carrying tool calls.
func (b *ChatBuilder) AssistantToolCalls(calls ...ToolCall) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{Role: RoleAssistant, ToolCalls: calls})
	return b
}

// ToolResult appends a tool message answering a previous tool call.
func (b *ChatBuilder) ToolResult(toolCallID, content string) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, Message{
		Role: RoleTool, Content: Content(content), ToolCallID: toolCallID,
	})
	return b
}

// Message appends an arbitrary message.
func (b *ChatBuilder) Message(msg Message) *ChatBuilder {
	b.req.Messages = append(b.req.Messages, msg)
	return b
}

// Temperature sets sampling temperature, valid range 0.0 to 2.0.
func (b *ChatBuilder) Temperature(v float64) *ChatBuilder {
	b.req.Temperature = floatPtr(v)
	return b
}

// TopP sets nucleus sampling probability, valid range 0.0 to 1.0.
func (b *ChatBuilder) TopP(v float64) *ChatBuilder {
	b.req.TopP = floatPtr(v)
	return b
}

// N sets the number of completions to generate.
func (b *ChatBuilder) N(n int) *ChatBuilder {
	b.req.N = intPtr(n)
	return b
}

// MaxTokens caps completion length for legacy models.
func (b *ChatBuilder) MaxTokens(n int) *ChatBuilder {
	b.req.MaxTokens = intPtr(n)
	return b
}

// MaxCompletionTokens caps completion length, including reasoning tokens.
func (b *ChatBuilder) MaxCompletionTokens(n int) *ChatBuilder {
	b.req.MaxCompletionTokens = intPtr(n)
	return b
}

// FrequencyPenalty sets the frequency penalty, valid range -2.0 to 2.0.
func (b *ChatBuilder) FrequencyPenalty(v float64) *ChatBuilder {
	b.req.FrequencyPenalty = floatPtr(v)
	return b
}

// PresencePenalty sets the presence penalty, valid range -2.0 to 2.0.
func (b *ChatBuilder) PresencePenalty(v float64) *ChatBuilder {
	b.req.PresencePenalty = floatPtr(v)
	return b
}

// Seed requests deterministic sampling where supported.
func (b *ChatBuilder) Seed(seed int) *ChatBuilder {
	b.req.Seed = intPtr(seed)
	return b
}

// Stop adds stop sequences.
func (b *ChatBuilder) Stop(sequences ...string) *ChatBuilder {
	b.req.Stop = append(b.req.Stop, sequences...)
	return b
}

// Stream enables server-sent event streaming.
func (b *ChatBuilder) Stream(enabled bool) *ChatBuilder {
	b.req.Stream = boolPtr(enabled)
	return b
}

// Tool registers a tool the model may call.
func (b *ChatBuilder) Tool(tool Tool) *ChatBuilder {
	b.req.Tools = append(b.req.Tools, tool)
	return b
}

// Tools registers multiple tools.
func (b *ChatBuilder) Tools(tools ...Tool) *ChatBuilder {
	b.req.Tools = append(b.req.Tools, tools...)
	return b
}

// ToolChoice constrains tool selection.
func (b *ChatBuilder) ToolChoice(choice ToolChoice) *ChatBuilder {
	b.req.ToolChoice = &choice
	return b
}

// JSONMode asks for syntactically valid JSON output without a schema.
func (b *ChatBuilder) JSONMode() *ChatBuilder {
	b.req.ResponseFormat = &ResponseFormat{Type: "json_object"}
	return b
}

// JSONSchema asks for output conforming to a named JSON Schema. Calling it
// after JSONMode replaces the earlier format; the last call wins.
func (b *ChatBuilder) JSONSchema(name string, schema json.RawMessage) *ChatBuilder {
	b.req.ResponseFormat = &ResponseFormat{
		Type:       "json_schema",
		JSONSchema: &JSONSchema{Name: name, Schema: schema, Strict: boolPtr(true)},
	}
	return b
}

// EndUser tags the request with a stable end-user identifier for abuse
// monitoring.
func (b *ChatBuilder) EndUser(id string) *ChatBuilder {
	b.req.User = id
	return b
}

// Build validates the accumulated fields and returns the wire request.
// Checks run in a fixed order: required fields, message contents, numeric
// ranges, then tool definitions. The first violation is returned.
func (b *ChatBuilder) Build() (ChatRequest, error) {
	if strings.TrimSpace(b.req.Model) == "" {
		return ChatRequest{}, &core.MissingFieldError{Field: "Model"}
	}
	if len(b.req.Messages) == 0 {
		return ChatRequest{}, &core.EmptyCollectionError{Collection: "message"}
	}
	for i, msg := range b.req.Messages {
		if err := validateMessage(i, msg); err != nil {
			return ChatRequest{}, err
		}
	}
	if err := checkRange("temperature", b.req.Temperature, 0, 2); err != nil {
		return ChatRequest{}, err
	}
	if err := checkRange("top_p", b.req.TopP, 0, 1); err != nil {
		return ChatRequest{}, err
	}
	if err := checkRange("frequency_penalty", b.req.FrequencyPenalty, -2, 2); err != nil {
		return ChatRequest{}, err
	}
	if err := checkRange("presence_penalty", b.req.PresencePenalty, -2, 2); err != nil {
		return ChatRequest{}, err
	}
	if err := checkPositive("max_tokens", b.req.MaxTokens); err != nil {
		return ChatRequest{}, err
	}
	if err := checkPositive("max_completion_tokens", b.req.MaxCompletionTokens); err != nil {
		return ChatRequest{}, err
	}
	if err := checkPositive("n", b.req.N); err != nil {
		return ChatRequest{}, err
	}
	if rf := b.req.ResponseFormat; rf != nil && rf.Type == "json_schema" {
		if err := validateJSONSchema(rf.JSONSchema); err != nil {
			return ChatRequest{}, err
		}
	}
	for _, tool := range b.req.Tools {
		if err := validateTool(tool); err != nil {
			return ChatRequest{}, err
		}
	}
	return b.req, nil
}

func validateMessage(index int, msg Message) error {
	switch msg.Role {
	case RoleSystem:
		if msg.Content.IsEmpty() {
			return &core.InvalidRequestError{
				Message: fmt.Sprintf("System message at index %d cannot have empty content", index),
			}
		}
	case RoleUser:
		if msg.Content.IsEmpty() {
			return &core.InvalidRequestError{
				Message: fmt.Sprintf("User message at index %d cannot have empty content", index),
			}
		}
	case RoleAssistant:
		if msg.Content.IsEmpty() && len(msg.ToolCalls) == 0 {
			return &core.InvalidRequestError{
				Message: fmt.Sprintf("Assistant message at index %d must have content or tool calls", index),
			}
		}
	}
	return nil
}

func validateTool(tool Tool) error {
	if tool.Type != "function" || tool.Function == nil {
		return nil
	}
	name := tool.Function.Name
	if name == "" {
		return &core.MissingFieldError{Field: "Tool function name"}
	}
	for _, r := range name {
		ok := r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return &core.InvalidRequestError{
				Message: fmt.Sprintf("Tool function name %q contains invalid characters", name),
			}
		}
	}
	return nil
}
