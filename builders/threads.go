package builders

import (
	"github.com/petrel-ai/petrel/core"
)

// AttachmentTool names a tool an attachment is made available to.
type AttachmentTool struct {
	Type string `json:"type"`
}

// MessageAttachment attaches an uploaded file to a thread message and
// declares which tools may read it.
type MessageAttachment struct {
	FileID string           `json:"file_id"`
	Tools  []AttachmentTool `json:"tools,omitempty"`
}

// AttachmentForCodeInterpreter attaches a file for the code interpreter
// tool.
func AttachmentForCodeInterpreter(fileID string) MessageAttachment {
	return MessageAttachment{
		FileID: fileID,
		Tools:  []AttachmentTool{{Type: "code_interpreter"}},
	}
}

// AttachmentForFileSearch attaches a file for the file search tool.
func AttachmentForFileSearch(fileID string) MessageAttachment {
	return MessageAttachment{
		FileID: fileID,
		Tools:  []AttachmentTool{{Type: "file_search"}},
	}
}

// WithTool adds a tool to the attachment, skipping duplicates.
func (a MessageAttachment) WithTool(toolType string) MessageAttachment {
	for _, t := range a.Tools {
		if t.Type == toolType {
			return a
		}
	}
	a.Tools = append(a.Tools, AttachmentTool{Type: toolType})
	return a
}

// ThreadMessage is the wire form of one message in a thread.
type ThreadMessage struct {
	Role        Role                `json:"role"`
	Content     string              `json:"content"`
	Attachments []MessageAttachment `json:"attachments,omitempty"`
	Metadata    *map[string]string  `json:"metadata,omitempty"`
}

// ThreadMessageBuilder assembles one thread message.
type ThreadMessageBuilder struct {
	role        Role
	content     string
	attachments []MessageAttachment
	metadata    Metadata
}

// NewThreadUserMessage starts a user message for a thread.
func NewThreadUserMessage(content string) *ThreadMessageBuilder {
	return &ThreadMessageBuilder{role: RoleUser, content: content}
}

// NewThreadAssistantMessage starts an assistant message for a thread.
func NewThreadAssistantMessage(content string) *ThreadMessageBuilder {
	return &ThreadMessageBuilder{role: RoleAssistant, content: content}
}

var _ core.Builder[ThreadMessage] = (*ThreadMessageBuilder)(nil)

// Attachment adds a file attachment.
func (b *ThreadMessageBuilder) Attachment(attachment MessageAttachment) *ThreadMessageBuilder {
	b.attachments = append(b.attachments, attachment)
	return b
}

// Metadata upserts a metadata key.
func (b *ThreadMessageBuilder) Metadata(key, value string) *ThreadMessageBuilder {
	b.metadata.Set(key, value)
	return b
}

// Build validates and returns the wire message.
func (b *ThreadMessageBuilder) Build() (ThreadMessage, error) {
	if b.content == "" {
		return ThreadMessage{}, &core.MissingFieldError{Field: "Message content"}
	}
	return ThreadMessage{
		Role:        b.role,
		Content:     b.content,
		Attachments: b.attachments,
		Metadata:    b.metadata.wire(),
	}, nil
}

// ThreadRequest is the wire form of a thread creation request. A nil
// Metadata pointer omits the field; a pointer to a nil map sends JSON null
// to clear server-side metadata.
type ThreadRequest struct {
	Messages []ThreadMessage    `json:"messages,omitempty"`
	Metadata *map[string]string `json:"metadata,omitempty"`
}

// ThreadRequestBuilder assembles a thread creation request with optional
// seed messages.
type ThreadRequestBuilder struct {
	messages []ThreadMessage
	metadata Metadata
	err      error
}

// NewThreadRequest starts an empty thread creation request.
func NewThreadRequest() *ThreadRequestBuilder {
	return &ThreadRequestBuilder{}
}

var _ core.Builder[ThreadRequest] = (*ThreadRequestBuilder)(nil)

// UserMessage appends a plain user message.
func (b *ThreadRequestBuilder) UserMessage(content string) *ThreadRequestBuilder {
	return b.Message(NewThreadUserMessage(content))
}

// AssistantMessage appends a plain assistant message.
func (b *ThreadRequestBuilder) AssistantMessage(content string) *ThreadRequestBuilder {
	return b.Message(NewThreadAssistantMessage(content))
}

// Message appends a built message. A failed message build surfaces from
// Build.
func (b *ThreadRequestBuilder) Message(msg *ThreadMessageBuilder) *ThreadRequestBuilder {
	built, err := msg.Build()
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.messages = append(b.messages, built)
	return b
}

// Metadata upserts a metadata key.
func (b *ThreadRequestBuilder) Metadata(key, value string) *ThreadRequestBuilder {
	b.metadata.Set(key, value)
	return b
}

// MetadataMap replaces all metadata.
func (b *ThreadRequestBuilder) MetadataMap(values map[string]string) *ThreadRequestBuilder {
	b.metadata.Replace(values)
	return b
}

// ClearMetadata marks metadata for explicit removal; the request carries
// JSON null.
func (b *ThreadRequestBuilder) ClearMetadata() *ThreadRequestBuilder {
	b.metadata.Clear()
	return b
}

// Build validates and returns the wire request. An empty thread is valid.
func (b *ThreadRequestBuilder) Build() (ThreadRequest, error) {
	if b.err != nil {
		return ThreadRequest{}, b.err
	}
	return ThreadRequest{
		Messages: b.messages,
		Metadata: b.metadata.wire(),
	}, nil
}
