package petrel

import (
	"github.com/petrel-ai/petrel/builders"
	"github.com/petrel-ai/petrel/core"
)

// ChatResponse is a chat completion result.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   *core.Usage  `json:"usage,omitempty"`
}

// ChatChoice is one generated completion.
type ChatChoice struct {
	Index        int              `json:"index"`
	Message      builders.Message `json:"message"`
	FinishReason string           `json:"finish_reason"`
}

// Content returns the text of the first choice, or "" when the response has
// no choices.
func (r *ChatResponse) Content() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content.Text
}

// HasToolCalls reports whether the first choice asked to invoke tools.
func (r *ChatResponse) HasToolCalls() bool {
	return len(r.Choices) > 0 && len(r.Choices[0].Message.ToolCalls) > 0
}

// FirstToolCall returns the first tool call of the first choice, or nil.
func (r *ChatResponse) FirstToolCall() *builders.ToolCall {
	if !r.HasToolCalls() {
		return nil
	}
	return &r.Choices[0].Message.ToolCalls[0]
}

// ToolCalls returns all tool calls from the first choice.
func (r *ChatResponse) ToolCalls() []builders.ToolCall {
	if len(r.Choices) == 0 {
		return nil
	}
	return r.Choices[0].Message.ToolCalls
}

// ResponsesResult is a Responses API result.
type ResponsesResult struct {
	ID     string         `json:"id"`
	Model  string         `json:"model"`
	Status string         `json:"status"`
	Output []ResponseItem `json:"output"`
	Usage  *core.Usage    `json:"usage,omitempty"`
}

// ResponseItem is one entry of a response's output list.
type ResponseItem struct {
	Type    string            `json:"type"`
	Role    string            `json:"role,omitempty"`
	Content []ResponseContent `json:"content,omitempty"`
}

// ResponseContent is one content block inside a response item.
type ResponseContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// OutputText concatenates all output_text blocks of the response.
func (r *ResponsesResult) OutputText() string {
	var out string
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				out += c.Text
			}
		}
	}
	return out
}

// CompletionResponse is a legacy text completion result.
type CompletionResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   *core.Usage        `json:"usage,omitempty"`
}

// CompletionChoice is one legacy completion.
type CompletionChoice struct {
	Index        int    `json:"index"`
	Text         string `json:"text"`
	FinishReason string `json:"finish_reason"`
}

// Text returns the text of the first choice.
func (r *CompletionResponse) Text() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Text
}

// EmbeddingResponse is an embeddings result.
type EmbeddingResponse struct {
	Object string      `json:"object"`
	Data   []Embedding `json:"data"`
	Model  string      `json:"model"`
	Usage  *core.Usage `json:"usage,omitempty"`
}

// Embedding is one vector of an embeddings result.
type Embedding struct {
	Index  int       `json:"index"`
	Vector []float64 `json:"embedding"`
}

// FirstVector returns the first embedding vector, or nil.
func (r *EmbeddingResponse) FirstVector() []float64 {
	if len(r.Data) == 0 {
		return nil
	}
	return r.Data[0].Vector
}

// ModerationResponse is a moderation result.
type ModerationResponse struct {
	ID      string                      `json:"id"`
	Model   string                      `json:"model"`
	Results []builders.ModerationResult `json:"results"`
}

// Flagged reports whether any result was flagged.
func (r *ModerationResponse) Flagged() bool {
	for _, result := range r.Results {
		if result.Flagged {
			return true
		}
	}
	return false
}

// ImageResponse is an image generation, edit, or variation result.
type ImageResponse struct {
	Created int64       `json:"created"`
	Data    []ImageData `json:"data"`
}

// ImageData is one generated image, delivered as a URL or base64 payload
// depending on the requested response format.
type ImageData struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// Transcription is a speech-to-text result.
type Transcription struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Model describes one available model.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the models listing envelope.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// FileObject describes one stored file.
type FileObject struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
}

// FileList is the files listing envelope.
type FileList struct {
	Object string       `json:"object"`
	Data   []FileObject `json:"data"`
}

// DeletionStatus confirms a delete operation.
type DeletionStatus struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// BatchObject describes one batch job.
type BatchObject struct {
	ID               string             `json:"id"`
	Object           string             `json:"object"`
	Endpoint         string             `json:"endpoint"`
	Status           string             `json:"status"`
	InputFileID      string             `json:"input_file_id"`
	OutputFileID     string             `json:"output_file_id,omitempty"`
	ErrorFileID      string             `json:"error_file_id,omitempty"`
	CreatedAt        int64              `json:"created_at"`
	CompletedAt      int64              `json:"completed_at,omitempty"`
	RequestCounts    BatchRequestCounts `json:"request_counts"`
	Metadata         map[string]string  `json:"metadata,omitempty"`
	CompletionWindow string             `json:"completion_window"`
}

// BatchRequestCounts summarizes batch progress.
type BatchRequestCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// BatchList is the batches listing envelope.
type BatchList struct {
	Object  string        `json:"object"`
	Data    []BatchObject `json:"data"`
	HasMore bool          `json:"has_more"`
}

// UploadObject describes a multipart upload in progress.
type UploadObject struct {
	ID        string      `json:"id"`
	Object    string      `json:"object"`
	Bytes     int64       `json:"bytes"`
	Filename  string      `json:"filename"`
	Purpose   string      `json:"purpose"`
	Status    string      `json:"status"`
	ExpiresAt int64       `json:"expires_at,omitempty"`
	File      *FileObject `json:"file,omitempty"`
}

// UploadPartObject identifies one uploaded part.
type UploadPartObject struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	UploadID  string `json:"upload_id"`
	CreatedAt int64  `json:"created_at"`
}

// FineTuningJob describes one fine-tuning job.
type FineTuningJob struct {
	ID              string   `json:"id"`
	Object          string   `json:"object"`
	Model           string   `json:"model"`
	Status          string   `json:"status"`
	TrainingFile    string   `json:"training_file"`
	ValidationFile  string   `json:"validation_file,omitempty"`
	FineTunedModel  string   `json:"fine_tuned_model,omitempty"`
	CreatedAt       int64    `json:"created_at"`
	FinishedAt      int64    `json:"finished_at,omitempty"`
	ResultFiles     []string `json:"result_files,omitempty"`
	TrainedTokens   int64    `json:"trained_tokens,omitempty"`
	EstimatedFinish int64    `json:"estimated_finish,omitempty"`
}

// FineTuningJobList is the jobs listing envelope.
type FineTuningJobList struct {
	Object  string          `json:"object"`
	Data    []FineTuningJob `json:"data"`
	HasMore bool            `json:"has_more"`
}

// ThreadObject describes a conversation thread.
type ThreadObject struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	CreatedAt int64             `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// RunObject describes one assistant run on a thread.
type RunObject struct {
	ID          string      `json:"id"`
	Object      string      `json:"object"`
	ThreadID    string      `json:"thread_id"`
	AssistantID string      `json:"assistant_id"`
	Status      string      `json:"status"`
	Model       string      `json:"model"`
	CreatedAt   int64       `json:"created_at"`
	Usage       *core.Usage `json:"usage,omitempty"`
}

// AssistantObject describes one configured assistant.
type AssistantObject struct {
	ID           string `json:"id"`
	Object       string `json:"object"`
	Model        string `json:"model"`
	Name         string `json:"name,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

// VectorStoreObject describes one vector store.
type VectorStoreObject struct {
	ID         string `json:"id"`
	Object     string `json:"object"`
	Name       string `json:"name,omitempty"`
	Status     string `json:"status"`
	FileCounts struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
		Failed    int `json:"failed"`
	} `json:"file_counts"`
	CreatedAt int64 `json:"created_at"`
}

// VectorStoreFileObject describes a file attached to a vector store.
type VectorStoreFileObject struct {
	ID            string `json:"id"`
	Object        string `json:"object"`
	VectorStoreID string `json:"vector_store_id"`
	Status        string `json:"status"`
}

// VectorStoreSearchResult is one hit of a vector store search.
type VectorStoreSearchResult struct {
	FileID   string  `json:"file_id"`
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
	Content  []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// VectorStoreSearchList is the search results envelope.
type VectorStoreSearchList struct {
	Object string                    `json:"object"`
	Data   []VectorStoreSearchResult `json:"data"`
}

// UsagePage is one page of organization usage buckets. Bucket contents vary
// by endpoint, so results stay loosely typed.
type UsagePage struct {
	Object   string        `json:"object"`
	Data     []UsageBucket `json:"data"`
	HasMore  bool          `json:"has_more"`
	NextPage string        `json:"next_page,omitempty"`
}

// UsageBucket is one aggregation window.
type UsageBucket struct {
	Object    string           `json:"object"`
	StartTime int64            `json:"start_time"`
	EndTime   int64            `json:"end_time"`
	Results   []map[string]any `json:"results"`
}
