package builders

import (
	"github.com/petrel-ai/petrel/core"
)

// BatchEndpoint is the target API for every request in a batch input file.
type BatchEndpoint string

const (
	BatchChatCompletions BatchEndpoint = "/v1/chat/completions"
	BatchEmbeddings      BatchEndpoint = "/v1/embeddings"
	BatchCompletions     BatchEndpoint = "/v1/completions"
)

// BatchCompletionWindow is the processing deadline for a batch.
type BatchCompletionWindow string

const BatchWindow24h BatchCompletionWindow = "24h"

// BatchRequest is the wire form of a batch job submission.
type BatchRequest struct {
	InputFileID      string                 `json:"input_file_id"`
	Endpoint         BatchEndpoint          `json:"endpoint"`
	CompletionWindow BatchCompletionWindow  `json:"completion_window"`
	Metadata         *map[string]string     `json:"metadata,omitempty"`
}

// BatchBuilder assembles a batch job submission.
type BatchBuilder struct {
	inputFileID string
	endpoint    BatchEndpoint
	window      BatchCompletionWindow
	metadata    Metadata
}

// NewBatch starts a batch submission from an uploaded input file and a
// target endpoint. The completion window defaults to 24 hours.
func NewBatch(inputFileID string, endpoint BatchEndpoint) *BatchBuilder {
	return &BatchBuilder{
		inputFileID: inputFileID,
		endpoint:    endpoint,
		window:      BatchWindow24h,
	}
}

var _ core.Builder[BatchRequest] = (*BatchBuilder)(nil)

// CompletionWindow overrides the processing deadline.
func (b *BatchBuilder) CompletionWindow(window BatchCompletionWindow) *BatchBuilder {
	b.window = window
	return b
}

// Metadata upserts a metadata key.
func (b *BatchBuilder) Metadata(key, value string) *BatchBuilder {
	b.metadata.Set(key, value)
	return b
}

// MetadataMap replaces all metadata.
func (b *BatchBuilder) MetadataMap(values map[string]string) *BatchBuilder {
	b.metadata.Replace(values)
	return b
}

// Build validates and returns the wire request.
func (b *BatchBuilder) Build() (BatchRequest, error) {
	if b.inputFileID == "" {
		return BatchRequest{}, &core.MissingFieldError{Field: "Input file id"}
	}
	if b.endpoint == "" {
		return BatchRequest{}, &core.MissingFieldError{Field: "Batch endpoint"}
	}
	return BatchRequest{
		InputFileID:      b.inputFileID,
		Endpoint:         b.endpoint,
		CompletionWindow: b.window,
		Metadata:         b.metadata.wire(),
	}, nil
}

// BatchRef addresses an existing batch for retrieval or cancellation.
type BatchRef struct {
	BatchID string `json:"-"`
}

// NewBatchRetrieval builds a reference for fetching batch status.
func NewBatchRetrieval(batchID string) (BatchRef, error) {
	return batchRef(batchID)
}

// NewBatchCancel builds a reference for canceling an in-progress batch.
func NewBatchCancel(batchID string) (BatchRef, error) {
	return batchRef(batchID)
}

func batchRef(batchID string) (BatchRef, error) {
	if batchID == "" {
		return BatchRef{}, &core.MissingFieldError{Field: "Batch id"}
	}
	return BatchRef{BatchID: batchID}, nil
}

// BatchListRequest selects a page of batch jobs.
type BatchListRequest struct {
	After string `json:"after,omitempty"`
	Limit *int   `json:"limit,omitempty"`
}

// BatchListBuilder assembles a batch listing request.
type BatchListBuilder struct {
	req BatchListRequest
}

// NewBatchList starts a batch listing request.
func NewBatchList() *BatchListBuilder {
	return &BatchListBuilder{}
}

var _ core.Builder[BatchListRequest] = (*BatchListBuilder)(nil)

// After sets the pagination cursor.
func (b *BatchListBuilder) After(batchID string) *BatchListBuilder {
	b.req.After = batchID
	return b
}

func (b *BatchListBuilder) Limit(n int) *BatchListBuilder {
	b.req.Limit = intPtr(n)
	return b
}

func (b *BatchListBuilder) Build() (BatchListRequest, error) {
	return b.req, nil
}
