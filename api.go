package petrel

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/petrel-ai/petrel/builders"
)

// Chat executes a chat completion request.
func (c *Client) Chat(ctx context.Context, b *builders.ChatBuilder) (*ChatResponse, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/completions", req.Model, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Responses executes a Responses API request.
func (c *Client) Responses(ctx context.Context, b *builders.ResponsesBuilder) (*ResponsesResult, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out ResponsesResult
	if err := c.doJSON(ctx, http.MethodPost, "/responses", req.Model, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Completions executes a legacy text completion request.
func (c *Client) Completions(ctx context.Context, b *builders.CompletionBuilder) (*CompletionResponse, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out CompletionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/completions", req.Model, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Embeddings executes an embeddings request.
func (c *Client) Embeddings(ctx context.Context, b *builders.EmbeddingBuilder) (*EmbeddingResponse, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out EmbeddingResponse
	if err := c.doJSON(ctx, http.MethodPost, "/embeddings", req.Model, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Moderations executes a content moderation request.
func (c *Client) Moderations(ctx context.Context, b *builders.ModerationBuilder) (*ModerationResponse, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out ModerationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/moderations", req.Model, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Speech synthesizes audio from text and returns the raw audio bytes.
func (c *Client) Speech(ctx context.Context, b *builders.SpeechBuilder) ([]byte, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var audio []byte
	if err := c.doJSON(ctx, http.MethodPost, "/audio/speech", req.Model, req, &audio); err != nil {
		return nil, err
	}
	return audio, nil
}

// Transcribe converts speech to text.
func (c *Client) Transcribe(ctx context.Context, b *builders.TranscriptionBuilder) (*Transcription, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}

	fields := []multipartField{
		{name: "file", filename: req.Filename, data: req.File},
		{name: "model", value: req.Model},
	}
	fields = appendField(fields, "language", req.Language)
	fields = appendField(fields, "prompt", req.Prompt)
	fields = appendField(fields, "response_format", req.ResponseFormat)
	fields = appendField(fields, "chunking_strategy", string(req.ChunkingStrategy))
	if req.Temperature != nil {
		fields = appendField(fields, "temperature", formatFloat(*req.Temperature))
	}
	for _, g := range req.TimestampGranularities {
		fields = appendField(fields, "timestamp_granularities[]", g)
	}
	for _, inc := range req.Include {
		fields = appendField(fields, "include[]", inc)
	}

	var out Transcription
	if err := c.doMultipart(ctx, "/audio/transcriptions", req.Model, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Translate converts speech in any supported language to English text.
func (c *Client) Translate(ctx context.Context, b *builders.TranslationBuilder) (*Transcription, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}

	fields := []multipartField{
		{name: "file", filename: req.Filename, data: req.File},
		{name: "model", value: req.Model},
	}
	fields = appendField(fields, "prompt", req.Prompt)
	fields = appendField(fields, "response_format", req.ResponseFormat)
	if req.Temperature != nil {
		fields = appendField(fields, "temperature", formatFloat(*req.Temperature))
	}

	var out Transcription
	if err := c.doMultipart(ctx, "/audio/translations", req.Model, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateImage creates images from a text prompt.
func (c *Client) GenerateImage(ctx context.Context, b *builders.ImageGenerationBuilder) (*ImageResponse, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out ImageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/images/generations", req.Model, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditImage edits an existing image under a prompt and optional mask.
func (c *Client) EditImage(ctx context.Context, b *builders.ImageEditBuilder) (*ImageResponse, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}

	fields := []multipartField{
		{name: "image", filename: "image.png", data: req.Image},
		{name: "prompt", value: req.Prompt},
	}
	if req.Mask != nil {
		fields = append(fields, multipartField{name: "mask", filename: "mask.png", data: req.Mask})
	}
	fields = appendField(fields, "model", req.Model)
	fields = appendField(fields, "quality", req.Quality)
	fields = appendField(fields, "input_fidelity", req.InputFidelity)
	fields = appendField(fields, "response_format", req.ResponseFormat)
	fields = appendField(fields, "size", req.Size)
	if req.N != nil {
		fields = appendField(fields, "n", strconv.Itoa(*req.N))
	}

	var out ImageResponse
	if err := c.doMultipart(ctx, "/images/edits", req.Model, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VaryImage generates variations of an existing image.
func (c *Client) VaryImage(ctx context.Context, b *builders.ImageVariationBuilder) (*ImageResponse, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}

	fields := []multipartField{
		{name: "image", filename: "image.png", data: req.Image},
	}
	fields = appendField(fields, "model", req.Model)
	fields = appendField(fields, "response_format", req.ResponseFormat)
	fields = appendField(fields, "size", req.Size)
	if req.N != nil {
		fields = appendField(fields, "n", strconv.Itoa(*req.N))
	}

	var out ImageResponse
	if err := c.doMultipart(ctx, "/images/variations", req.Model, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadFile stores a file for later use by other endpoints.
func (c *Client) UploadFile(ctx context.Context, b *builders.FileUploadBuilder) (*FileObject, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}

	fields := []multipartField{
		{name: "file", filename: req.Filename, data: req.Content},
		{name: "purpose", value: string(req.Purpose)},
	}

	var out FileObject
	if err := c.doMultipart(ctx, "/files", "", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFiles lists stored files.
func (c *Client) ListFiles(ctx context.Context, b *builders.FileListBuilder) (*FileList, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	if req.Purpose != "" {
		q.Set("purpose", string(req.Purpose))
	}
	if req.Limit != nil {
		q.Set("limit", strconv.Itoa(*req.Limit))
	}
	if req.Order != "" {
		q.Set("order", req.Order)
	}
	if req.After != "" {
		q.Set("after", req.After)
	}

	var out FileList
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/files", q), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFile fetches metadata for one stored file.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileObject, error) {
	ref, err := builders.NewFileRetrieval(fileID)
	if err != nil {
		return nil, err
	}
	var out FileObject
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+ref.FileID, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFileContent downloads the raw contents of a stored file.
func (c *Client) GetFileContent(ctx context.Context, fileID string) ([]byte, error) {
	ref, err := builders.NewFileRetrieval(fileID)
	if err != nil {
		return nil, err
	}
	var data []byte
	if err := c.doJSON(ctx, http.MethodGet, "/files/"+ref.FileID+"/content", "", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// DeleteFile removes a stored file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) (*DeletionStatus, error) {
	ref, err := builders.NewFileDelete(fileID)
	if err != nil {
		return nil, err
	}
	var out DeletionStatus
	if err := c.doJSON(ctx, http.MethodDelete, "/files/"+ref.FileID, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUpload registers a multipart upload.
func (c *Client) CreateUpload(ctx context.Context, b *builders.UploadBuilder) (*UploadObject, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out UploadObject
	if err := c.doJSON(ctx, http.MethodPost, "/uploads", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddUploadPart sends one chunk of a registered upload.
func (c *Client) AddUploadPart(ctx context.Context, uploadID string, data []byte) (*UploadPartObject, error) {
	fields := []multipartField{
		{name: "data", filename: "part", data: data},
	}
	var out UploadPartObject
	if err := c.doMultipart(ctx, "/uploads/"+uploadID+"/parts", "", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteUpload assembles a registered upload from its parts.
func (c *Client) CompleteUpload(ctx context.Context, b *builders.CompleteUploadBuilder) (*UploadObject, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out UploadObject
	if err := c.doJSON(ctx, http.MethodPost, "/uploads/"+req.UploadID+"/complete", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelUpload cancels a registered upload.
func (c *Client) CancelUpload(ctx context.Context, uploadID string) (*UploadObject, error) {
	var out UploadObject
	if err := c.doJSON(ctx, http.MethodPost, "/uploads/"+uploadID+"/cancel", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBatch submits a batch job.
func (c *Client) CreateBatch(ctx context.Context, b *builders.BatchBuilder) (*BatchObject, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out BatchObject
	if err := c.doJSON(ctx, http.MethodPost, "/batches", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBatch fetches the status of a batch job.
func (c *Client) GetBatch(ctx context.Context, batchID string) (*BatchObject, error) {
	ref, err := builders.NewBatchRetrieval(batchID)
	if err != nil {
		return nil, err
	}
	var out BatchObject
	if err := c.doJSON(ctx, http.MethodGet, "/batches/"+ref.BatchID, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelBatch cancels an in-progress batch job.
func (c *Client) CancelBatch(ctx context.Context, batchID string) (*BatchObject, error) {
	ref, err := builders.NewBatchCancel(batchID)
	if err != nil {
		return nil, err
	}
	var out BatchObject
	if err := c.doJSON(ctx, http.MethodPost, "/batches/"+ref.BatchID+"/cancel", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBatches pages through batch jobs.
func (c *Client) ListBatches(ctx context.Context, b *builders.BatchListBuilder) (*BatchList, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	if req.After != "" {
		q.Set("after", req.After)
	}
	if req.Limit != nil {
		q.Set("limit", strconv.Itoa(*req.Limit))
	}

	var out BatchList
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/batches", q), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFineTuning submits a fine-tuning job.
func (c *Client) CreateFineTuning(ctx context.Context, b *builders.FineTuningBuilder) (*FineTuningJob, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out FineTuningJob
	if err := c.doJSON(ctx, http.MethodPost, "/fine_tuning/jobs", req.Model, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFineTuning fetches the status of a fine-tuning job.
func (c *Client) GetFineTuning(ctx context.Context, jobID string) (*FineTuningJob, error) {
	ref, err := builders.NewFineTuningRetrieval(jobID)
	if err != nil {
		return nil, err
	}
	var out FineTuningJob
	if err := c.doJSON(ctx, http.MethodGet, "/fine_tuning/jobs/"+ref.JobID, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelFineTuning cancels a running fine-tuning job.
func (c *Client) CancelFineTuning(ctx context.Context, jobID string) (*FineTuningJob, error) {
	ref, err := builders.NewFineTuningCancel(jobID)
	if err != nil {
		return nil, err
	}
	var out FineTuningJob
	if err := c.doJSON(ctx, http.MethodPost, "/fine_tuning/jobs/"+ref.JobID+"/cancel", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListFineTuning pages through fine-tuning jobs.
func (c *Client) ListFineTuning(ctx context.Context, b *builders.FineTuningListBuilder) (*FineTuningJobList, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	if req.After != "" {
		q.Set("after", req.After)
	}
	if req.Limit != nil {
		q.Set("limit", strconv.Itoa(*req.Limit))
	}

	var out FineTuningJobList
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/fine_tuning/jobs", q), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListModels lists the models available to the caller.
func (c *Client) ListModels(ctx context.Context) (*ModelList, error) {
	var out ModelList
	if err := c.doJSON(ctx, http.MethodGet, "/models", "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetModel fetches metadata for one model.
func (c *Client) GetModel(ctx context.Context, modelID string) (*Model, error) {
	ref, err := builders.NewModelRetrieval(modelID)
	if err != nil {
		return nil, err
	}
	var out Model
	if err := c.doJSON(ctx, http.MethodGet, "/models/"+ref.ModelID, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteModel deletes a fine-tuned model the caller owns.
func (c *Client) DeleteModel(ctx context.Context, modelID string) (*DeletionStatus, error) {
	ref, err := builders.NewModelDelete(modelID)
	if err != nil {
		return nil, err
	}
	var out DeletionStatus
	if err := c.doJSON(ctx, http.MethodDelete, "/models/"+ref.ModelID, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateThread creates a conversation thread, optionally seeded with
// messages.
func (c *Client) CreateThread(ctx context.Context, b *builders.ThreadRequestBuilder) (*ThreadObject, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out ThreadObject
	if err := c.doJSON(ctx, http.MethodPost, "/threads", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRun starts an assistant run on a thread.
func (c *Client) CreateRun(ctx context.Context, b *builders.RunBuilder) (*RunObject, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out RunObject
	if err := c.doJSON(ctx, http.MethodPost, "/threads/"+req.ThreadID+"/runs", req.Model, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAssistant creates a configured assistant.
func (c *Client) CreateAssistant(ctx context.Context, b *builders.AssistantBuilder) (*AssistantObject, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out AssistantObject
	if err := c.doJSON(ctx, http.MethodPost, "/assistants", req.Model, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateVectorStore creates a vector store.
func (c *Client) CreateVectorStore(ctx context.Context, b *builders.VectorStoreBuilder) (*VectorStoreObject, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out VectorStoreObject
	if err := c.doJSON(ctx, http.MethodPost, "/vector_stores", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddVectorStoreFile attaches an uploaded file to a vector store.
func (c *Client) AddVectorStoreFile(ctx context.Context, b *builders.VectorStoreFileBuilder) (*VectorStoreFileObject, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out VectorStoreFileObject
	if err := c.doJSON(ctx, http.MethodPost, "/vector_stores/"+req.VectorStoreID+"/files", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchVectorStore runs a semantic search over a vector store.
func (c *Client) SearchVectorStore(ctx context.Context, b *builders.VectorStoreSearchBuilder) (*VectorStoreSearchList, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}
	var out VectorStoreSearchList
	if err := c.doJSON(ctx, http.MethodPost, "/vector_stores/"+req.VectorStoreID+"/search", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUsage queries organization completion usage.
func (c *Client) GetUsage(ctx context.Context, b *builders.UsageBuilder) (*UsagePage, error) {
	req, err := b.Build()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("start_time", strconv.FormatInt(req.StartTime, 10))
	if req.EndTime != nil {
		q.Set("end_time", strconv.FormatInt(*req.EndTime, 10))
	}
	if req.BucketWidth != "" {
		q.Set("bucket_width", req.BucketWidth)
	}
	for _, id := range req.ProjectIDs {
		q.Add("project_ids", id)
	}
	for _, id := range req.UserIDs {
		q.Add("user_ids", id)
	}
	for _, id := range req.APIKeyIDs {
		q.Add("api_key_ids", id)
	}
	for _, m := range req.Models {
		q.Add("models", m)
	}
	for _, g := range req.GroupBy {
		q.Add("group_by", g)
	}
	if req.Limit != nil {
		q.Set("limit", strconv.Itoa(*req.Limit))
	}
	if req.Page != "" {
		q.Set("page", req.Page)
	}

	var out UsagePage
	if err := c.doJSON(ctx, http.MethodGet, withQuery("/organization/usage/completions", q), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
