package builders

import (
	"strings"

	"github.com/petrel-ai/petrel/core"
)

// Hyperparameters tunes a fine-tuning run. Unset fields keep the server
// defaults ("auto").
type Hyperparameters struct {
	NEpochs                *int     `json:"n_epochs,omitempty"`
	BatchSize              *int     `json:"batch_size,omitempty"`
	LearningRateMultiplier *float64 `json:"learning_rate_multiplier,omitempty"`
}

// WandbIntegration streams training metrics to a Weights & Biases project.
type WandbIntegration struct {
	Project string   `json:"project"`
	Name    string   `json:"name,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// FineTuningIntegration is one entry in a job's integrations list.
type FineTuningIntegration struct {
	Type  string            `json:"type"`
	Wandb *WandbIntegration `json:"wandb,omitempty"`
}

// FineTuningRequest is the wire form of a fine-tuning job submission.
type FineTuningRequest struct {
	Model           string                  `json:"model"`
	TrainingFile    string                  `json:"training_file"`
	ValidationFile  string                  `json:"validation_file,omitempty"`
	Hyperparameters *Hyperparameters        `json:"hyperparameters,omitempty"`
	Suffix          string                  `json:"suffix,omitempty"`
	Integrations    []FineTuningIntegration `json:"integrations,omitempty"`
	Seed            *int                    `json:"seed,omitempty"`
}

// FineTuningBuilder assembles a fine-tuning job submission.
type FineTuningBuilder struct {
	req FineTuningRequest
}

// NewFineTuning starts a fine-tuning job from a base model and an uploaded
// training file.
func NewFineTuning(model, trainingFileID string) *FineTuningBuilder {
	return &FineTuningBuilder{req: FineTuningRequest{Model: model, TrainingFile: trainingFileID}}
}

var _ core.Builder[FineTuningRequest] = (*FineTuningBuilder)(nil)

// ValidationFile adds a held-out validation file.
func (b *FineTuningBuilder) ValidationFile(fileID string) *FineTuningBuilder {
	b.req.ValidationFile = fileID
	return b
}

func (b *FineTuningBuilder) Epochs(n int) *FineTuningBuilder {
	b.hyper().NEpochs = intPtr(n)
	return b
}

func (b *FineTuningBuilder) BatchSize(n int) *FineTuningBuilder {
	b.hyper().BatchSize = intPtr(n)
	return b
}

func (b *FineTuningBuilder) LearningRateMultiplier(v float64) *FineTuningBuilder {
	b.hyper().LearningRateMultiplier = floatPtr(v)
	return b
}

// Suffix is appended to the fine-tuned model name.
func (b *FineTuningBuilder) Suffix(suffix string) *FineTuningBuilder {
	b.req.Suffix = suffix
	return b
}

// WithWandb streams metrics to a Weights & Biases project.
func (b *FineTuningBuilder) WithWandb(project string, tags ...string) *FineTuningBuilder {
	b.req.Integrations = append(b.req.Integrations, FineTuningIntegration{
		Type:  "wandb",
		Wandb: &WandbIntegration{Project: project, Tags: tags},
	})
	return b
}

func (b *FineTuningBuilder) Seed(seed int) *FineTuningBuilder {
	b.req.Seed = intPtr(seed)
	return b
}

func (b *FineTuningBuilder) hyper() *Hyperparameters {
	if b.req.Hyperparameters == nil {
		b.req.Hyperparameters = &Hyperparameters{}
	}
	return b.req.Hyperparameters
}

// Build validates and returns the wire request.
func (b *FineTuningBuilder) Build() (FineTuningRequest, error) {
	if strings.TrimSpace(b.req.Model) == "" {
		return FineTuningRequest{}, &core.MissingFieldError{Field: "Model"}
	}
	if b.req.TrainingFile == "" {
		return FineTuningRequest{}, &core.MissingFieldError{Field: "Training file id"}
	}
	return b.req, nil
}

// FineTuningRef addresses an existing fine-tuning job.
type FineTuningRef struct {
	JobID string `json:"-"`
}

// NewFineTuningRetrieval builds a reference for fetching job status.
func NewFineTuningRetrieval(jobID string) (FineTuningRef, error) {
	return fineTuningRef(jobID)
}

// NewFineTuningCancel builds a reference for canceling a running job.
func NewFineTuningCancel(jobID string) (FineTuningRef, error) {
	return fineTuningRef(jobID)
}

func fineTuningRef(jobID string) (FineTuningRef, error) {
	if jobID == "" {
		return FineTuningRef{}, &core.MissingFieldError{Field: "Fine-tuning job id"}
	}
	return FineTuningRef{JobID: jobID}, nil
}

// FineTuningListRequest selects a page of fine-tuning jobs.
type FineTuningListRequest struct {
	After string `json:"after,omitempty"`
	Limit *int   `json:"limit,omitempty"`
}

// FineTuningListBuilder assembles a job listing request.
type FineTuningListBuilder struct {
	req FineTuningListRequest
}

// NewFineTuningList starts a job listing request.
func NewFineTuningList() *FineTuningListBuilder {
	return &FineTuningListBuilder{}
}

var _ core.Builder[FineTuningListRequest] = (*FineTuningListBuilder)(nil)

func (b *FineTuningListBuilder) After(jobID string) *FineTuningListBuilder {
	b.req.After = jobID
	return b
}

func (b *FineTuningListBuilder) Limit(n int) *FineTuningListBuilder {
	b.req.Limit = intPtr(n)
	return b
}

func (b *FineTuningListBuilder) Build() (FineTuningListRequest, error) {
	return b.req, nil
}
