package builders

import (
	"encoding/json"
	"strings"

	"github.com/petrel-ai/petrel/core"
)

// StopSequences marshals as a bare string when only one sequence is present,
// matching the legacy completions wire format.
type StopSequences []string

func (s StopSequences) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// CompletionRequest is the wire form of a legacy text completion request.
type CompletionRequest struct {
	Model            string             `json:"model"`
	Prompt           string             `json:"prompt"`
	BestOf           *int               `json:"best_of,omitempty"`
	Echo             *bool              `json:"echo,omitempty"`
	FrequencyPenalty *float64           `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]float64 `json:"logit_bias,omitempty"`
	Logprobs         *int               `json:"logprobs,omitempty"`
	MaxTokens        *int               `json:"max_tokens,omitempty"`
	N                *int               `json:"n,omitempty"`
	PresencePenalty  *float64           `json:"presence_penalty,omitempty"`
	Seed             *int               `json:"seed,omitempty"`
	Stop             StopSequences      `json:"stop,omitempty"`
	Stream           *bool              `json:"stream,omitempty"`
	Suffix           string             `json:"suffix,omitempty"`
	Temperature      *float64           `json:"temperature,omitempty"`
	TopP             *float64           `json:"top_p,omitempty"`
	User             string             `json:"user,omitempty"`
}

// CompletionBuilder assembles a legacy text completion request.
type CompletionBuilder struct {
	req CompletionRequest
}

// NewCompletion starts a legacy completion request.
func NewCompletion(model, prompt string) *CompletionBuilder {
	return &CompletionBuilder{req: CompletionRequest{Model: model, Prompt: prompt}}
}

var _ core.Builder[CompletionRequest] = (*CompletionBuilder)(nil)

func (b *CompletionBuilder) BestOf(n int) *CompletionBuilder {
	b.req.BestOf = intPtr(n)
	return b
}

// Echo includes the prompt in the completion output.
func (b *CompletionBuilder) Echo(enabled bool) *CompletionBuilder {
	b.req.Echo = boolPtr(enabled)
	return b
}

func (b *CompletionBuilder) FrequencyPenalty(v float64) *CompletionBuilder {
	b.req.FrequencyPenalty = floatPtr(v)
	return b
}

// LogitBias adjusts the likelihood of a token id appearing.
func (b *CompletionBuilder) LogitBias(tokenID string, bias float64) *CompletionBuilder {
	if b.req.LogitBias == nil {
		b.req.LogitBias = map[string]float64{}
	}
	b.req.LogitBias[tokenID] = bias
	return b
}

func (b *CompletionBuilder) Logprobs(n int) *CompletionBuilder {
	b.req.Logprobs = intPtr(n)
	return b
}

func (b *CompletionBuilder) MaxTokens(n int) *CompletionBuilder {
	b.req.MaxTokens = intPtr(n)
	return b
}

func (b *CompletionBuilder) N(n int) *CompletionBuilder {
	b.req.N = intPtr(n)
	return b
}

func (b *CompletionBuilder) PresencePenalty(v float64) *CompletionBuilder {
	b.req.PresencePenalty = floatPtr(v)
	return b
}

func (b *CompletionBuilder) Seed(seed int) *CompletionBuilder {
	b.req.Seed = intPtr(seed)
	return b
}

func (b *CompletionBuilder) Stop(sequences ...string) *CompletionBuilder {
	b.req.Stop = append(b.req.Stop, sequences...)
	return b
}

func (b *CompletionBuilder) Stream(enabled bool) *CompletionBuilder {
	b.req.Stream = boolPtr(enabled)
	return b
}

// Suffix is text appended after the completion insertion point.
func (b *CompletionBuilder) Suffix(suffix string) *CompletionBuilder {
	b.req.Suffix = suffix
	return b
}

func (b *CompletionBuilder) Temperature(v float64) *CompletionBuilder {
	b.req.Temperature = floatPtr(v)
	return b
}

func (b *CompletionBuilder) TopP(v float64) *CompletionBuilder {
	b.req.TopP = floatPtr(v)
	return b
}

func (b *CompletionBuilder) EndUser(id string) *CompletionBuilder {
	b.req.User = id
	return b
}

// Build validates and returns the wire request. Legacy completions only
// enforce the required fields; sampling parameters pass through unchecked.
func (b *CompletionBuilder) Build() (CompletionRequest, error) {
	if strings.TrimSpace(b.req.Model) == "" {
		return CompletionRequest{}, &core.MissingFieldError{Field: "Model"}
	}
	if b.req.Prompt == "" {
		return CompletionRequest{}, &core.MissingFieldError{Field: "Prompt"}
	}
	return b.req, nil
}
