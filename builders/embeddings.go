package builders

import (
	"encoding/json"
	"strings"

	"github.com/petrel-ai/petrel/core"
)

// EmbeddingInput is the closed set of input shapes the embeddings endpoint
// accepts: a single string, a list of strings, a single token array, or a
// batch of token arrays. Construct values with the Input* functions.
type EmbeddingInput struct {
	text         *string
	texts        []string
	tokens       []int
	tokenBatches [][]int
}

// InputText embeds a single string.
func InputText(text string) EmbeddingInput {
	return EmbeddingInput{text: &text}
}

// InputTexts embeds a list of strings.
func InputTexts(texts ...string) EmbeddingInput {
	return EmbeddingInput{texts: texts}
}

// InputTokens embeds a pre-tokenized input.
func InputTokens(tokens []int) EmbeddingInput {
	return EmbeddingInput{tokens: tokens}
}

// InputTokenBatches embeds multiple pre-tokenized inputs.
func InputTokenBatches(batches [][]int) EmbeddingInput {
	return EmbeddingInput{tokenBatches: batches}
}

func (in EmbeddingInput) isZero() bool {
	return in.text == nil && in.texts == nil && in.tokens == nil && in.tokenBatches == nil
}

func (in EmbeddingInput) MarshalJSON() ([]byte, error) {
	switch {
	case in.text != nil:
		return json.Marshal(*in.text)
	case in.texts != nil:
		return json.Marshal(in.texts)
	case in.tokens != nil:
		return json.Marshal(in.tokens)
	default:
		return json.Marshal(in.tokenBatches)
	}
}

// EmbeddingRequest is the wire form of an embeddings request.
type EmbeddingRequest struct {
	Model          string         `json:"model"`
	Input          EmbeddingInput `json:"input"`
	Dimensions     *int           `json:"dimensions,omitempty"`
	EncodingFormat string         `json:"encoding_format,omitempty"`
	User           string         `json:"user,omitempty"`
}

// EmbeddingBuilder assembles an embeddings request.
type EmbeddingBuilder struct {
	req EmbeddingRequest
}

// NewEmbedding starts an embeddings request for the given model.
func NewEmbedding(model string) *EmbeddingBuilder {
	return &EmbeddingBuilder{req: EmbeddingRequest{Model: model}}
}

// EmbedText is shorthand for a single-string embeddings request.
func EmbedText(model, text string) *EmbeddingBuilder {
	return NewEmbedding(model).Input(InputText(text))
}

// EmbedTexts is shorthand for a multi-string embeddings request.
func EmbedTexts(model string, texts ...string) *EmbeddingBuilder {
	return NewEmbedding(model).Input(InputTexts(texts...))
}

var _ core.Builder[EmbeddingRequest] = (*EmbeddingBuilder)(nil)

func (b *EmbeddingBuilder) Model(model string) *EmbeddingBuilder {
	b.req.Model = model
	return b
}

// Input sets the input payload, replacing any earlier input shape.
func (b *EmbeddingBuilder) Input(input EmbeddingInput) *EmbeddingBuilder {
	b.req.Input = input
	return b
}

// Dimensions requests reduced-dimension output where the model supports it.
func (b *EmbeddingBuilder) Dimensions(n int) *EmbeddingBuilder {
	b.req.Dimensions = intPtr(n)
	return b
}

// EncodingFormat selects "float" or "base64" vector encoding.
func (b *EmbeddingBuilder) EncodingFormat(format string) *EmbeddingBuilder {
	b.req.EncodingFormat = format
	return b
}

// EndUser tags the request with an end-user identifier.
func (b *EmbeddingBuilder) EndUser(id string) *EmbeddingBuilder {
	b.req.User = id
	return b
}

// Build validates and returns the wire request.
func (b *EmbeddingBuilder) Build() (EmbeddingRequest, error) {
	if strings.TrimSpace(b.req.Model) == "" {
		return EmbeddingRequest{}, &core.MissingFieldError{Field: "Model"}
	}
	if b.req.Input.isZero() {
		return EmbeddingRequest{}, &core.EmptyCollectionError{Collection: "input"}
	}
	if err := checkPositive("Embedding dimensions", b.req.Dimensions); err != nil {
		return EmbeddingRequest{}, err
	}
	return b.req, nil
}
