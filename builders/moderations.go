package builders

import (
	"encoding/json"

	"github.com/petrel-ai/petrel/core"
)

// ModerationInput is either a single string or a list of strings.
type ModerationInput struct {
	text  *string
	texts []string
}

// ModerationText moderates a single string.
func ModerationText(text string) ModerationInput {
	return ModerationInput{text: &text}
}

// ModerationTexts moderates a list of strings.
func ModerationTexts(texts ...string) ModerationInput {
	return ModerationInput{texts: texts}
}

func (in ModerationInput) isZero() bool {
	return in.text == nil && in.texts == nil
}

func (in ModerationInput) MarshalJSON() ([]byte, error) {
	if in.text != nil {
		return json.Marshal(*in.text)
	}
	return json.Marshal(in.texts)
}

// ModerationRequest is the wire form of a moderation request.
type ModerationRequest struct {
	Input ModerationInput `json:"input"`
	Model string          `json:"model,omitempty"`
}

// ModerationBuilder assembles a content moderation request.
type ModerationBuilder struct {
	req ModerationRequest
}

// NewModeration starts a moderation request.
func NewModeration(input ModerationInput) *ModerationBuilder {
	return &ModerationBuilder{req: ModerationRequest{Input: input}}
}

var _ core.Builder[ModerationRequest] = (*ModerationBuilder)(nil)

// Model overrides the default moderation model.
func (b *ModerationBuilder) Model(model string) *ModerationBuilder {
	b.req.Model = model
	return b
}

// Build validates and returns the wire request.
func (b *ModerationBuilder) Build() (ModerationRequest, error) {
	if b.req.Input.isZero() {
		return ModerationRequest{}, &core.EmptyCollectionError{Collection: "input"}
	}
	return b.req, nil
}

// ModerationCategories flags which policy categories matched.
type ModerationCategories struct {
	Hate                  bool `json:"hate"`
	HateThreatening       bool `json:"hate/threatening"`
	Harassment            bool `json:"harassment"`
	HarassmentThreatening bool `json:"harassment/threatening"`
	SelfHarm              bool `json:"self-harm"`
	SelfHarmIntent        bool `json:"self-harm/intent"`
	SelfHarmInstructions  bool `json:"self-harm/instructions"`
	Sexual                bool `json:"sexual"`
	SexualMinors          bool `json:"sexual/minors"`
	Violence              bool `json:"violence"`
	ViolenceGraphic       bool `json:"violence/graphic"`
}

// ModerationScores carries per-category confidence scores.
type ModerationScores struct {
	Hate                  float64 `json:"hate"`
	HateThreatening       float64 `json:"hate/threatening"`
	Harassment            float64 `json:"harassment"`
	HarassmentThreatening float64 `json:"harassment/threatening"`
	SelfHarm              float64 `json:"self-harm"`
	SelfHarmIntent        float64 `json:"self-harm/intent"`
	SelfHarmInstructions  float64 `json:"self-harm/instructions"`
	Sexual                float64 `json:"sexual"`
	SexualMinors          float64 `json:"sexual/minors"`
	Violence              float64 `json:"violence"`
	ViolenceGraphic       float64 `json:"violence/graphic"`
}

// ModerationResult is one entry of a moderation response.
type ModerationResult struct {
	Flagged    bool                 `json:"flagged"`
	Categories ModerationCategories `json:"categories"`
	Scores     ModerationScores     `json:"category_scores"`
}
