package builders

import (
	"strings"

	"github.com/petrel-ai/petrel/core"
)

// SpeechRequest is the wire form of a text-to-speech request.
type SpeechRequest struct {
	Model          string   `json:"model"`
	Input          string   `json:"input"`
	Voice          string   `json:"voice"`
	Instructions   string   `json:"instructions,omitempty"`
	ResponseFormat string   `json:"response_format,omitempty"`
	Speed          *float64 `json:"speed,omitempty"`
	StreamFormat   string   `json:"stream_format,omitempty"`
}

// SpeechBuilder assembles a text-to-speech request.
type SpeechBuilder struct {
	req SpeechRequest
}

// NewSpeech starts a speech request from a model, the text to speak, and a
// voice name.
func NewSpeech(model, input, voice string) *SpeechBuilder {
	return &SpeechBuilder{req: SpeechRequest{Model: model, Input: input, Voice: voice}}
}

var _ core.Builder[SpeechRequest] = (*SpeechBuilder)(nil)

// Instructions guides voice delivery, e.g. tone or pacing.
func (b *SpeechBuilder) Instructions(text string) *SpeechBuilder {
	b.req.Instructions = text
	return b
}

func (b *SpeechBuilder) ResponseFormat(format string) *SpeechBuilder {
	b.req.ResponseFormat = format
	return b
}

// Speed sets playback speed, valid range 0.25 to 4.0.
func (b *SpeechBuilder) Speed(speed float64) *SpeechBuilder {
	b.req.Speed = floatPtr(speed)
	return b
}

func (b *SpeechBuilder) StreamFormat(format string) *SpeechBuilder {
	b.req.StreamFormat = format
	return b
}

// Build validates and returns the wire request.
func (b *SpeechBuilder) Build() (SpeechRequest, error) {
	if strings.TrimSpace(b.req.Model) == "" {
		return SpeechRequest{}, &core.MissingFieldError{Field: "Model"}
	}
	if b.req.Input == "" {
		return SpeechRequest{}, &core.MissingFieldError{Field: "Speech input"}
	}
	if b.req.Voice == "" {
		return SpeechRequest{}, &core.MissingFieldError{Field: "Voice"}
	}
	if err := checkRange("Speech speed", b.req.Speed, 0.25, 4); err != nil {
		return SpeechRequest{}, err
	}
	return b.req, nil
}

// ChunkingStrategy controls how long audio is segmented for transcription.
type ChunkingStrategy string

const (
	ChunkingAuto ChunkingStrategy = "auto"
	ChunkingVAD  ChunkingStrategy = "server_vad"
)

// TranscriptionRequest is the wire form of a transcription request. File is
// sent as a multipart form part.
type TranscriptionRequest struct {
	File                   []byte           `json:"-"`
	Filename               string           `json:"-"`
	Model                  string           `json:"model"`
	Language               string           `json:"language,omitempty"`
	Prompt                 string           `json:"prompt,omitempty"`
	ResponseFormat         string           `json:"response_format,omitempty"`
	Temperature            *float64         `json:"temperature,omitempty"`
	Stream                 *bool            `json:"stream,omitempty"`
	ChunkingStrategy       ChunkingStrategy `json:"chunking_strategy,omitempty"`
	TimestampGranularities []string         `json:"timestamp_granularities,omitempty"`
	Include                []string         `json:"include,omitempty"`
}

// TranscriptionBuilder assembles a speech-to-text transcription request.
type TranscriptionBuilder struct {
	req TranscriptionRequest
}

// NewTranscription starts a transcription request from audio file bytes, the
// source filename, and a model.
func NewTranscription(file []byte, filename, model string) *TranscriptionBuilder {
	return &TranscriptionBuilder{req: TranscriptionRequest{File: file, Filename: filename, Model: model}}
}

var _ core.Builder[TranscriptionRequest] = (*TranscriptionBuilder)(nil)

// Language hints the source language as an ISO-639-1 code.
func (b *TranscriptionBuilder) Language(code string) *TranscriptionBuilder {
	b.req.Language = code
	return b
}

// Prompt biases the transcription toward expected vocabulary.
func (b *TranscriptionBuilder) Prompt(text string) *TranscriptionBuilder {
	b.req.Prompt = text
	return b
}

func (b *TranscriptionBuilder) ResponseFormat(format string) *TranscriptionBuilder {
	b.req.ResponseFormat = format
	return b
}

// Temperature sets sampling temperature, valid range 0.0 to 1.0.
func (b *TranscriptionBuilder) Temperature(v float64) *TranscriptionBuilder {
	b.req.Temperature = floatPtr(v)
	return b
}

func (b *TranscriptionBuilder) Stream(enabled bool) *TranscriptionBuilder {
	b.req.Stream = boolPtr(enabled)
	return b
}

// ChunkingStrategy selects segmentation; ClearChunkingStrategy reverts to
// the server default.
func (b *TranscriptionBuilder) ChunkingStrategy(strategy ChunkingStrategy) *TranscriptionBuilder {
	b.req.ChunkingStrategy = strategy
	return b
}

func (b *TranscriptionBuilder) ClearChunkingStrategy() *TranscriptionBuilder {
	b.req.ChunkingStrategy = ""
	return b
}

// TimestampGranularities requests word or segment timestamps. Duplicates
// are dropped, preserving first appearance.
func (b *TranscriptionBuilder) TimestampGranularities(granularities ...string) *TranscriptionBuilder {
	b.req.TimestampGranularities = appendUnique(b.req.TimestampGranularities, granularities)
	return b
}

// Include requests extra response fields. Duplicates are dropped.
func (b *TranscriptionBuilder) Include(fields ...string) *TranscriptionBuilder {
	b.req.Include = appendUnique(b.req.Include, fields)
	return b
}

// Build validates and returns the wire request.
func (b *TranscriptionBuilder) Build() (TranscriptionRequest, error) {
	if len(b.req.File) == 0 {
		return TranscriptionRequest{}, &core.MissingFieldError{Field: "Audio file"}
	}
	if strings.TrimSpace(b.req.Model) == "" {
		return TranscriptionRequest{}, &core.MissingFieldError{Field: "Model"}
	}
	if err := checkRange("temperature", b.req.Temperature, 0, 1); err != nil {
		return TranscriptionRequest{}, err
	}
	return b.req, nil
}

// TranslationRequest is the wire form of a translate-to-English request.
type TranslationRequest struct {
	File           []byte   `json:"-"`
	Filename       string   `json:"-"`
	Model          string   `json:"model"`
	Prompt         string   `json:"prompt,omitempty"`
	ResponseFormat string   `json:"response_format,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
}

// TranslationBuilder assembles an audio translation request.
type TranslationBuilder struct {
	req TranslationRequest
}

// NewTranslation starts a translation request from audio file bytes, the
// source filename, and a model.
func NewTranslation(file []byte, filename, model string) *TranslationBuilder {
	return &TranslationBuilder{req: TranslationRequest{File: file, Filename: filename, Model: model}}
}

var _ core.Builder[TranslationRequest] = (*TranslationBuilder)(nil)

func (b *TranslationBuilder) Prompt(text string) *TranslationBuilder {
	b.req.Prompt = text
	return b
}

func (b *TranslationBuilder) ResponseFormat(format string) *TranslationBuilder {
	b.req.ResponseFormat = format
	return b
}

// Temperature sets sampling temperature, valid range 0.0 to 1.0.
func (b *TranslationBuilder) Temperature(v float64) *TranslationBuilder {
	b.req.Temperature = floatPtr(v)
	return b
}

// Build validates and returns the wire request.
func (b *TranslationBuilder) Build() (TranslationRequest, error) {
	if len(b.req.File) == 0 {
		return TranslationRequest{}, &core.MissingFieldError{Field: "Audio file"}
	}
	if strings.TrimSpace(b.req.Model) == "" {
		return TranslationRequest{}, &core.MissingFieldError{Field: "Model"}
	}
	if err := checkRange("temperature", b.req.Temperature, 0, 1); err != nil {
		return TranslationRequest{}, err
	}
	return b.req, nil
}

func appendUnique(existing, incoming []string) []string {
	for _, v := range incoming {
		seen := false
		for _, have := range existing {
			if have == v {
				seen = true
				break
			}
		}
		if !seen {
			existing = append(existing, v)
		}
	}
	return existing
}
