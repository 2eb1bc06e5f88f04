package builders

import (
	"strings"

	"github.com/petrel-ai/petrel/core"
)

// ImageGenerationRequest is the wire form of an image generation request.
type ImageGenerationRequest struct {
	Prompt            string `json:"prompt"`
	Model             string `json:"model,omitempty"`
	N                 *int   `json:"n,omitempty"`
	Quality           string `json:"quality,omitempty"`
	ResponseFormat    string `json:"response_format,omitempty"`
	OutputFormat      string `json:"output_format,omitempty"`
	OutputCompression *int   `json:"output_compression,omitempty"`
	Stream            *bool  `json:"stream,omitempty"`
	PartialImages     *int   `json:"partial_images,omitempty"`
	Size              string `json:"size,omitempty"`
	Moderation        string `json:"moderation,omitempty"`
	Background        string `json:"background,omitempty"`
	Style             string `json:"style,omitempty"`
	User              string `json:"user,omitempty"`
}

// ImageGenerationBuilder assembles an image generation request.
type ImageGenerationBuilder struct {
	req ImageGenerationRequest
}

// NewImageGeneration starts an image generation request from a prompt.
func NewImageGeneration(prompt string) *ImageGenerationBuilder {
	return &ImageGenerationBuilder{req: ImageGenerationRequest{Prompt: prompt}}
}

var _ core.Builder[ImageGenerationRequest] = (*ImageGenerationBuilder)(nil)

func (b *ImageGenerationBuilder) Model(model string) *ImageGenerationBuilder {
	b.req.Model = model
	return b
}

// N sets how many images to generate, valid range 1 to 10.
func (b *ImageGenerationBuilder) N(n int) *ImageGenerationBuilder {
	b.req.N = intPtr(n)
	return b
}

func (b *ImageGenerationBuilder) Quality(quality string) *ImageGenerationBuilder {
	b.req.Quality = quality
	return b
}

func (b *ImageGenerationBuilder) ResponseFormat(format string) *ImageGenerationBuilder {
	b.req.ResponseFormat = format
	return b
}

func (b *ImageGenerationBuilder) OutputFormat(format string) *ImageGenerationBuilder {
	b.req.OutputFormat = format
	return b
}

// OutputCompression sets compression level for webp and jpeg output, valid
// range 0 to 100.
func (b *ImageGenerationBuilder) OutputCompression(level int) *ImageGenerationBuilder {
	b.req.OutputCompression = intPtr(level)
	return b
}

func (b *ImageGenerationBuilder) Stream(enabled bool) *ImageGenerationBuilder {
	b.req.Stream = boolPtr(enabled)
	return b
}

// PartialImages sets how many partial images to stream, valid range 0 to 3.
func (b *ImageGenerationBuilder) PartialImages(n int) *ImageGenerationBuilder {
	b.req.PartialImages = intPtr(n)
	return b
}

func (b *ImageGenerationBuilder) Size(size string) *ImageGenerationBuilder {
	b.req.Size = size
	return b
}

func (b *ImageGenerationBuilder) Moderation(level string) *ImageGenerationBuilder {
	b.req.Moderation = level
	return b
}

func (b *ImageGenerationBuilder) Background(background string) *ImageGenerationBuilder {
	b.req.Background = background
	return b
}

func (b *ImageGenerationBuilder) Style(style string) *ImageGenerationBuilder {
	b.req.Style = style
	return b
}

func (b *ImageGenerationBuilder) EndUser(id string) *ImageGenerationBuilder {
	b.req.User = id
	return b
}

// Build validates and returns the wire request.
func (b *ImageGenerationBuilder) Build() (ImageGenerationRequest, error) {
	if strings.TrimSpace(b.req.Prompt) == "" {
		return ImageGenerationRequest{}, &core.MissingFieldError{Field: "Prompt"}
	}
	if err := checkIntRange("Image generation n", b.req.N, 1, 10); err != nil {
		return ImageGenerationRequest{}, err
	}
	if err := checkIntRange("partial_images", b.req.PartialImages, 0, 3); err != nil {
		return ImageGenerationRequest{}, err
	}
	if err := checkIntRange("output_compression", b.req.OutputCompression, 0, 100); err != nil {
		return ImageGenerationRequest{}, err
	}
	return b.req, nil
}

// ImageEditRequest is the wire form of an image edit request. Image and
// Mask are raw file bytes sent as multipart form parts.
type ImageEditRequest struct {
	Image             []byte `json:"-"`
	Mask              []byte `json:"-"`
	Prompt            string `json:"prompt"`
	Model             string `json:"model,omitempty"`
	N                 *int   `json:"n,omitempty"`
	Quality           string `json:"quality,omitempty"`
	InputFidelity     string `json:"input_fidelity,omitempty"`
	ResponseFormat    string `json:"response_format,omitempty"`
	OutputFormat      string `json:"output_format,omitempty"`
	OutputCompression *int   `json:"output_compression,omitempty"`
	Size              string `json:"size,omitempty"`
	User              string `json:"user,omitempty"`
}

// ImageEditBuilder assembles an image edit request.
type ImageEditBuilder struct {
	req ImageEditRequest
}

// NewImageEdit starts an image edit request from source image bytes and a
// prompt.
func NewImageEdit(image []byte, prompt string) *ImageEditBuilder {
	return &ImageEditBuilder{req: ImageEditRequest{Image: image, Prompt: prompt}}
}

var _ core.Builder[ImageEditRequest] = (*ImageEditBuilder)(nil)

// Mask supplies an alpha mask constraining which regions may change.
func (b *ImageEditBuilder) Mask(mask []byte) *ImageEditBuilder {
	b.req.Mask = mask
	return b
}

func (b *ImageEditBuilder) Model(model string) *ImageEditBuilder {
	b.req.Model = model
	return b
}

// N sets how many edited images to generate, valid range 1 to 10.
func (b *ImageEditBuilder) N(n int) *ImageEditBuilder {
	b.req.N = intPtr(n)
	return b
}

func (b *ImageEditBuilder) Quality(quality string) *ImageEditBuilder {
	b.req.Quality = quality
	return b
}

func (b *ImageEditBuilder) InputFidelity(fidelity string) *ImageEditBuilder {
	b.req.InputFidelity = fidelity
	return b
}

func (b *ImageEditBuilder) ResponseFormat(format string) *ImageEditBuilder {
	b.req.ResponseFormat = format
	return b
}

func (b *ImageEditBuilder) OutputFormat(format string) *ImageEditBuilder {
	b.req.OutputFormat = format
	return b
}

// OutputCompression sets compression level, valid range 0 to 100.
func (b *ImageEditBuilder) OutputCompression(level int) *ImageEditBuilder {
	b.req.OutputCompression = intPtr(level)
	return b
}

func (b *ImageEditBuilder) Size(size string) *ImageEditBuilder {
	b.req.Size = size
	return b
}

func (b *ImageEditBuilder) EndUser(id string) *ImageEditBuilder {
	b.req.User = id
	return b
}

// Build validates and returns the wire request.
func (b *ImageEditBuilder) Build() (ImageEditRequest, error) {
	if len(b.req.Image) == 0 {
		return ImageEditRequest{}, &core.MissingFieldError{Field: "Image"}
	}
	if strings.TrimSpace(b.req.Prompt) == "" {
		return ImageEditRequest{}, &core.MissingFieldError{Field: "Prompt"}
	}
	if err := checkIntRange("Image edit n", b.req.N, 1, 10); err != nil {
		return ImageEditRequest{}, err
	}
	if err := checkIntRange("output_compression", b.req.OutputCompression, 0, 100); err != nil {
		return ImageEditRequest{}, err
	}
	return b.req, nil
}

// ImageVariationRequest is the wire form of an image variation request.
type ImageVariationRequest struct {
	Image          []byte `json:"-"`
	Model          string `json:"model,omitempty"`
	N              *int   `json:"n,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
	Size           string `json:"size,omitempty"`
	User           string `json:"user,omitempty"`
}

// ImageVariationBuilder assembles an image variation request.
type ImageVariationBuilder struct {
	req ImageVariationRequest
}

// NewImageVariation starts an image variation request from source image
// bytes.
func NewImageVariation(image []byte) *ImageVariationBuilder {
	return &ImageVariationBuilder{req: ImageVariationRequest{Image: image}}
}

var _ core.Builder[ImageVariationRequest] = (*ImageVariationBuilder)(nil)

func (b *ImageVariationBuilder) Model(model string) *ImageVariationBuilder {
	b.req.Model = model
	return b
}

// N sets how many variations to generate, valid range 1 to 10.
func (b *ImageVariationBuilder) N(n int) *ImageVariationBuilder {
	b.req.N = intPtr(n)
	return b
}

func (b *ImageVariationBuilder) ResponseFormat(format string) *ImageVariationBuilder {
	b.req.ResponseFormat = format
	return b
}

func (b *ImageVariationBuilder) Size(size string) *ImageVariationBuilder {
	b.req.Size = size
	return b
}

func (b *ImageVariationBuilder) EndUser(id string) *ImageVariationBuilder {
	b.req.User = id
	return b
}

// Build validates and returns the wire request.
func (b *ImageVariationBuilder) Build() (ImageVariationRequest, error) {
	if len(b.req.Image) == 0 {
		return ImageVariationRequest{}, &core.MissingFieldError{Field: "Image"}
	}
	if err := checkIntRange("Image variation n", b.req.N, 1, 10); err != nil {
		return ImageVariationRequest{}, err
	}
	return b.req, nil
}
