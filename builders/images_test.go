package builders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrel-ai/petrel/core"
)

func TestImageGenerationBuild(t *testing.T) {
	req, err := NewImageGeneration("a lighthouse at dusk").
		Model("gpt-image-1").
		Size("1024x1024").
		Quality("high").
		Build()

	require.NoError(t, err)
	assert.Equal(t, "a lighthouse at dusk", req.Prompt)
	assert.Equal(t, "gpt-image-1", req.Model)
}

func TestImageGenerationRequiresPrompt(t *testing.T) {
	_, err := NewImageGeneration("").Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "Prompt")
}

func TestImageGenerationCountRange(t *testing.T) {
	cases := []struct {
		n     int
		valid bool
	}{
		{0, false}, {1, true}, {10, true}, {11, false},
	}
	for _, tc := range cases {
		_, err := NewImageGeneration("x").N(tc.n).Build()
		if tc.valid {
			assert.NoError(t, err, "n=%d", tc.n)
		} else {
			require.Error(t, err, "n=%d", tc.n)
			assert.Contains(t, err.Error(), "between 1.0 and 10.0")
		}
	}
}

func TestImageGenerationPartialImagesRange(t *testing.T) {
	_, err := NewImageGeneration("x").PartialImages(3).Build()
	assert.NoError(t, err)

	_, err = NewImageGeneration("x").PartialImages(4).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "partial_images")
}

func TestImageGenerationCompressionRange(t *testing.T) {
	_, err := NewImageGeneration("x").OutputCompression(100).Build()
	assert.NoError(t, err)

	_, err = NewImageGeneration("x").OutputCompression(101).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_compression")
}

func TestImageEditBuild(t *testing.T) {
	img := []byte{0x89, 0x50, 0x4e, 0x47}

	req, err := NewImageEdit(img, "replace sky with aurora").
		Mask([]byte{1, 2, 3}).
		InputFidelity("high").
		N(2).
		Build()
	require.NoError(t, err)
	assert.Equal(t, img, req.Image)
	assert.Equal(t, "high", req.InputFidelity)
}

func TestImageEditRequiresImageAndPrompt(t *testing.T) {
	_, err := NewImageEdit(nil, "prompt").Build()
	assert.Contains(t, err.Error(), "Image")

	_, err = NewImageEdit([]byte{1}, "").Build()
	assert.Contains(t, err.Error(), "Prompt")
}

func TestImageVariationBuild(t *testing.T) {
	_, err := NewImageVariation(nil).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Image")

	req, err := NewImageVariation([]byte{1}).N(4).Size("512x512").Build()
	require.NoError(t, err)
	assert.Equal(t, 4, *req.N)

	_, err = NewImageVariation([]byte{1}).N(11).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
}
