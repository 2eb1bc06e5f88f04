package builders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrel-ai/petrel/core"
)

func TestModerationBuild(t *testing.T) {
	req, err := NewModeration(ModerationText("some user content")).Build()
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":"some user content"}`, string(data))
}

func TestModerationTextArray(t *testing.T) {
	req, err := NewModeration(ModerationTexts("a", "b")).Model("omni-moderation-latest").Build()
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"input":["a","b"],"model":"omni-moderation-latest"}`, string(data))
}

func TestModerationRequiresInput(t *testing.T) {
	_, err := NewModeration(ModerationInput{}).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "input")
}

func TestModerationResultDecode(t *testing.T) {
	payload := `{
		"flagged": true,
		"categories": {"hate": false, "violence": true},
		"category_scores": {"hate": 0.01, "violence": 0.92}
	}`

	var result ModerationResult
	require.NoError(t, json.Unmarshal([]byte(payload), &result))
	assert.True(t, result.Flagged)
	assert.True(t, result.Categories.Violence)
	assert.InDelta(t, 0.92, result.Scores.Violence, 1e-9)
}
