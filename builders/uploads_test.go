package builders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrel-ai/petrel/core"
)

func TestUploadBuild(t *testing.T) {
	req, err := NewUpload("weights.bin", "fine-tune", 1<<20, "application/octet-stream").Build()
	require.NoError(t, err)
	assert.Equal(t, int64(1<<20), req.Bytes)
	assert.Nil(t, req.ExpiresAfter)
}

func TestUploadBytesMustBePositive(t *testing.T) {
	_, err := NewUpload("f.bin", "fine-tune", 0, "application/octet-stream").Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "byte size must be positive")
}

func TestUploadRequiredFields(t *testing.T) {
	_, err := NewUpload("", "fine-tune", 1, "m").Build()
	assert.Contains(t, err.Error(), "Filename")

	_, err = NewUpload("f", "", 1, "m").Build()
	assert.Contains(t, err.Error(), "Purpose")

	_, err = NewUpload("f", "fine-tune", 1, "").Build()
	assert.Contains(t, err.Error(), "MIME type")
}

func TestUploadExpirationRange(t *testing.T) {
	cases := []struct {
		seconds int64
		valid   bool
	}{
		{3599, false}, {3600, true}, {2592000, true}, {2592001, false},
	}
	for _, tc := range cases {
		_, err := NewUpload("f.bin", "fine-tune", 1, "m").
			ExpiresAfterSeconds(tc.seconds).
			Build()
		if tc.valid {
			assert.NoError(t, err, "seconds=%d", tc.seconds)
		} else {
			require.Error(t, err, "seconds=%d", tc.seconds)
			assert.Contains(t, err.Error(), "Expiration seconds")
		}
	}
}

func TestUploadExpirationAnchor(t *testing.T) {
	req, err := NewUpload("f.bin", "fine-tune", 1, "m").ExpiresAfterSeconds(7200).Build()
	require.NoError(t, err)
	require.NotNil(t, req.ExpiresAfter)
	assert.Equal(t, "created_at", req.ExpiresAfter.Anchor)
	assert.Equal(t, int64(7200), req.ExpiresAfter.Seconds)
}

func TestCompleteUploadBuild(t *testing.T) {
	req, err := NewCompleteUpload("upload_1").
		PartIDs("part_1", "part_2").
		PartID("part_3").
		MD5("d41d8cd98f00b204e9800998ecf8427e").
		Build()

	require.NoError(t, err)
	assert.Equal(t, []string{"part_1", "part_2", "part_3"}, req.PartIDs)
}

func TestCompleteUploadRequiresParts(t *testing.T) {
	_, err := NewCompleteUpload("upload_1").Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "part id")
}

func TestCompleteUploadRequiresUploadID(t *testing.T) {
	_, err := NewCompleteUpload("").PartID("part_1").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Upload id")
}
