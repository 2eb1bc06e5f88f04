package builders

import (
	"github.com/petrel-ai/petrel/core"
)

// ModelRef addresses a single model for retrieval or deletion. Deletion only
// applies to fine-tuned models the caller owns.
type ModelRef struct {
	ModelID string `json:"-"`
}

// NewModelRetrieval builds a reference for fetching model metadata.
func NewModelRetrieval(modelID string) (ModelRef, error) {
	return modelRef(modelID)
}

// NewModelDelete builds a reference for deleting a fine-tuned model.
func NewModelDelete(modelID string) (ModelRef, error) {
	return modelRef(modelID)
}

func modelRef(modelID string) (ModelRef, error) {
	if modelID == "" {
		return ModelRef{}, &core.MissingFieldError{Field: "Model id"}
	}
	return ModelRef{ModelID: modelID}, nil
}
