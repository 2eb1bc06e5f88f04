package builders

import (
	"encoding/json"

	"github.com/petrel-ai/petrel/core"
)

// VectorStoreExpiration expires a store after a period of inactivity.
type VectorStoreExpiration struct {
	Anchor string `json:"anchor"`
	Days   int    `json:"days"`
}

// VectorStoreRequest is the wire form of a vector store creation request.
type VectorStoreRequest struct {
	Name         string                 `json:"name,omitempty"`
	FileIDs      []string               `json:"file_ids,omitempty"`
	ExpiresAfter *VectorStoreExpiration `json:"expires_after,omitempty"`
	Metadata     *map[string]string     `json:"metadata,omitempty"`
}

// VectorStoreBuilder assembles a vector store creation request.
type VectorStoreBuilder struct {
	req      VectorStoreRequest
	metadata Metadata
}

// NewVectorStore starts a vector store creation request.
func NewVectorStore() *VectorStoreBuilder {
	return &VectorStoreBuilder{}
}

var _ core.Builder[VectorStoreRequest] = (*VectorStoreBuilder)(nil)

func (b *VectorStoreBuilder) Name(name string) *VectorStoreBuilder {
	b.req.Name = name
	return b
}

// FileIDs replaces the initial file list.
func (b *VectorStoreBuilder) FileIDs(fileIDs ...string) *VectorStoreBuilder {
	b.req.FileIDs = fileIDs
	return b
}

// AddFile appends one file id.
func (b *VectorStoreBuilder) AddFile(fileID string) *VectorStoreBuilder {
	b.req.FileIDs = append(b.req.FileIDs, fileID)
	return b
}

// ExpiresAfterDays expires the store after the given days without activity.
func (b *VectorStoreBuilder) ExpiresAfterDays(days int) *VectorStoreBuilder {
	b.req.ExpiresAfter = &VectorStoreExpiration{Anchor: "last_active_at", Days: days}
	return b
}

// Metadata upserts a metadata key.
func (b *VectorStoreBuilder) Metadata(key, value string) *VectorStoreBuilder {
	b.metadata.Set(key, value)
	return b
}

// Build returns the wire request. All fields are optional.
func (b *VectorStoreBuilder) Build() (VectorStoreRequest, error) {
	req := b.req
	req.Metadata = b.metadata.wire()
	return req, nil
}

// VectorStoreFileRequest attaches an uploaded file to a vector store.
type VectorStoreFileRequest struct {
	VectorStoreID string `json:"-"`
	FileID        string `json:"file_id"`
}

// VectorStoreFileBuilder assembles a file attachment request.
type VectorStoreFileBuilder struct {
	req VectorStoreFileRequest
}

// NewVectorStoreFile starts a file attachment request.
func NewVectorStoreFile(vectorStoreID, fileID string) *VectorStoreFileBuilder {
	return &VectorStoreFileBuilder{req: VectorStoreFileRequest{
		VectorStoreID: vectorStoreID, FileID: fileID,
	}}
}

var _ core.Builder[VectorStoreFileRequest] = (*VectorStoreFileBuilder)(nil)

// Build validates and returns the wire request.
func (b *VectorStoreFileBuilder) Build() (VectorStoreFileRequest, error) {
	if b.req.VectorStoreID == "" {
		return VectorStoreFileRequest{}, &core.MissingFieldError{Field: "Vector store id"}
	}
	if b.req.FileID == "" {
		return VectorStoreFileRequest{}, &core.MissingFieldError{Field: "File id"}
	}
	return b.req, nil
}

// VectorStoreSearchRequest is the wire form of a vector store search.
type VectorStoreSearchRequest struct {
	VectorStoreID string          `json:"-"`
	Query         string          `json:"query"`
	Limit         *int            `json:"max_num_results,omitempty"`
	Filter        json.RawMessage `json:"filters,omitempty"`
}

// VectorStoreSearchBuilder assembles a semantic search over a vector store.
type VectorStoreSearchBuilder struct {
	req VectorStoreSearchRequest
}

// NewVectorStoreSearch starts a search request.
func NewVectorStoreSearch(vectorStoreID, query string) *VectorStoreSearchBuilder {
	return &VectorStoreSearchBuilder{req: VectorStoreSearchRequest{
		VectorStoreID: vectorStoreID, Query: query,
	}}
}

var _ core.Builder[VectorStoreSearchRequest] = (*VectorStoreSearchBuilder)(nil)

// Limit caps the number of results.
func (b *VectorStoreSearchBuilder) Limit(n int) *VectorStoreSearchBuilder {
	b.req.Limit = intPtr(n)
	return b
}

// Filter applies a raw attribute filter expression.
func (b *VectorStoreSearchBuilder) Filter(filter json.RawMessage) *VectorStoreSearchBuilder {
	b.req.Filter = filter
	return b
}

// Build validates and returns the wire request.
func (b *VectorStoreSearchBuilder) Build() (VectorStoreSearchRequest, error) {
	if b.req.VectorStoreID == "" {
		return VectorStoreSearchRequest{}, &core.MissingFieldError{Field: "Vector store id"}
	}
	if b.req.Query == "" {
		return VectorStoreSearchRequest{}, &core.MissingFieldError{Field: "Query"}
	}
	return b.req, nil
}
