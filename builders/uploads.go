package builders

import (
	"github.com/petrel-ai/petrel/core"
)

// ExpiresAfter schedules server-side expiry for an upload, anchored to its
// creation time.
type ExpiresAfter struct {
	Anchor  string `json:"anchor"`
	Seconds int64  `json:"seconds"`
}

// UploadRequest is the wire form of a multipart upload registration.
type UploadRequest struct {
	Filename     string        `json:"filename"`
	Purpose      string        `json:"purpose"`
	Bytes        int64         `json:"bytes"`
	MimeType     string        `json:"mime_type"`
	ExpiresAfter *ExpiresAfter `json:"expires_after,omitempty"`
}

// UploadBuilder assembles an upload registration for a large file that will
// be sent in parts.
type UploadBuilder struct {
	req UploadRequest
}

// NewUpload starts an upload registration.
func NewUpload(filename, purpose string, size int64, mimeType string) *UploadBuilder {
	return &UploadBuilder{req: UploadRequest{
		Filename: filename,
		Purpose:  purpose,
		Bytes:    size,
		MimeType: mimeType,
	}}
}

var _ core.Builder[UploadRequest] = (*UploadBuilder)(nil)

// ExpiresAfterSeconds schedules expiry relative to upload creation, valid
// range 3600 to 2592000 seconds (one hour to thirty days).
func (b *UploadBuilder) ExpiresAfterSeconds(seconds int64) *UploadBuilder {
	b.req.ExpiresAfter = &ExpiresAfter{Anchor: "created_at", Seconds: seconds}
	return b
}

// Build validates and returns the wire request.
func (b *UploadBuilder) Build() (UploadRequest, error) {
	if b.req.Filename == "" {
		return UploadRequest{}, &core.MissingFieldError{Field: "Filename"}
	}
	if b.req.Purpose == "" {
		return UploadRequest{}, &core.MissingFieldError{Field: "Purpose"}
	}
	if b.req.Bytes <= 0 {
		return UploadRequest{}, &core.NotPositiveError{Field: "Upload byte size", Actual: int(b.req.Bytes)}
	}
	if b.req.MimeType == "" {
		return UploadRequest{}, &core.MissingFieldError{Field: "MIME type"}
	}
	if ea := b.req.ExpiresAfter; ea != nil {
		if ea.Seconds < 3600 || ea.Seconds > 2592000 {
			return UploadRequest{}, &core.OutOfRangeError{
				Field: "Expiration seconds", Min: 3600, Max: 2592000, Actual: float64(ea.Seconds),
			}
		}
	}
	return b.req, nil
}

// CompleteUploadRequest is the wire form of an upload completion, listing
// the part ids in the order their bytes appear in the final file.
type CompleteUploadRequest struct {
	UploadID string   `json:"-"`
	PartIDs  []string `json:"part_ids"`
	MD5      string   `json:"md5,omitempty"`
}

// CompleteUploadBuilder assembles the completion call for a registered
// upload.
type CompleteUploadBuilder struct {
	req CompleteUploadRequest
}

// NewCompleteUpload starts a completion request for the given upload.
func NewCompleteUpload(uploadID string) *CompleteUploadBuilder {
	return &CompleteUploadBuilder{req: CompleteUploadRequest{UploadID: uploadID}}
}

var _ core.Builder[CompleteUploadRequest] = (*CompleteUploadBuilder)(nil)

// PartID appends one part id. Order matters: parts are concatenated in the
// order given.
func (b *CompleteUploadBuilder) PartID(id string) *CompleteUploadBuilder {
	b.req.PartIDs = append(b.req.PartIDs, id)
	return b
}

// PartIDs appends multiple part ids in order.
func (b *CompleteUploadBuilder) PartIDs(ids ...string) *CompleteUploadBuilder {
	b.req.PartIDs = append(b.req.PartIDs, ids...)
	return b
}

// MD5 supplies a checksum the server verifies against the assembled file.
func (b *CompleteUploadBuilder) MD5(checksum string) *CompleteUploadBuilder {
	b.req.MD5 = checksum
	return b
}

// Build validates and returns the wire request.
func (b *CompleteUploadBuilder) Build() (CompleteUploadRequest, error) {
	if b.req.UploadID == "" {
		return CompleteUploadRequest{}, &core.MissingFieldError{Field: "Upload id"}
	}
	if len(b.req.PartIDs) == 0 {
		return CompleteUploadRequest{}, &core.EmptyCollectionError{Collection: "part id"}
	}
	return b.req, nil
}
