package builders

import (
	"encoding/json"

	"github.com/petrel-ai/petrel/core"
)

// FilePurpose identifies why a file is being uploaded.
type FilePurpose string

const (
	PurposeFineTune   FilePurpose = "fine-tune"
	PurposeAssistants FilePurpose = "assistants"
	PurposeVision     FilePurpose = "vision"
	PurposeBatch      FilePurpose = "batch"
)

// FileUploadRequest is the wire form of a file upload. Content is sent as a
// multipart form part.
type FileUploadRequest struct {
	Filename string      `json:"-"`
	Purpose  FilePurpose `json:"purpose"`
	Content  []byte      `json:"-"`
}

// FileUploadBuilder assembles a file upload.
type FileUploadBuilder struct {
	req FileUploadRequest
}

// NewFileUpload starts a file upload from raw bytes.
func NewFileUpload(filename string, purpose FilePurpose, content []byte) *FileUploadBuilder {
	return &FileUploadBuilder{req: FileUploadRequest{
		Filename: filename, Purpose: purpose, Content: content,
	}}
}

// NewFileUploadText starts a file upload from string content.
func NewFileUploadText(filename string, purpose FilePurpose, content string) *FileUploadBuilder {
	return NewFileUpload(filename, purpose, []byte(content))
}

// NewFileUploadJSON starts a file upload by marshaling a value to JSON.
func NewFileUploadJSON(filename string, purpose FilePurpose, value any) (*FileUploadBuilder, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &core.InvalidRequestError{Message: "File content could not be encoded as JSON"}
	}
	return NewFileUpload(filename, purpose, data), nil
}

var _ core.Builder[FileUploadRequest] = (*FileUploadBuilder)(nil)

// Build validates and returns the wire request.
func (b *FileUploadBuilder) Build() (FileUploadRequest, error) {
	if b.req.Filename == "" {
		return FileUploadRequest{}, &core.MissingFieldError{Field: "Filename"}
	}
	if b.req.Purpose == "" {
		return FileUploadRequest{}, &core.MissingFieldError{Field: "Purpose"}
	}
	if len(b.req.Content) == 0 {
		return FileUploadRequest{}, &core.MissingFieldError{Field: "File content"}
	}
	return b.req, nil
}

// FileListRequest selects which files to list.
type FileListRequest struct {
	Purpose FilePurpose `json:"purpose,omitempty"`
	Limit   *int        `json:"limit,omitempty"`
	Order   string      `json:"order,omitempty"`
	After   string      `json:"after,omitempty"`
}

// FileListBuilder assembles a file listing request.
type FileListBuilder struct {
	req FileListRequest
}

// NewFileList starts a file listing request.
func NewFileList() *FileListBuilder {
	return &FileListBuilder{}
}

var _ core.Builder[FileListRequest] = (*FileListBuilder)(nil)

// Purpose filters the listing to one purpose.
func (b *FileListBuilder) Purpose(purpose FilePurpose) *FileListBuilder {
	b.req.Purpose = purpose
	return b
}

func (b *FileListBuilder) Limit(n int) *FileListBuilder {
	b.req.Limit = intPtr(n)
	return b
}

func (b *FileListBuilder) Order(order string) *FileListBuilder {
	b.req.Order = order
	return b
}

// After sets the pagination cursor.
func (b *FileListBuilder) After(fileID string) *FileListBuilder {
	b.req.After = fileID
	return b
}

func (b *FileListBuilder) Build() (FileListRequest, error) {
	return b.req, nil
}

// FileRef addresses a single stored file for retrieval or deletion.
type FileRef struct {
	FileID string `json:"-"`
}

// NewFileRetrieval builds a reference for fetching file metadata.
func NewFileRetrieval(fileID string) (FileRef, error) {
	return fileRef(fileID)
}

// NewFileDelete builds a reference for deleting a stored file.
func NewFileDelete(fileID string) (FileRef, error) {
	return fileRef(fileID)
}

func fileRef(fileID string) (FileRef, error) {
	if fileID == "" {
		return FileRef{}, &core.MissingFieldError{Field: "File id"}
	}
	return FileRef{FileID: fileID}, nil
}
