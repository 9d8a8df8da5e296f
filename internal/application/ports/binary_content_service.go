package ports

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"user-presence-api/internal/domain/binary_content"
)

// BinaryContentCreateRequest carries an upload whose body is read lazily
// through Open, so read failures surface as invalid payloads.
type BinaryContentCreateRequest struct {
	FileName    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// IsEmpty reports whether the request carries no content. A nil request is empty.
func (r *BinaryContentCreateRequest) IsEmpty() bool {
	return r == nil || r.Open == nil || r.Size <= 0
}

func NewBinaryContentRequest(fileName, contentType string, b []byte) *BinaryContentCreateRequest {
	return &BinaryContentCreateRequest{
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(b)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		},
	}
}

func BinaryContentRequestFromFileHeader(fh *multipart.FileHeader) *BinaryContentCreateRequest {
	if fh == nil {
		return nil
	}
	return &BinaryContentCreateRequest{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

type BinaryContentService interface {
	Create(ctx context.Context, req BinaryContentCreateRequest) (*binary_content.BinaryContent, error)
	Find(ctx context.Context, id uuid.UUID) (*binary_content.BinaryContent, error)
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) (binary_content.BinaryContents, error)
	FindMetadata(ctx context.Context, id uuid.UUID) (*binary_content.BinaryContent, error)
	FindAllMetadataByIDs(ctx context.Context, ids []uuid.UUID) (binary_content.BinaryContents, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
