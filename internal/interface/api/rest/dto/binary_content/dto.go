package binary_content

import (
	"time"

	"github.com/google/uuid"

	"user-presence-api/internal/domain/binary_content"
)

type (
	BinaryContent struct {
		ID          uuid.UUID `json:"id"`
		FileName    string    `json:"file_name"`
		Size        int64     `json:"size"`
		ContentType string    `json:"content_type"`
		CreatedAt   time.Time `json:"created_at"`
	}
	BinaryContents []BinaryContent
	ResponseData   struct {
		Data BinaryContents `json:"data"`
	}
)

func ToResponseBinaryContent(c binary_content.BinaryContent) BinaryContent {
	return BinaryContent{
		ID:          c.ID,
		FileName:    c.FileName,
		Size:        c.Size,
		ContentType: c.ContentType,
		CreatedAt:   c.CreatedAt,
	}
}

func ToResponseBinaryContents(cs binary_content.BinaryContents) BinaryContents {
	out := make(BinaryContents, len(cs))
	for idx, c := range cs {
		out[idx] = ToResponseBinaryContent(*c)
	}

	return out
}
