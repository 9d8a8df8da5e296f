package binary_content

import (
	"time"

	"github.com/google/uuid"
)

type (
	BinaryContent struct {
		ID          uuid.UUID
		FileName    string
		SizeBytes   int64
		ContentType string
		Bucket      string
		StorageKey  string

		CreatedAt time.Time
	}
	BinaryContents []*BinaryContent
)
