package binary_content

import (
	"time"

	"github.com/google/uuid"
)

type (
	// BinaryContent is immutable once stored. Bytes live in object storage
	// under Bucket/StorageKey and are only populated on reads that need them.
	BinaryContent struct {
		ID          uuid.UUID
		FileName    string
		Size        int64
		ContentType string

		Bucket     string
		StorageKey string
		Bytes      []byte

		CreatedAt time.Time
	}
	BinaryContents []*BinaryContent
)
