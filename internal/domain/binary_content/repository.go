package binary_content

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, c BinaryContent) (*BinaryContent, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BinaryContent, error)
	FindAllByIDIn(ctx context.Context, ids []uuid.UUID) (BinaryContents, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
