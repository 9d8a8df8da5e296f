package user_status

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, s UserStatus) (*UserStatus, error)
	FindByID(ctx context.Context, id uuid.UUID) (*UserStatus, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*UserStatus, error)
	FindAll(ctx context.Context) (UserStatuses, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
