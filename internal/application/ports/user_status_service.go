package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"user-presence-api/internal/domain/user_status"
)

type UserStatusService interface {
	Create(ctx context.Context, userID uuid.UUID, lastActiveAt time.Time) (*user_status.UserStatus, error)
	Find(ctx context.Context, id uuid.UUID) (*user_status.UserStatus, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*user_status.UserStatus, error)
	FindAll(ctx context.Context) (user_status.UserStatuses, error)
	Update(ctx context.Context, id uuid.UUID, lastActiveAt time.Time) (*user_status.UserStatus, error)
	UpdateByUserID(ctx context.Context, userID uuid.UUID, lastActiveAt time.Time) (*user_status.UserStatus, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	IsOnline(s user_status.UserStatus) bool
}
