package ports

import (
	"context"

	"user-presence-api/internal/domain/user"
)

type (
	UserCreateRequest struct {
		Username     string
		Email        string
		Password     string
		ProfileImage *BinaryContentCreateRequest
	}
	// UserUpdateRequest leaves a field untouched when it is empty.
	UserUpdateRequest struct {
		NewUsername     string
		NewEmail        string
		NewPassword     string
		NewProfileImage *BinaryContentCreateRequest
	}
)

type UserService interface {
	Create(ctx context.Context, req UserCreateRequest) (*user.View, error)
	Find(ctx context.Context, id user.UUID) (*user.View, error)
	FindAll(ctx context.Context) ([]user.View, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	Update(ctx context.Context, id user.UUID, req UserUpdateRequest) (*user.View, error)
	Delete(ctx context.Context, id user.UUID) error
}
