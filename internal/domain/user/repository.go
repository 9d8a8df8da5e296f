package user

import (
	"context"
)

// Repository returns (nil, nil) from the Find* methods when no row matches.
type Repository interface {
	Save(ctx context.Context, u User) (*User, error)
	FindByID(ctx context.Context, id UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) (Users, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	DeleteByID(ctx context.Context, id UUID) error
}
