package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID           uuid.UUID
		Username     string
		Email        string
		PasswordHash string
		ProfileID    *uuid.UUID

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
