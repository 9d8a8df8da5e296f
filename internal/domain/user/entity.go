package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	User struct {
		ID           UUID
		Username     string
		Email        string
		PasswordHash string
		// ProfileID references a binary content owned by this user, nil when absent.
		ProfileID *UUID

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
