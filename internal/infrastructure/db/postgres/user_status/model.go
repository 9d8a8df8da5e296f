package user_status

import (
	"time"

	"github.com/google/uuid"
)

type (
	UserStatus struct {
		ID           uuid.UUID
		UserID       uuid.UUID
		LastActiveAt time.Time

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	UserStatuses []*UserStatus
)
