package user_status

import (
	"time"

	"github.com/google/uuid"
)

// DefaultOnlineWindow is how long a user stays online after the last activity.
const DefaultOnlineWindow = 5 * time.Minute

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

func (s UserStatus) IsOnline(now time.Time, window time.Duration) bool {
	return now.Sub(s.LastActiveAt) <= window
}
