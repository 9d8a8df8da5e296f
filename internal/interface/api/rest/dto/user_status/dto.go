package user_status

import (
	"time"

	"github.com/google/uuid"

	"user-presence-api/internal/domain/user_status"
)

type (
	UpdateRequest struct {
		LastActiveAt time.Time `json:"last_active_at" validate:"required"`
	}
	UserStatus struct {
		ID           uuid.UUID `json:"id"`
		UserID       uuid.UUID `json:"user_id"`
		LastActiveAt time.Time `json:"last_active_at"`
		Online       bool      `json:"online"`
		CreatedAt    time.Time `json:"created_at"`
		UpdatedAt    time.Time `json:"updated_at"`
	}
	UserStatuses []UserStatus
	ResponseData struct {
		Data UserStatuses `json:"data"`
	}
)

func ToResponseUserStatus(s user_status.UserStatus, online bool) UserStatus {
	return UserStatus{
		ID:           s.ID,
		UserID:       s.UserID,
		LastActiveAt: s.LastActiveAt,
		Online:       online,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func ToResponseUserStatuses(ss user_status.UserStatuses, isOnline func(user_status.UserStatus) bool) UserStatuses {
	out := make(UserStatuses, len(ss))
	for idx, s := range ss {
		out[idx] = ToResponseUserStatus(*s, isOnline(*s))
	}

	return out
}
