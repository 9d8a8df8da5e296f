package user

import (
	"time"

	"user-presence-api/internal/domain/user_status"
)

// View is the read model of a user joined with its presence.
type View struct {
	ID             UUID      `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfileImageID *UUID     `json:"profile_image_id"`
	Online         *bool     `json:"online"`
}

// ToView assembles the read model. A missing status leaves Online nil.
func ToView(u User, st *user_status.UserStatus, now time.Time, window time.Duration) View {
	v := View{
		ID:        u.ID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Username:  u.Username,
		Email:     u.Email,
	}
	if u.ProfileID != nil {
		id := *u.ProfileID
		v.ProfileImageID = &id
	}
	if st != nil {
		online := st.IsOnline(now, window)
		v.Online = &online
	}

	return v
}
