package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID             uuid.UUID  `json:"id"`
		CreatedAt      time.Time  `json:"created_at"`
		UpdatedAt      time.Time  `json:"updated_at"`
		Username       string     `json:"username"`
		Email          string     `json:"email"`
		ProfileImageID *uuid.UUID `json:"profile_image_id"`
		Online         *bool      `json:"online"`
	}
	Users        []User
	ResponseData struct {
		Data Users `json:"data"`
	}
)
