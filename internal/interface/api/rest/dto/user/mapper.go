package user

import (
	"user-presence-api/internal/application/ports"
	"user-presence-api/internal/domain/user"
)

func ToResponseUser(v user.View) User {
	return User{
		ID:             v.ID,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		Username:       v.Username,
		Email:          v.Email,
		ProfileImageID: v.ProfileImageID,
		Online:         v.Online,
	}
}

func ToResponseUsers(vs []user.View) Users {
	us := make(Users, len(vs))
	for idx, v := range vs {
		us[idx] = ToResponseUser(v)
	}

	return us
}

func ToCreateRequest(req CreateRequest, profile *ports.BinaryContentCreateRequest) ports.UserCreateRequest {
	return ports.UserCreateRequest{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		ProfileImage: profile,
	}
}

func ToUpdateRequest(req UpdateRequest, profile *ports.BinaryContentCreateRequest) ports.UserUpdateRequest {
	return ports.UserUpdateRequest{
		NewUsername:     req.Username,
		NewEmail:        req.Email,
		NewPassword:     req.Password,
		NewProfileImage: profile,
	}
}
