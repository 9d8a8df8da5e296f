package user_status

import (
	domain "user-presence-api/internal/domain/user_status"
)

func fromDBModel(model *UserStatus) *domain.UserStatus {
	return &domain.UserStatus{
		ID:           model.ID,
		UserID:       model.UserID,
		LastActiveAt: model.LastActiveAt,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func fromDBModels(models UserStatuses) domain.UserStatuses {
	ss := make(domain.UserStatuses, len(models))
	for idx, s := range models {
		ss[idx] = fromDBModel(s)
	}

	return ss
}
