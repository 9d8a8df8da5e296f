package binary_content

import (
	domain "user-presence-api/internal/domain/binary_content"
)

func fromDBModel(model *BinaryContent) *domain.BinaryContent {
	return &domain.BinaryContent{
		ID:          model.ID,
		FileName:    model.FileName,
		Size:        model.SizeBytes,
		ContentType: model.ContentType,
		Bucket:      model.Bucket,
		StorageKey:  model.StorageKey,

		CreatedAt: model.CreatedAt,
	}
}

func fromDBModels(models BinaryContents) domain.BinaryContents {
	cs := make(domain.BinaryContents, len(models))
	for idx, c := range models {
		cs[idx] = fromDBModel(c)
	}

	return cs
}
