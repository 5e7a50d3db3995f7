package persistence

import (
	"context"
	"errors"

	"AeroComply/internal/modules/notification/domain/entity"
	"AeroComply/internal/modules/notification/domain/repository"

	"gorm.io/gorm"
)

type preferenceRepositoryImpl struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) repository.PreferenceRepository {
	return &preferenceRepositoryImpl{db: db}
}

func (r *preferenceRepositoryImpl) Get(ctx context.Context, userID string) (*entity.NotificationPreferences, error) {
	var prefs entity.NotificationPreferences
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPreferenceNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

// Save 主键存在时全字段更新，零值布尔同样写入
func (r *preferenceRepositoryImpl) Save(ctx context.Context, prefs *entity.NotificationPreferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}
