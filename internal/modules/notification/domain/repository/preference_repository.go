package repository

import (
	"context"
	"errors"

	"AeroComply/internal/modules/notification/domain/entity"
)

var ErrPreferenceNotFound = errors.New("notification preference not found")

type PreferenceRepository interface {
	// Get 不存在时返回 ErrPreferenceNotFound
	Get(ctx context.Context, userID string) (*entity.NotificationPreferences, error)
	// Save 整行写入（插入或覆盖）
	Save(ctx context.Context, prefs *entity.NotificationPreferences) error
}
