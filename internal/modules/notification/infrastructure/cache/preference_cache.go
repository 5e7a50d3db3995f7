package cache

import (
	"context"
	"encoding/json"
	"time"

	"AeroComply/internal/modules/notification/domain/entity"
	"AeroComply/internal/modules/notification/domain/repository"
	"AeroComply/pkg/redis"
	"AeroComply/pkg/zlog"

	"go.uber.org/zap"
)

const keyPrefix = "aerocomply:notification_preference"

// KV 缓存所需的最小操作集，*redis.Client 满足该接口
type KV interface {
	IsConnected() bool
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) (int64, error)
}

// PreferenceCache 偏好读穿缓存，写入后删除缓存键。
// Redis 不可用时直接访问下层仓储，缓存错误从不向上返回
type PreferenceCache struct {
	next repository.PreferenceRepository
	kv   KV
	ttl  time.Duration
}

func NewPreferenceCache(next repository.PreferenceRepository, kv KV, ttl time.Duration) repository.PreferenceRepository {
	if kv == nil || !kv.IsConnected() {
		return next
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &PreferenceCache{next: next, kv: kv, ttl: ttl}
}

func cacheKey(userID string) string {
	return redis.Key(keyPrefix, userID)
}

func (c *PreferenceCache) Get(ctx context.Context, userID string) (*entity.NotificationPreferences, error) {
	key := cacheKey(userID)
	if raw, err := c.kv.Get(ctx, key); err == nil {
		var prefs entity.NotificationPreferences
		if jsonErr := json.Unmarshal([]byte(raw), &prefs); jsonErr == nil {
			return &prefs, nil
		}
		zlog.Warn("preference cache entry corrupt", zap.String("user_id", userID))
	} else if !redis.IsNil(err) {
		zlog.Warn("preference cache read failed", zap.String("user_id", userID), zap.Error(err))
	}

	prefs, err := c.next.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if body, err := json.Marshal(prefs); err == nil {
		if err := c.kv.Set(ctx, key, body, c.ttl); err != nil {
			zlog.Warn("preference cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return prefs, nil
}

func (c *PreferenceCache) Save(ctx context.Context, prefs *entity.NotificationPreferences) error {
	if err := c.next.Save(ctx, prefs); err != nil {
		return err
	}
	if _, err := c.kv.Del(ctx, cacheKey(prefs.UserID)); err != nil {
		zlog.Warn("preference cache invalidate failed", zap.String("user_id", prefs.UserID), zap.Error(err))
	}
	return nil
}
