package initial

import (
	"context"
	"time"

	"AeroComply/internal/config"
	"AeroComply/pkg/redis"
	"AeroComply/pkg/zlog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedis 未配置主机或连接失败时返回未连接的 Client，调用方按无缓存运行
func NewRedis(conf *config.Config) *redis.Client {
	host := conf.RedisConfig.Host
	if host == "" {
		zlog.Info("redis not configured, preference cache disabled")
		return redis.NewClient(nil)
	}

	addr := redis.Addr(host, conf.RedisConfig.Port)
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     conf.RedisConfig.Password,
		DB:           conf.RedisConfig.DB,
		PoolSize:     conf.RedisConfig.PoolSize,
		MinIdleConns: conf.RedisConfig.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zlog.Error("redis connect failed, preference cache disabled", zap.String("addr", addr), zap.Error(err))
		_ = rdb.Close()
		return redis.NewClient(nil)
	}
	zlog.Info("redis connected", zap.String("addr", addr))
	return redis.NewClient(rdb)
}
