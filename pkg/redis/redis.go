package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConnected 未配置或未连接 Redis
var ErrNotConnected = errors.New("redis 未连接")

// IsNil key 不存在
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Client go-redis 客户端的 nil 安全封装，未连接时所有操作返回 ErrNotConnected
type Client struct {
	rdb *redis.Client
}

// NewClient rdb 允许为 nil，表示 Redis 未启用
func NewClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

// IsConnected 是否有可用连接
func (c *Client) IsConnected() bool {
	return c != nil && c.rdb != nil
}

// Raw 原始客户端（高级用法）
func (c *Client) Raw() *redis.Client {
	if c == nil {
		return nil
	}
	return c.rdb
}

func (c *Client) check() error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if !c.IsConnected() {
		return nil
	}
	return c.rdb.Close()
}

// Get 获取字符串值，key 不存在时 IsNil(err) 为 true
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if err := c.check(); err != nil {
		return "", err
	}
	return c.rdb.Get(ctx, key).Result()
}

// Set 设置字符串值
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// Del 删除 key
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	return c.rdb.Del(ctx, keys...).Result()
}

// Key 以冒号拼接键名
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Addr host:port
func Addr(host string, port int) string {
	if port == 0 {
		port = 6379
	}
	return fmt.Sprintf("%s:%d", host, port)
}
