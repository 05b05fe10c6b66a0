package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// SetClient 设置 Redis 客户端（由 internal/initial 调用）
func SetClient(c *redis.Client) {
	client = c
}

// Close 关闭 Redis 连接
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// IsConnected 检查 Redis 是否已连接
func IsConnected() bool {
	return client != nil
}

// GetClient 获取原始 Redis 客户端（高级用法）
func GetClient() *redis.Client {
	return client
}

// checkClient 检查客户端是否可用
func checkClient() error {
	if client == nil {
		return fmt.Errorf("redis not connected")
	}
	return nil
}

// ==================== Pub/Sub ====================

// Publish 向频道发布消息，返回收到消息的订阅者数量
func Publish(ctx context.Context, channel string, message interface{}) (int64, error) {
	if err := checkClient(); err != nil {
		return 0, err
	}
	return client.Publish(ctx, channel, message).Result()
}

// Subscribe 订阅频道，调用方负责 Close
func Subscribe(ctx context.Context, channels ...string) (*redis.PubSub, error) {
	if err := checkClient(); err != nil {
		return nil, err
	}
	return client.Subscribe(ctx, channels...), nil
}
