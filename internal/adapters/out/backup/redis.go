package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"checkout/internal/core/domain/model/order"

	"github.com/go-redis/redis/v8"
)

const DefaultRedisKey = "checkout:orders:backup"

// ListPusher is the part of redis.Cmdable used for appending.
type ListPusher interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

type redisRecord struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	BackedUpAt time.Time `json:"backed_up_at"`
}

// RedisBackup appends a JSON record per order to a Redis list.
type RedisBackup struct {
	client ListPusher
	key    string
	logger *slog.Logger
}

func NewRedisBackup(client ListPusher, key string, logger *slog.Logger) *RedisBackup {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackup{client: client, key: key, logger: logger.With("component", "redis_backup")}
}

func (b *RedisBackup) Backup(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	record, err := json.Marshal(redisRecord{
		ID:         o.ID().String(),
		Email:      o.Email().String(),
		Status:     o.Status().String(),
		BackedUpAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	length, err := b.client.RPush(ctx, b.key, record).Result()
	if err != nil {
		return fmt.Errorf("push backup record: %w", err)
	}

	b.logger.DebugContext(ctx, "Backup record pushed", "order_id", o.ID().String(), "length", length)
	return nil
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
