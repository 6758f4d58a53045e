package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/config"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/logging"
	"github.com/tm-acme-shop/acme-shop-burger-orders/internal/models"
)

const (
	lastOrderKey    = "burger:last_order"
	defaultCacheTTL = time.Hour
)

// RedisOrderCache mirrors the last assembled order in Redis.
type RedisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

// NewRedisOrderCache creates a new Redis-based order cache.
func NewRedisOrderCache(cfg config.RedisConfig, logger logrus.FieldLogger) *RedisOrderCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisOrderCacheWithClient(client, cfg.TTL, logger)
}

// NewRedisOrderCacheWithClient wraps an existing client.
func NewRedisOrderCacheWithClient(client *redis.Client, ttl time.Duration, logger logrus.FieldLogger) *RedisOrderCache {
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	return &RedisOrderCache{
		client: client,
		ttl:    ttl,
		logger: logging.Component(logger, "order-cache"),
	}
}

// SetLast stores order as the last assembled order.
func (c *RedisOrderCache) SetLast(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, lastOrderKey, data, c.ttl).Err(); err != nil {
		c.logger.WithFields(logging.Fields{
			"order_id": order.ID,
			"error":    err.Error(),
		}).Debug("Cache set error")
		return err
	}

	c.logger.WithFields(logging.Fields{
		"order_id": order.ID,
		"ttl":      c.ttl.String(),
	}).Debug("Order cached")
	return nil
}

// GetLast returns the cached order, or nil on a cache miss.
func (c *RedisOrderCache) GetLast(ctx context.Context) (*models.Order, error) {
	data, err := c.client.Get(ctx, lastOrderKey).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Cache miss")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *RedisOrderCache) Close() error {
	return c.client.Close()
}

// MemoryOrderCache keeps the last order in process memory. Used when Redis
// caching is disabled.
type MemoryOrderCache struct {
	last *models.Order
}

func NewMemoryOrderCache() *MemoryOrderCache {
	return &MemoryOrderCache{}
}

func (c *MemoryOrderCache) SetLast(ctx context.Context, order *models.Order) error {
	c.last = order
	return nil
}

func (c *MemoryOrderCache) GetLast(ctx context.Context) (*models.Order, error) {
	return c.last, nil
}
