// Package cache guarda en Redis los agregados de /stats hasta la próxima mutación.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Khata-api/internal/application/billing"
	"github.com/jhoicas/Khata-api/internal/application/dto"
	"github.com/jhoicas/Khata-api/internal/domain/entity"
	"github.com/jhoicas/Khata-api/pkg/config"
)

var _ billing.StatsCache = (*RedisStatsCache)(nil)

const (
	keyPrefix     = "khata:stats:"
	scanBatchSize = 100
)

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// RedisStatsCache implementa billing.StatsCache.
type RedisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache construye la cache; ttl <= 0 deja las entradas sin expiración.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStatsCache{client: client, ttl: ttl}
}

// Get lee los agregados; ok=false si no están.
func (c *RedisStatsCache) Get(ctx context.Context, key string) (*dto.PartyStatsResponse, bool, error) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	var stats dto.PartyStatsResponse
	if err := json.Unmarshal(raw, &stats); err != nil {
		// El llamador recalcula y el próximo Set sobreescribe la entrada.
		return nil, false, fmt.Errorf("redis: decode %s: %w", key, err)
	}
	return &stats, true, nil
}

// Set guarda los agregados con el TTL configurado.
func (c *RedisStatsCache) Set(ctx context.Context, key string, stats *dto.PartyStatsResponse) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("redis: encode stats: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// InvalidateShop borra todas las entradas de la tienda para ese tipo de parte.
func (c *RedisStatsCache) InvalidateShop(ctx context.Context, shopID string, kind entity.PartyKind) error {
	pattern := fmt.Sprintf("%s%s:%s:*", keyPrefix, shopID, kind)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis: scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis: del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
