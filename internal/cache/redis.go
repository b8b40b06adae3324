package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Domenick1991/cinemabooking/config"
	"github.com/Domenick1991/cinemabooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client        *redis.Client
	screeningsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, screeningsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:        redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		screeningsTTL: screeningsTTL,
	}
}

func (c *RedisCache) GetScreenings(ctx context.Context) ([]domain.Screening, error) {
	data, err := c.client.Get(ctx, screeningsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var screenings []domain.Screening
	if err := json.Unmarshal(data, &screenings); err != nil {
		return nil, err
	}
	return screenings, nil
}

func (c *RedisCache) SetScreenings(ctx context.Context, screenings []domain.Screening) error {
	payload, err := json.Marshal(screenings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, screeningsKey(), payload, c.screeningsTTL).Err()
}

func screeningsKey() string {
	return "cache:screenings"
}
