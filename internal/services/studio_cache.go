package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/loqostudio/loqo-backend/internal/logger"
)

// StudioCache holds rendered part-studio aggregates. Optional: when redis is
// not configured the services run with a nil cache and every read hits the
// database.
type StudioCache interface {
	GetStudio(ctx context.Context, partID uuid.UUID, out any) (bool, error)
	SetStudio(ctx context.Context, partID uuid.UUID, payload any) error
	InvalidatePart(ctx context.Context, partID uuid.UUID) error
	Close() error
}

type redisStudioCache struct {
	log *logger.Logger
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStudioCache(log *logger.Logger, addr string, ttl time.Duration) (StudioCache, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis addr")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &redisStudioCache{
		log: log.With("service", "StudioCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func studioKey(partID uuid.UUID) string {
	return "studio:" + partID.String()
}

func (c *redisStudioCache) GetStudio(ctx context.Context, partID uuid.UUID, out any) (bool, error) {
	raw, err := c.rdb.Get(ctx, studioKey(partID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("Bad cached studio payload, evicting", "partID", partID, "error", err)
		_ = c.rdb.Del(ctx, studioKey(partID)).Err()
		return false, nil
	}
	return true, nil
}

func (c *redisStudioCache) SetStudio(ctx context.Context, partID uuid.UUID, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, studioKey(partID), raw, c.ttl).Err()
}

func (c *redisStudioCache) InvalidatePart(ctx context.Context, partID uuid.UUID) error {
	return c.rdb.Del(ctx, studioKey(partID)).Err()
}

func (c *redisStudioCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
