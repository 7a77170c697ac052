package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=report_cache.go -destination=mocks/report_cache_mock.go -package=mocks

const (
	// ReportKeyPrefix namespaces every cached report result.
	ReportKeyPrefix = "report:"

	redisCacheTimeout = 2 * time.Second
	invalidateBatch   = 500
)

// ReportCache stores serialized report results. Implementations must be safe
// for concurrent use.
type ReportCache interface {
	// Get decodes a cached value into dest and reports whether it was found.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	// InvalidateAll drops every cached report.
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// NewReportCache returns a redis-backed cache, or a no-op cache when client
// is nil or ttl is not positive.
func NewReportCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) ReportCache {
	if client == nil || ttl <= 0 {
		return NoopReportCache{}
	}
	return &redisReportCache{client: client, ttl: ttl, log: log}
}

func (c *redisReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, ReportKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *redisReportCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	return c.client.Set(ctx, ReportKeyPrefix+key, raw, c.ttl).Err()
}

// InvalidateAll walks the keyspace with SCAN and deletes in pipelined batches
// so a large cache never blocks redis.
func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	var cursor uint64
	deleted := 0
	for {
		keys, next, err := c.client.Scan(ctx, cursor, ReportKeyPrefix+"*", invalidateBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			pipe := c.client.Pipeline()
			for _, key := range keys {
				pipe.Del(ctx, key)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.log.Debugf("Invalidated %d cached reports", deleted)
	return nil
}

// NoopReportCache never stores anything.
type NoopReportCache struct{}

func (NoopReportCache) Get(context.Context, string, any) (bool, error) {
	return false, nil
}

func (NoopReportCache) Set(context.Context, string, any) error {
	return nil
}

func (NoopReportCache) InvalidateAll(context.Context) error {
	return nil
}
