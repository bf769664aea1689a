package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hetulpatel/mydata/internal/report"
)

// ReportCache keeps the latest generation report per database path.
type ReportCache interface {
	Latest(ctx context.Context, path string) (*report.Report, bool, error)
	Store(ctx context.Context, r *report.Report) error
	Close() error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisReportCache(addr, password string, db int, ttl time.Duration, prefix string) (ReportCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}
	if ttl <= 0 {
		ttl = 240 * time.Hour
	}
	if prefix == "" {
		prefix = "mydata_report"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisReportCache{client: client, ttl: ttl, prefix: prefix}, nil
}

func (c *redisReportCache) key(path string) string {
	return reportKey(c.prefix, path)
}

func reportKey(prefix, path string) string {
	return fmt.Sprintf("%s:%s", prefix, path)
}

func (c *redisReportCache) Latest(ctx context.Context, path string) (*report.Report, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}
	val, err := c.client.Get(ctx, c.key(path)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var r report.Report
	if err := json.Unmarshal(val, &r); err != nil {
		return nil, false, fmt.Errorf("decode cached report: %w", err)
	}
	return &r, true, nil
}

func (c *redisReportCache) Store(ctx context.Context, r *report.Report) error {
	if c == nil || c.client == nil || r == nil {
		return nil
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return c.client.Set(ctx, c.key(r.Path), payload, c.ttl).Err()
}

func (c *redisReportCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
