// Package cache is a fail-safe Redis client: a cache outage behaves like a
// miss and never fails the request that hit it.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-progress-tracker/internal/config"
	"github.com/redis/go-redis/v9"
)

const dialTimeout = 500 * time.Millisecond

// Client wraps redis.Client but swallows connectivity errors.
type Client struct {
	client *redis.Client
}

// New creates a Redis client for addr.
func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  dialTimeout,
		ReadTimeout:  dialTimeout,
		WriteTimeout: dialTimeout,
		MaxRetries:   1,
	}

	return &Client{client: redis.NewClient(opts)}
}

// NewFromConfig creates a client from the storage cache settings.
func NewFromConfig(cfg config.Cache) *Client {
	return New(cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
}

// Get returns the value, or nil when the key is missing or Redis is down.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and outages both read as a miss
		return nil, nil
	}

	return res, nil
}

// Set stores value with ttl, ignoring Redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes key. Unlike Get and Set it reports failures, since a stale
// entry that survives a write is worth a log line.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	return nil
}

// Incr increments the counter at key. Like Delete it reports failures.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}

	return c.client.Incr(ctx, key).Result()
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache is not configured")
	}

	return c.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}

	return c.client.Close()
}
