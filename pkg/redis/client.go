package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizhubhq/quizhub-backend/pkg/config"
)

// keyNamespace prefixes every key this service writes so the instance can
// be shared with other workloads.
const keyNamespace = "qh"

// Nil is returned by Get when a key does not exist.
var Nil = redis.Nil

// cmdable is the slice of go-redis we use, kept narrow so tests can stub it.
type cmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Client wraps the go-redis client with namespaced keys.
type Client struct {
	rdb cmdable
}

// New connects to redis and verifies the connection with a ping.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		return opts, nil
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("either QUIZHUB_REDIS_URL or QUIZHUB_REDIS_ADDR must be set")
	}
	return &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// Set stores a value under the namespaced key with the given TTL.
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, buildKey(key), value, ttl).Err()
}

// Get fetches a value; returns Nil when the key is absent.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, buildKey(key)).Result()
}

// Del removes the given keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	namespaced := make([]string, len(keys))
	for i, k := range keys {
		namespaced[i] = buildKey(k)
	}
	return c.rdb.Del(ctx, namespaced...).Err()
}

// Ping checks liveness of the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// AccessSessionKey is the key under which the refresh token for the access
// token with the given jti lives.
func AccessSessionKey(jti string) string {
	return "session:" + jti
}

func buildKey(key string) string {
	if strings.HasPrefix(key, keyNamespace+":") {
		return key
	}
	return keyNamespace + ":" + key
}
