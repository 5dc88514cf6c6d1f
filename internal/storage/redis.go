package storage

import (
	"context"
	"fmt"
	"time"

	"recruit-go/internal/config"
	"recruit-go/internal/constants"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a cached value is absent.
// It wraps the underlying redis.Nil for abstraction.
var ErrCacheMiss = redis.Nil

// Redis provides the listing cache for the careers page.
type Redis struct {
	Client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedis creates the client and instruments it for tracing.
func NewRedis(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("Redis config must not be nil")
	}

	opts := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeoutSeconds > 0 {
		opts.DialTimeout = time.Duration(cfg.DialTimeoutSeconds) * time.Second
	}
	if cfg.ReadTimeoutSeconds > 0 {
		opts.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		opts.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}

	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument Redis tracing: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Redis{Client: client, cfg: cfg}, nil
}

// GetOpenJobsListing returns the cached careers-page listing payload.
// Returns ErrCacheMiss when the cache is cold.
func (r *Redis) GetOpenJobsListing(ctx context.Context) ([]byte, error) {
	return r.Client.Get(ctx, constants.KeyOpenJobsList).Bytes()
}

// SetOpenJobsListing caches the careers-page listing payload.
func (r *Redis) SetOpenJobsListing(ctx context.Context, payload []byte) error {
	return r.Client.Set(ctx, constants.KeyOpenJobsList, payload, constants.OpenJobsCacheTTL).Err()
}

// InvalidateOpenJobsListing drops the cached listing after a job mutation.
func (r *Redis) InvalidateOpenJobsListing(ctx context.Context) error {
	return r.Client.Del(ctx, constants.KeyOpenJobsList).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.Client.Close()
}
