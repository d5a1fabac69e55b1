package namecache

import (
	"context"
	"fmt"
	"time"

	"github.com/goodtune/viewstats/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "viewstats:username:"

// Redis is a redis-backed cache shared across report runs.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// OpenRedis creates a new redis-backed cache instance
func OpenRedis(cfg config.RedisConfig) (*Redis, error) {
	// Parse timeouts
	dialTimeout, err := time.ParseDuration(cfg.DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid dial_timeout: %w", err)
	}

	readTimeout, err := time.ParseDuration(cfg.ReadTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid read_timeout: %w", err)
	}

	writeTimeout, err := time.ParseDuration(cfg.WriteTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid write_timeout: %w", err)
	}

	var ttl time.Duration
	if cfg.NameTTL != "" {
		ttl, err = time.ParseDuration(cfg.NameTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid name_ttl: %w", err)
		}
	}

	// Determine address
	addr := cfg.Host
	if cfg.Port > 0 {
		addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})

	// Ping to verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: client, ttl: ttl}, nil
}

// Get returns the cached name for userID, or ErrNotFound
func (r *Redis) Get(ctx context.Context, userID string) (string, error) {
	name, err := r.client.Get(ctx, keyPrefix+userID).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get cached name: %w", err)
	}
	return name, nil
}

// Set stores the name for userID. A zero TTL keeps names indefinitely.
func (r *Redis) Set(ctx context.Context, userID, name string) error {
	if err := r.client.Set(ctx, keyPrefix+userID, name, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache name: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (r *Redis) Close() error {
	return r.client.Close()
}
