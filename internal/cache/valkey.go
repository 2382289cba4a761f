package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// ValkeyClient keeps session keys as fields of one hash, so a shared kiosk
// deployment can point several shells at the same session.
type ValkeyClient struct {
	client  *redis.Client
	hashKey string
}

func NewValkeyClient(cfg Config, hashKey string) (*ValkeyClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return newValkeyClient(rdb, hashKey), nil
}

func newValkeyClient(rdb *redis.Client, hashKey string) *ValkeyClient {
	if hashKey == "" {
		hashKey = "flightdesk:session"
	}
	return &ValkeyClient{client: rdb, hashKey: hashKey}
}

func (v *ValkeyClient) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := v.client.HGet(ctx, v.hashKey, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache lookup error: %w", err)
	}
	return value, true, nil
}

func (v *ValkeyClient) Set(ctx context.Context, key, value string) error {
	if err := v.client.HSet(ctx, v.hashKey, key, value).Err(); err != nil {
		return fmt.Errorf("cache write error: %w", err)
	}
	return nil
}

func (v *ValkeyClient) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := v.client.HDel(ctx, v.hashKey, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
