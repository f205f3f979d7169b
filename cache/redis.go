package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"barcode-inventory/models"
)

const lookupKeyPrefix = "barcode_lookup:"

// RedisClient caches barcode lookup results in Redis.
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to addr and verifies the connection with a ping.
func NewRedisClient(addr string, ttl time.Duration) (*RedisClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Printf("Connected to Redis at %s (ping: %s)", addr, pong)

	return &RedisClient{client: client, ttl: ttl}, nil
}

func (c *RedisClient) Get(ctx context.Context, barcode string) (*models.LookupResult, bool, error) {
	raw, err := c.client.Get(ctx, lookupKeyPrefix+barcode).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from Redis: %w", barcode, err)
	}

	var result models.LookupResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached lookup: %w", err)
	}
	return &result, true, nil
}

func (c *RedisClient) Set(ctx context.Context, result *models.LookupResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal lookup: %w", err)
	}
	if err := c.client.Set(ctx, lookupKeyPrefix+result.Barcode, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in Redis: %w", result.Barcode, err)
	}
	return nil
}

func (c *RedisClient) Close() {
	if c.client != nil {
		c.client.Close()
		log.Println("Redis connection closed.")
	}
}
