package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"blog-service/internal/domain/entities"
	"blog-service/internal/domain/repositories"
	"github.com/go-redis/redis/v8"
)

const idempotencyKeyPrefix = "idempotency:"

type RedisOptions struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether any Redis endpoint is configured.
func (o RedisOptions) Enabled() bool {
	return o.URL != "" || o.Host != ""
}

// RedisService stores idempotency records with a TTL. With a nil client it is
// disabled: lookups miss and writes are dropped.
type RedisService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisService(ctx context.Context, opts RedisOptions) *RedisService {
	if !opts.Enabled() {
		return &RedisService{ttl: opts.TTL}
	}

	// Alternative: Use REDIS_URL if provided
	if opts.URL != "" {
		opt, err := redis.ParseURL(opts.URL)
		if err == nil {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				log.Printf("Warning: Redis connection failed with REDIS_URL: %v", err)
				client.Close()
			} else {
				log.Printf("Connected to Redis using REDIS_URL")
				return &RedisService{client: client, ttl: opts.TTL}
			}
		} else {
			log.Printf("Warning: invalid REDIS_URL: %v", err)
		}
	}

	host, port := opts.Host, opts.Port
	if host == "" {
		host = "localhost"
	}
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
		log.Printf("Redis will be disabled. Idempotent replays are off.")
		client.Close()
		return &RedisService{ttl: opts.TTL}
	}

	log.Printf("Connected to Redis at %s:%s", host, port)
	return &RedisService{client: client, ttl: opts.TTL}
}

// NewRedisServiceWithClient wraps an existing client.
func NewRedisServiceWithClient(client *redis.Client, ttl time.Duration) *RedisService {
	return &RedisService{client: client, ttl: ttl}
}

func (r *RedisService) Enabled() bool {
	return r != nil && r.client != nil
}

// Create stores record unless the key is already taken; the first writer wins.
func (r *RedisService) Create(ctx context.Context, record *entities.IdempotencyRecord) (*entities.IdempotencyRecord, error) {
	if r.client == nil {
		return record, nil // Redis disabled
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	stored, err := r.client.SetNX(ctx, idempotencyKeyPrefix+record.Key, payload, r.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !stored {
		return nil, entities.NewConflictError("idempotency_record", "idempotency_key", record.Key)
	}
	return record, nil
}

func (r *RedisService) FindByKey(ctx context.Context, key string) (*entities.IdempotencyRecord, error) {
	if r.client == nil {
		return nil, nil // Redis disabled
	}

	payload, err := r.client.Get(ctx, idempotencyKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record entities.IdempotencyRecord
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update overwrites the record for a reserved key and restarts its TTL.
func (r *RedisService) Update(ctx context.Context, record *entities.IdempotencyRecord) error {
	if r.client == nil {
		return nil // Redis disabled
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, idempotencyKeyPrefix+record.Key, payload, r.ttl).Err()
}

func (r *RedisService) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return nil // Redis disabled
	}
	return r.client.Del(ctx, idempotencyKeyPrefix+key).Err()
}

func (r *RedisService) Close() error {
	if r == nil || r.client == nil {
		return nil // Redis disabled
	}
	return r.client.Close()
}

var _ repositories.IdempotencyRepository = (*RedisService)(nil)
