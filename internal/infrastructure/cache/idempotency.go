// Package cache holds short-lived request state kept outside the primary store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

type redisIdempotencyRepository struct {
	client *redis.Client
}

// NewRedisIdempotencyRepository stores idempotency records as JSON strings with a TTL
func NewRedisIdempotencyRepository(client *redis.Client) domainRepo.IdempotencyRepository {
	return &redisIdempotencyRepository{client: client}
}

func (r *redisIdempotencyRepository) Get(ctx context.Context, key, cashierID string) (*entity.IdempotencyRecord, error) {
	data, err := r.client.Get(ctx, idempotencyKey(key, cashierID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var record entity.IdempotencyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal idempotency record failed: %w", err)
	}
	if record.IsExpired() {
		return nil, nil
	}
	return &record, nil
}

func (r *redisIdempotencyRepository) Reserve(ctx context.Context, key, cashierID string, ttl time.Duration) (bool, error) {
	now := time.Now()
	pending, err := json.Marshal(entity.IdempotencyRecord{
		Key:       key,
		CashierID: cashierID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return false, fmt.Errorf("marshal idempotency record failed: %w", err)
	}

	ok, err := r.client.SetNX(ctx, idempotencyKey(key, cashierID), pending, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx failed: %w", err)
	}
	return ok, nil
}

func (r *redisIdempotencyRepository) Save(ctx context.Context, record *entity.IdempotencyRecord) error {
	ttl := time.Until(record.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal idempotency record failed: %w", err)
	}
	if err := r.client.Set(ctx, idempotencyKey(record.Key, record.CashierID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *redisIdempotencyRepository) Release(ctx context.Context, key, cashierID string) error {
	if err := r.client.Del(ctx, idempotencyKey(key, cashierID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func idempotencyKey(key, cashierID string) string {
	return fmt.Sprintf("idempotency:%s:%s", cashierID, key)
}
