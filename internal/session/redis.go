package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "sentidesk:session:"

// RedisStore keeps sessions as JSON strings with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context, data *Session) error {
	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now
	data.Version = 1

	val, err := json.Marshal(data)
	if err != nil {
		return err
	}

	created, err := s.client.SetNX(ctx, s.key(data.ID), val, s.ttl).Result()
	if err != nil {
		return err
	}
	if !created {
		return ErrAlreadyExists
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	key := s.key(id)
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data Session
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}

	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		slog.Warn("[SessionStore] Failed to refresh session TTL",
			slog.String("session_id", id),
			slog.String("error", err.Error()))
	}

	return &data, nil
}

// Update uses WATCH/MULTI/EXEC so concurrent writers cannot interleave.
func (s *RedisStore) Update(ctx context.Context, data *Session) error {
	key := s.key(data.ID)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var stored Session
		if err := json.Unmarshal([]byte(val), &stored); err != nil {
			return err
		}

		if stored.Version != data.Version {
			return ErrVersionConflict
		}

		next := *data
		next.Version++
		next.UpdatedAt = time.Now()

		newVal, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newVal, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		*data = next
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrVersionConflict
	}
	return err
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return sessionKeyPrefix + id
}
