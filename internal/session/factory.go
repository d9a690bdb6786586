package session

import (
	"strings"
	"time"
)

type StoreType string

const (
	StoreTypeMemory StoreType = "memory"
	StoreTypeRedis  StoreType = "redis"

	defaultTTL = 24 * time.Hour
)

// NewStore builds a Store for the given driver. The redis driver requires
// WithRedisClient.
func NewStore(storeType StoreType, opts ...StoreOption) (Store, error) {
	config := &storeConfig{}
	for _, opt := range opts {
		opt(config)
	}

	switch StoreType(strings.ToLower(string(storeType))) {
	case StoreTypeMemory:
		return NewMemoryStore(), nil

	case StoreTypeRedis:
		if config.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return NewRedisStore(config.redisClient, config.ttl), nil

	default:
		return nil, ErrInvalidStoreType
	}
}
