package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spacesedan/sentidesk/config"
	"github.com/valkey-io/valkey-go"
)

const valkeyPolarityPrefix = "sentidesk:polarity:"

// ValkeyClient is a shared polarity cache. It implements sentiment.Cache.
type ValkeyClient struct {
	Client valkey.Client
	opts   valkey.ClientOption
	ttl    time.Duration
	mu     sync.Mutex
}

func NewValkeyClient(cfg config.CacheConfig) (*ValkeyClient, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			cfg.ValkeyAddress,
		},
		Password:         cfg.ValkeyPassword,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if cfg.ValkeyTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := connectValkey(opts)
	if err != nil {
		return nil, err
	}

	return &ValkeyClient{Client: client, opts: opts, ttl: cfg.TTL}, nil
}

func connectValkey(opts valkey.ClientOption) (valkey.Client, error) {
	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return client, nil
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := connectValkey(vc.opts)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func (vc *ValkeyClient) Close() error {
	vc.client().Close()
	return nil
}

// Get returns a cached polarity. Misses and errors both report false.
func (vc *ValkeyClient) Get(ctx context.Context, key string) (float64, bool) {
	k := PolarityKey(key)
	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		return c.B().Get().Key(k).Build()
	}, 3)
	if err := res.Error(); err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[ValkeyClient] Cache read failed", slog.String("error", err.Error()))
		}
		return 0, false
	}

	p, err := res.AsFloat64()
	if err != nil {
		return 0, false
	}
	return p, true
}

// Set writes the score and its expiry in one SET so a failed attempt never
// leaves a key without a TTL.
func (vc *ValkeyClient) Set(ctx context.Context, key string, polarity float64) {
	k := PolarityKey(key)
	v := strconv.FormatFloat(polarity, 'f', -1, 64)
	ttl := polarityTTL(vc.ttl)

	res := vc.DoWithRetry(ctx, func(c valkey.Client) valkey.Completed {
		set := c.B().Set().Key(k).Value(v)
		if ttl > 0 {
			return set.Px(ttl).Build()
		}
		return set.Build()
	}, 3)
	if err := res.Error(); err != nil {
		slog.Warn("[ValkeyClient] Cache write failed", slog.String("error", err.Error()))
	}
}

func PolarityKey(key string) string {
	return valkeyPolarityPrefix + key
}

// polarityTTL rounds up to whole milliseconds. PX 0 is rejected by the
// server, so any positive ttl keeps at least one millisecond.
func polarityTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return (ttl + time.Millisecond - 1).Truncate(time.Millisecond)
}

// DoWithRetry builds a fresh command for every attempt since valkey-go
// recycles a Completed once it has been sent.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func(valkey.Client) valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < max(retries, 1); i++ {
		c := vc.client()
		result = c.Do(ctx, build(c))
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		if isConnectionError(err) {
			vc.recreateClient()
		}

		if i < retries-1 {
			time.Sleep(250 * time.Millisecond)
		}
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
