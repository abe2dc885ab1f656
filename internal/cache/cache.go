// Package cache provides the two-tier TTL cache used by the coaching core.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yd1008/lol-analyzer/internal/config"
	"github.com/yd1008/lol-analyzer/pkg/logx"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Service is a two-tier cache: a mutex-guarded in-process map, plus an
// optional shared Redis tier. The shared tier is opportunistic; when it is
// unreachable the service degrades to local-only operation without
// surfacing errors to callers.
type Service struct {
	mu     sync.Mutex
	local  map[string]entry
	shared *redis.Client
}

// New creates a cache service. An empty RedisURL, a bad URL, or an
// unreachable server all yield a local-only cache.
func New(cfg config.CacheConfig) *Service {
	s := &Service{local: make(map[string]entry)}

	if cfg.RedisURL == "" {
		logx.Info().Msg("shared cache not configured, using memory only")
		return s
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logx.Warn().Err(err).Msg("failed to parse CACHE_REDIS_URL, using memory only")
		return s
	}

	opt.PoolSize = 5
	opt.MinIdleConns = 1
	opt.DialTimeout = time.Duration(cfg.DialTimeout) * time.Second
	opt.ReadTimeout = time.Duration(cfg.ReadTimeout) * time.Second
	opt.WriteTimeout = time.Duration(cfg.WriteTimeout) * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logx.Warn().Err(err).Msg("shared cache unreachable, using memory only")
		return s
	}

	logx.Info().Msg("shared cache connected")
	s.shared = client
	return s
}

// NewLocal creates a cache service with no shared tier.
func NewLocal() *Service {
	return &Service{local: make(map[string]entry)}
}

// Get returns the cached value for key. The shared tier is consulted
// first, then the local tier.
func (s *Service) Get(ctx context.Context, key string) (string, bool) {
	if s.shared != nil {
		val, err := s.shared.Get(ctx, key).Result()
		if err == nil {
			return val, true
		}
		if err != redis.Nil {
			logx.Debug().Err(err).Str("key", key).Msg("shared cache get failed")
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.local[key]
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.local, key)
		return "", false
	}
	return e.value, true
}

// Set stores value under key in both tiers with the given TTL. Non-positive
// TTLs are ignored.
func (s *Service) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	s.mu.Lock()
	s.local[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()

	if s.shared != nil {
		if err := s.shared.Set(ctx, key, value, ttl).Err(); err != nil {
			logx.Debug().Err(err).Str("key", key).Msg("shared cache set failed")
		}
	}
}

// Delete removes key from both tiers.
func (s *Service) Delete(ctx context.Context, key string) {
	s.mu.Lock()
	delete(s.local, key)
	s.mu.Unlock()

	if s.shared != nil {
		if err := s.shared.Del(ctx, key).Err(); err != nil {
			logx.Debug().Err(err).Str("key", key).Msg("shared cache delete failed")
		}
	}
}

// GetJSON unmarshals the cached value for key into dst.
func (s *Service) GetJSON(ctx context.Context, key string, dst any) bool {
	val, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		logx.Debug().Err(err).Str("key", key).Msg("cached value unmarshal failed")
		return false
	}
	return true
}

// SetJSON marshals v and stores it under key.
func (s *Service) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		logx.Debug().Err(err).Str("key", key).Msg("cache value marshal failed")
		return
	}
	s.Set(ctx, key, string(data), ttl)
}
