package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jackdzi/informs/internal/metrics"
	"github.com/jackdzi/informs/internal/models"
	appErrors "github.com/jackdzi/informs/pkg/errors"
)

const (
	timeslotsCacheKey = "informs:refdata:timeslots"
	studentsCacheKey  = "informs:refdata:students"
)

// KV abstracts the cache backend behind Get/Set so tests can fake it.
type KV interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// RedisKV stores JSON payloads in Redis.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps a Redis client. A nil client yields permanent misses.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// Get retrieves and unmarshals the cached value into dest. Returns
// ErrCacheMiss when the key is absent or no backend is configured.
func (r *RedisKV) Get(ctx context.Context, key string, dest interface{}) error {
	if r == nil || r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set marshals the value and stores it under key with the given TTL.
func (r *RedisKV) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r == nil || r.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

type refSource interface {
	Timeslots(ctx context.Context) ([]models.TimeSlot, error)
	Students(ctx context.Context) ([]models.StudentInfo, error)
}

// RefCache fronts the upstream's version-independent reference data
// (timeslots, students) with a TTL cache. Version-scoped collections are
// never cached; their freshness is the engine's job.
type RefCache struct {
	source  refSource
	kv      KV
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewRefCache builds a reference-data cache. A nil kv disables caching.
func NewRefCache(source refSource, kv KV, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) *RefCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefCache{source: source, kv: kv, ttl: ttl, logger: logger, metrics: m}
}

// Timeslots returns the timeslot grid, from cache when possible.
func (rc *RefCache) Timeslots(ctx context.Context) ([]models.TimeSlot, error) {
	var cached []models.TimeSlot
	if rc.lookup(ctx, timeslotsCacheKey, &cached) {
		return cached, nil
	}

	timeslots, err := rc.source.Timeslots(ctx)
	if err != nil {
		return nil, err
	}
	rc.store(ctx, timeslotsCacheKey, timeslots)
	return timeslots, nil
}

// Students returns the roster, from cache when possible.
func (rc *RefCache) Students(ctx context.Context) ([]models.StudentInfo, error) {
	var cached []models.StudentInfo
	if rc.lookup(ctx, studentsCacheKey, &cached) {
		return cached, nil
	}

	students, err := rc.source.Students(ctx)
	if err != nil {
		return nil, err
	}
	rc.store(ctx, studentsCacheKey, students)
	return students, nil
}

func (rc *RefCache) lookup(ctx context.Context, key string, dest interface{}) bool {
	if rc.kv == nil {
		return false
	}
	err := rc.kv.Get(ctx, key, dest)
	if err == nil {
		rc.metrics.RecordCacheLookup(true)
		return true
	}
	rc.metrics.RecordCacheLookup(false)
	if !errors.Is(err, appErrors.ErrCacheMiss) {
		rc.logger.Warn("refdata cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (rc *RefCache) store(ctx context.Context, key string, value interface{}) {
	if rc.kv == nil {
		return
	}
	if err := rc.kv.Set(ctx, key, value, rc.ttl); err != nil {
		rc.logger.Warn("refdata cache store failed", zap.String("key", key), zap.Error(err))
	}
}
