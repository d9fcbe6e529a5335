package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mecanica_xpto_os/internal/config"
	"mecanica_xpto_os/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lockKeyPrefix = "mecanica_xpto_os:job-lock:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// RedisJobLock serialises periodic jobs across API replicas with
// SET NX PX plus a token-checked release.
type RedisJobLock struct {
	rdb redis.Cmdable
	log *zap.Logger
}

var _ interfaces.IJobLock = (*RedisJobLock)(nil)

func NewRedisJobLock(rdb redis.Cmdable, log *zap.Logger) *RedisJobLock {
	return &RedisJobLock{rdb: rdb, log: log}
}

func (l *RedisJobLock) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	fullKey := lockKeyPrefix + key

	acquired, err := l.rdb.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !acquired {
		l.log.Debug("[jobs][lock] held elsewhere", zap.String("key", key))
		return nil, false, nil
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.rdb, []string{fullKey}, token).Err(); err != nil {
			l.log.Warn("[jobs][lock] release failed", zap.String("key", key), zap.Error(err))
		}
	}
	return release, true, nil
}

// LocalJobLock is the single-process fallback when Redis is not configured.
type LocalJobLock struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

var _ interfaces.IJobLock = (*LocalJobLock)(nil)

func NewLocalJobLock() *LocalJobLock {
	return &LocalJobLock{held: make(map[string]time.Time), now: time.Now}
}

func (l *LocalJobLock) Acquire(_ context.Context, key string, ttl time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if until, ok := l.held[key]; ok && now.Before(until) {
		return nil, false, nil
	}
	until := now.Add(ttl)
	l.held[key] = until

	release := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key].Equal(until) {
			delete(l.held, key)
		}
	}
	return release, true, nil
}
