package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "gachacache:"
	redisOpTime = 2 * time.Second
)

func init() {
	Register("redis", newRedisCache)
}

// redisCache shares sheet documents between gacha instances through Redis or Valkey.
//
// Each entry is a plain string key {prefix}doc:{key} expiring on its own TTL.
// Recency lives in the sorted set {prefix}lru (member = key, score = last access
// in µs). Set trims the set to Size, deleting the least recently used entries.
type redisCache struct {
	client  *redis.Client
	ttl     time.Duration
	maxSize int
	onEvict EvictCallback
	logger  Logger
	lruKey  string
}

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisCache{
		client:  client,
		ttl:     cfg.TTL,
		maxSize: cfg.Size,
		onEvict: cfg.OnEvict,
		logger:  cfg.Logger,
		lruKey:  keyPrefix + "lru",
	}, nil
}

func (r *redisCache) entryKey(key string) string {
	return keyPrefix + "doc:" + key
}

func (r *redisCache) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err)
	}
}

func nowScore() float64 {
	return float64(time.Now().UnixMicro())
}

// pruneExpired drops recency members that were last touched before the TTL
// window; their entries have expired on the server.
func (r *redisCache) pruneExpired(ctx context.Context, p redis.Cmdable) {
	if r.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-r.ttl).UnixMicro()
	p.ZRemRangeByScore(ctx, r.lruKey, "-inf", "("+strconv.FormatInt(cutoff, 10))
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTime)
	defer cancel()

	val, err := r.client.Get(ctx, r.entryKey(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logError("redis cache Get failed", err)
		}
		return nil, false
	}
	if err := r.client.ZAdd(ctx, r.lruKey, redis.Z{Score: nowScore(), Member: key}).Err(); err != nil {
		r.logError("redis cache touch failed", err)
	}
	return val, true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTime)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.entryKey(key), value, r.ttl)
		p.ZAdd(ctx, r.lruKey, redis.Z{Score: nowScore(), Member: key})
		r.pruneExpired(ctx, p)
		return nil
	})
	if err != nil {
		r.logError("redis cache Set failed", err)
		return
	}
	r.evictOverflow(ctx)
}

// evictOverflow removes the least recently used entries beyond maxSize.
func (r *redisCache) evictOverflow(ctx context.Context) {
	if r.maxSize <= 0 {
		return
	}
	n, err := r.client.ZCard(ctx, r.lruKey).Result()
	if err != nil {
		r.logError("redis cache ZCard failed", err)
		return
	}
	over := n - int64(r.maxSize)
	if over <= 0 {
		return
	}

	oldest, err := r.client.ZPopMin(ctx, r.lruKey, over).Result()
	if err != nil {
		r.logError("redis cache eviction failed", err)
		return
	}
	keys := make([]string, 0, len(oldest))
	entryKeys := make([]string, 0, len(oldest))
	for _, z := range oldest {
		k, ok := z.Member.(string)
		if !ok {
			continue
		}
		keys = append(keys, k)
		entryKeys = append(entryKeys, r.entryKey(k))
	}
	if len(entryKeys) == 0 {
		return
	}
	if err := r.client.Del(ctx, entryKeys...).Err(); err != nil {
		r.logError("redis cache eviction failed", err)
		return
	}
	if r.onEvict != nil {
		// values are not read back before deletion
		for _, k := range keys {
			r.onEvict(k, nil)
		}
	}
}

func (r *redisCache) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTime)
	defer cancel()

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, r.entryKey(key))
		p.ZRem(ctx, r.lruKey, key)
		return nil
	})
	if err != nil {
		r.logError("redis cache Delete failed", err)
	}
}

func (r *redisCache) Contains(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTime)
	defer cancel()

	n, err := r.client.Exists(ctx, r.entryKey(key)).Result()
	if err != nil {
		r.logError("redis cache Contains failed", err)
		return false
	}
	return n == 1
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTime)
	defer cancel()

	r.pruneExpired(ctx, r.client)
	n, err := r.client.ZCard(ctx, r.lruKey).Result()
	if err != nil {
		r.logError("redis cache Len failed", err)
		return 0
	}
	return int(n)
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
