package store

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisKV shares the store between several app instances, the way every
// browser tab of one origin sees the same localStorage. The KV contract
// stays synchronous; the client context never carries a deadline.
type RedisKV struct {
	rdb *redis.Client
}

func OpenRedisKV(addr string) (*RedisKV, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisKV{rdb: rdb}, nil
}

func (r *RedisKV) Get(key string) (string, bool) {
	value, err := r.rdb.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		log.Printf("[STORE ERROR] get %q: %v", key, err)
		return "", false
	}
	return value, true
}

func (r *RedisKV) Set(key, value string) {
	if err := r.rdb.Set(context.Background(), key, value, 0).Err(); err != nil {
		log.Printf("[STORE ERROR] set %q: %v", key, err)
	}
}

func (r *RedisKV) Remove(key string) {
	if err := r.rdb.Del(context.Background(), key).Err(); err != nil {
		log.Printf("[STORE ERROR] remove %q: %v", key, err)
	}
}

func (r *RedisKV) Keys() []string {
	keys, err := r.rdb.Keys(context.Background(), "*").Result()
	if err != nil {
		log.Printf("[STORE ERROR] keys: %v", err)
		return nil
	}
	return keys
}

func (r *RedisKV) Close() error {
	return r.rdb.Close()
}
