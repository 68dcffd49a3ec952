package infra

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV é um KVStore em Redis.
//
// Sem TTL funciona como storage durável. Com TTL (WithTTL) funciona como
// storage de sessão: cada escrita renova a expiração da chave.
type RedisKV struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type RedisKVOption func(*RedisKV)

func WithPrefix(prefix string) RedisKVOption {
	return func(s *RedisKV) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithTTL(d time.Duration) RedisKVOption {
	return func(s *RedisKV) { s.ttl = d }
}

func NewRedisKV(rdb redis.UniversalClient, opts ...RedisKVOption) *RedisKV {
	s := &RedisKV{
		rdb:    rdb,
		prefix: "counters",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisKV) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.rdb == nil {
		return "", false, nil
	}
	v, err := s.rdb.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	if s == nil || s.rdb == nil {
		return nil
	}
	// ttl 0 = sem expiração
	return s.rdb.Set(ctx, s.key(key), value, s.ttl).Err()
}
