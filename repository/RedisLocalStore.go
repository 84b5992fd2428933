package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisLocalStore keeps the local key/value pairs in Redis under a key
// prefix, so several devices can share one server. Values never expire.
type RedisLocalStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisLocalStore(ctx context.Context, redisConn *redis.Client, prefix string) (*RedisLocalStore, error) {
	if redisConn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redisConn.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}
	return &RedisLocalStore{
		rdb:    redisConn,
		prefix: prefix,
	}, nil
}

func (r *RedisLocalStore) Get(ctx context.Context, key string) (value string, exists bool, err error) {
	value, err = r.rdb.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			err = nil
		}
		return
	}
	exists = true
	return
}

func (r *RedisLocalStore) Set(ctx context.Context, key string, value string) (err error) {
	err = r.rdb.Set(ctx, r.prefix+key, value, 0).Err()
	return
}
