package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisClient is the subset of the go-redis client used by RedisStore.
type RedisClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
	Close() error
}

// RedisStore keeps the flags in one hash, field = plugin id, value "1"/"0".
type RedisStore struct {
	client RedisClient
	key    string
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: ping failed: %w", opts.Addr, err)
	}
	return NewRedisStoreWithClient(client, opts.Key), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client RedisClient, key string) *RedisStore {
	if key == "" {
		key = "adminshell:plugin-state"
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) (map[string]bool, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", s.key, err)
	}
	state := make(map[string]bool, len(fields))
	for id, v := range fields {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("field %s of %s: %w", id, s.key, err)
		}
		state[id] = b
	}
	return state, nil
}

// Save replaces the hash atomically.
func (s *RedisStore) Save(ctx context.Context, state map[string]bool) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(state) == 0 {
			return nil
		}
		values := make([]any, 0, 2*len(state))
		for id, active := range state {
			values = append(values, id, boolString(active))
		}
		pipe.HSet(ctx, s.key, values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
