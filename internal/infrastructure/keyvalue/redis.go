package keyvalue

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
)

// RedisStore marcador persistido en Redis; sobrevive entre sesiones del
// servicio.
type RedisStore struct {
	client *redis.Client
}

var _ ports.MarkerStore = (*RedisStore)(nil)

// NewRedisStore construye el cliente Redis.
func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Close cierra la conexión subyacente.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
