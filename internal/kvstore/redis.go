package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/busanbiff/tripbudget/internal/config"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const redisKeyPrefix = "tripbudget"

type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and pings it before returning.
func NewRedisStore(cfg config.Redis) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infof("Connected to redis at %s:%d", cfg.Host, cfg.Port)

	return &RedisStore{client: client}, nil
}

func redisKey(userId int, key string) string {
	return fmt.Sprintf("%s:%d:%s", redisKeyPrefix, userId, key)
}

func (s *RedisStore) Get(ctx context.Context, userId int, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, redisKey(userId, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not read key %s: %w", key, err)
		log.Error(err)
		return nil, err
	}
	return value, nil
}

func (s *RedisStore) Put(ctx context.Context, userId int, key string, value []byte) error {
	if err := s.client.Set(ctx, redisKey(userId, key), value, 0).Err(); err != nil {
		err := fmt.Errorf("could not store key %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userId int, key string) error {
	if err := s.client.Del(ctx, redisKey(userId, key)).Err(); err != nil {
		err := fmt.Errorf("could not delete key %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
