package cache

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	redis "github.com/redis/go-redis/v9"
	"github.com/vfg2006/marketplace-ingest-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const tokenKeyPrefix = "marketplace:access_token:"

// NoopTokenCache nunca guarda nada; cada execução troca o refresh token
type NoopTokenCache struct{}

func (NoopTokenCache) Get(_ context.Context, _ string) (*domain.AccessToken, bool, error) {
	return nil, false, nil
}

func (NoopTokenCache) Set(_ context.Context, _ string, _ *domain.AccessToken, _ time.Duration) error {
	return nil
}

type RedisTokenCache struct {
	client *redis.Client
}

func NewRedisTokenCache(addr string, password string, db int) *RedisTokenCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisTokenCache{client: client}
}

func (c *RedisTokenCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisTokenCache) Close() error {
	return c.client.Close()
}

func (c *RedisTokenCache) Get(ctx context.Context, key string) (*domain.AccessToken, bool, error) {
	val, err := c.client.Get(ctx, tokenKeyPrefix+key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var token domain.AccessToken
	if err := json.Unmarshal([]byte(val), &token); err != nil {
		return nil, false, err
	}
	return &token, true, nil
}

// Set ignora TTL não positivo, já que o token estaria vencido ao ser lido
func (c *RedisTokenCache) Set(ctx context.Context, key string, token *domain.AccessToken, ttl time.Duration) error {
	if token == nil || ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(token)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tokenKeyPrefix+key, payload, ttl).Err()
}
