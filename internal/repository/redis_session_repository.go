package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
)

// RedisSessionRepository persists the session under namespaced Redis keys so
// several machines can share one sign-in.
type RedisSessionRepository struct {
	client    *redis.Client
	namespace string
	logger    *zap.Logger
}

// NewRedisSessionRepository constructs a Redis-backed repository.
func NewRedisSessionRepository(client *redis.Client, namespace string, logger *zap.Logger) *RedisSessionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	if namespace == "" {
		namespace = "tsma"
	}
	return &RedisSessionRepository{client: client, namespace: namespace, logger: logger}
}

func (r *RedisSessionRepository) key(name string) string {
	return fmt.Sprintf("%s:%s", r.namespace, name)
}

func (r *RedisSessionRepository) keys() []string {
	keys := make([]string, len(SessionKeys))
	for i, name := range SessionKeys {
		keys[i] = r.key(name)
	}
	return keys
}

// Load returns the stored session or nil.
func (r *RedisSessionRepository) Load(ctx context.Context) (*models.Session, error) {
	if r.client == nil {
		return nil, nil
	}
	raw, err := r.client.MGet(ctx, r.keys()...).Result()
	if err != nil {
		r.logger.Warn("redis session load failed", zap.String("namespace", r.namespace), zap.Error(err))
		return nil, fmt.Errorf("redis mget session: %w", err)
	}
	values := map[string]string{}
	for i, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			values[SessionKeys[i]] = s
		}
	}
	return sessionFromValues(values), nil
}

// Save writes every key inside one MULTI/EXEC block.
func (r *RedisSessionRepository) Save(ctx context.Context, s models.Session) error {
	if r.client == nil {
		return nil
	}
	values := sessionValues(s)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, name := range SessionKeys {
			if value, ok := values[name]; ok {
				pipe.Set(ctx, r.key(name), value, 0)
			} else {
				pipe.Del(ctx, r.key(name))
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Warn("redis session save failed", zap.String("namespace", r.namespace), zap.Error(err))
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

// Clear removes every session key.
func (r *RedisSessionRepository) Clear(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, r.keys()...).Err(); err != nil {
		r.logger.Warn("redis session clear failed", zap.String("namespace", r.namespace), zap.Error(err))
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *RedisSessionRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
