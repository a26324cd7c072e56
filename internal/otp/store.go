// AngelaMos | 2026
// store.go

package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/invoicery/internal/core"
)

type redisStore struct {
	client *redis.Client
}

// consumeScript deletes the key only when its value matches, in a
// single atomic step on the server.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Save(
	ctx context.Context,
	key, value string,
	ttl time.Duration,
) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *redisStore) ConsumeIfMatch(
	ctx context.Context,
	key, value string,
) (bool, error) {
	deleted, err := consumeScript.Run(
		ctx,
		s.client,
		[]string{key},
		value,
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis consume: %w", err)
	}
	return deleted > 0, nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	deleted, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("delete otp: %w", core.ErrNotFound)
	}
	return nil
}
