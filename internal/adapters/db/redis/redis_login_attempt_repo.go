package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const failureKeyPrefix = "login:fail:"

// RedisLoginAttemptRepo counts failed logins per key in a fixed window
// that starts with the first failure.
type RedisLoginAttemptRepo struct {
	client redis.UniversalClient
}

func NewRedisLoginAttemptRepo(client redis.UniversalClient) *RedisLoginAttemptRepo {
	return &RedisLoginAttemptRepo{
		client: client,
	}
}

func (r *RedisLoginAttemptRepo) Failures(ctx context.Context, key string) (int64, error) {
	n, err := r.client.Get(ctx, failureKeyPrefix+key).Int64()
	switch {
	case err == redis.Nil:
		return 0, nil // ключа нет, попыток не было
	case err != nil:
		return 0, err
	default:
		return n, nil
	}
}

func (r *RedisLoginAttemptRepo) RegisterFailure(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := failureKeyPrefix + key

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		// окно отсчитывается от первой неудачи
		if err := r.client.Expire(ctx, k, safeWindow(window)).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (r *RedisLoginAttemptRepo) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, failureKeyPrefix+key).Err()
}

func safeWindow(window time.Duration) time.Duration {
	if window <= 0 {
		// без TTL счётчик жил бы вечно
		return 15 * time.Minute
	}
	return window
}
