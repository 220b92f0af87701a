package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps attempt sequences in a sorted set per client key, scored by
// unix nanoseconds. Entries expire a minute after the window so abandoned
// clients cost nothing. The prefix separates the login and registration
// features on one shared client.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, window time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: window + time.Minute}
}

func (s *RedisStore) key(client string) string {
	return fmt.Sprintf("ratelimit:%s:%s", s.prefix, client)
}

func (s *RedisStore) Attempts(ctx context.Context, key string) ([]time.Time, error) {
	members, err := s.client.ZRangeWithScores(ctx, s.key(key), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("ratelimit attempts: %w", err)
	}
	out := make([]time.Time, 0, len(members))
	for _, m := range members {
		// float64 scores lose sub-microsecond precision; irrelevant at
		// minute-scale windows.
		out = append(out, time.Unix(0, int64(m.Score)))
	}
	return out, nil
}

func (s *RedisStore) SetAttempts(ctx context.Context, key string, attempts []time.Time) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(key))
	if len(attempts) > 0 {
		members := make([]redis.Z, 0, len(attempts))
		for i, at := range attempts {
			nano := at.UnixNano()
			members = append(members, redis.Z{
				Score:  float64(nano),
				Member: strconv.FormatInt(nano, 10) + "-" + strconv.Itoa(i),
			})
		}
		pipe.ZAdd(ctx, s.key(key), members...)
		pipe.Expire(ctx, s.key(key), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("ratelimit set attempts: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("ratelimit clear: %w", err)
	}
	return nil
}
