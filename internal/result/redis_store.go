package result

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "trivia:leaderboard"

// RedisStore keeps results as JSON records in a Redis list.
// RPUSH adds a whole record in one command, so entries never interleave.
type RedisStore struct {
	client *redis.Client
	key    string
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{
		client: client,
		key:    key,
	}
}

func (s *RedisStore) Append(ctx context.Context, r Result) error {
	if err := Validate(r); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("json.Marshal > %w", err)
	}
	if err := s.client.RPush(ctx, s.key, data).Err(); err != nil {
		return fmt.Errorf("client.RPush(%s) > %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) ReadAll(ctx context.Context) ([]Result, error) {
	entries, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("client.LRange(%s) > %w", s.key, err)
	}

	results := make([]Result, 0, len(entries))
	for i, entry := range entries {
		r, err := Decode([]byte(entry))
		if err != nil {
			slog.Default().Warn("skipping malformed leaderboard entry",
				slog.String("key", s.key),
				slog.Int("index", i),
				slog.Any("error", err),
			)
			continue
		}
		results = append(results, r)
	}
	return results, nil
}
