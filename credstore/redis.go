package credstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	accessTokenField  = "access_token"
	refreshTokenField = "refresh_token"
	identityField     = "identity"
)

// RedisStore is the durable Store implementation. All three entries live
// in a single Redis hash under one key, so HSET/DEL give the atomic
// save/clear the Store contract requires without scripting.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore returns a store keyed under "<prefix>:credentials".
// The prefix isolates multiple consumers sharing one Redis database.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "labelkit"
	}
	return &RedisStore{
		client: client,
		key:    fmt.Sprintf("%s:credentials", prefix),
	}
}

// Save writes the token pair and identity blob in one HSET.
func (s *RedisStore) Save(ctx context.Context, creds Credentials, identity []byte) error {
	if s == nil || s.client == nil {
		return ErrUnavailable
	}
	err := s.client.HSet(ctx, s.key,
		accessTokenField, creds.AccessToken,
		refreshTokenField, creds.RefreshToken,
		identityField, identity,
	).Err()
	if err != nil {
		return fmt.Errorf("credstore save: %w", err)
	}
	return nil
}

// Load reads whatever is currently persisted. A missing key yields a zero
// Record and no error; deciding what a partial record means is the
// caller's job.
func (s *RedisStore) Load(ctx context.Context) (Record, error) {
	if s == nil || s.client == nil {
		return Record{}, ErrUnavailable
	}
	values, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, nil
		}
		return Record{}, fmt.Errorf("credstore load: %w", err)
	}

	rec := Record{
		Credentials: Credentials{
			AccessToken:  values[accessTokenField],
			RefreshToken: values[refreshTokenField],
		},
	}
	if blob, ok := values[identityField]; ok && blob != "" {
		rec.Identity = []byte(blob)
	}
	return rec, nil
}

// Clear removes all three entries. Deleting an absent key is a no-op, so
// Clear is idempotent.
func (s *RedisStore) Clear(ctx context.Context) error {
	if s == nil || s.client == nil {
		return ErrUnavailable
	}
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("credstore clear: %w", err)
	}
	return nil
}
