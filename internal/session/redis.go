// internal/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"applicant-forms/internal/application/form"
	apperrors "applicant-forms/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a JSON document under prefix+id, expiring
// after ttl of inactivity.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) Get(ctx context.Context, id string) (form.State, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return form.State{}, apperrors.NewSessionNotFoundError(id)
	}
	if err != nil {
		return form.State{}, apperrors.NewSessionStoreError("get", err)
	}

	state := form.NewState()
	if err := json.Unmarshal(raw, &state); err != nil {
		return form.State{}, apperrors.NewSessionStoreError("decode", err)
	}
	return state, nil
}

func (s *RedisStore) Put(ctx context.Context, id string, state form.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return apperrors.NewSessionStoreError("encode", err)
	}
	if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		return apperrors.NewSessionStoreError("set", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return apperrors.NewSessionStoreError("del", err)
	}
	return nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}
