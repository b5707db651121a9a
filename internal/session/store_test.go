package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"applicant-forms/internal/application/fields"
	"applicant-forms/internal/application/form"
	apperrors "applicant-forms/internal/common/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func sampleState() form.State {
	ts := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	s := form.NewState()
	s.Values.FullName = "Ann"
	s.Values.Position = fields.PositionDesigner
	s.Values.Skills = s.Values.Skills.Toggle(fields.SkillCSS)
	s.Values.InterviewTime = &ts
	s.Errors[fields.FieldPortfolioURL] = "Portfolio URL is required"
	return s
}

// ==========================
// Store contract
// ==========================

func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))

	want := sampleState()
	require.NoError(t, store.Put(ctx, "s1", want))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))

	// deleting twice is not an error
	assert.NoError(t, store.Delete(ctx, "s1"))
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, NewMemoryStore(time.Minute))
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := setupMiniredis(t)
	runStoreContract(t, NewRedisStore(client, "test:", time.Minute))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	s := sampleState()
	require.NoError(t, store.Put(ctx, "s1", s))
	s.Values.Skills[0] = fields.SkillReact
	s.Errors[fields.FieldEmail] = "changed"

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "s1", form.NewState()))

	now = now.Add(59 * time.Second)
	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = store.Get(ctx, "s1")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))

	require.NoError(t, store.Put(ctx, "s2", form.NewState()))
	assert.Len(t, store.entries, 1, "expired entries are swept on put")
}

func TestRedisStore_KeyAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniredis(t)
	store := NewRedisStore(client, "applicant-form:session:", 30*time.Minute)

	require.NoError(t, store.Put(ctx, "abc", sampleState()))

	assert.True(t, mr.Exists("applicant-form:session:abc"))
	assert.Equal(t, 30*time.Minute, mr.TTL("applicant-form:session:abc"))

	raw, err := mr.Get("applicant-form:session:abc")
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Contains(t, doc, "values")
	assert.Contains(t, doc, "errors")
	assert.Equal(t, false, doc["completed"])

	mr.FastForward(31 * time.Minute)
	_, err = store.Get(ctx, "abc")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))
}

func TestRedisStore_Failures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")

	t.Run("get error is retryable", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("p:s1").SetErr(boom)

		_, err := NewRedisStore(client, "p:", time.Minute).Get(ctx, "s1")
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionStoreFailed))
		assert.True(t, apperrors.IsRetryable(err))
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("corrupt document", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet("p:s1").SetVal("{not json")

		_, err := NewRedisStore(client, "p:", time.Minute).Get(ctx, "s1")
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionStoreFailed))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		state := form.NewState()
		raw, err := json.Marshal(state)
		require.NoError(t, err)
		mock.ExpectSet("p:s1", raw, time.Minute).SetErr(boom)

		err = NewRedisStore(client, "p:", time.Minute).Put(ctx, "s1", state)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionStoreFailed))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("del error", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectDel("p:s1").SetErr(boom)

		err := NewRedisStore(client, "p:", time.Minute).Delete(ctx, "s1")
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionStoreFailed))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
