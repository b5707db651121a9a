package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"applicant-forms/internal/application/events"
	"applicant-forms/internal/application/fields"
	"applicant-forms/internal/application/form"
	"applicant-forms/internal/application/rules"
	apperrors "applicant-forms/internal/common/errors"
	"applicant-forms/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDeveloperEvents() []events.Event {
	ts := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	return []events.Event{
		{Type: events.TypeSet, Field: "fullName", Value: "Ann"},
		{Type: events.TypeSet, Field: "email", Value: "ann@x.io"},
		{Type: events.TypeSet, Field: "phoneNumber", Value: "5551234"},
		{Type: events.TypeSet, Field: "position", Value: "Developer"},
		{Type: events.TypeSet, Field: "relevantExperience", Value: "3"},
		{Type: events.TypeToggleSkill, Skill: "Python"},
		{Type: events.TypeSelectTime, Time: &ts},
	}
}

func newTestManager(t *testing.T, opts ...ManagerOption) *Manager {
	seq := 0
	base := []ManagerOption{
		WithLogger(logger.NewTestLogger(t)),
		withIDGenerator(func() string { seq++; return fmt.Sprintf("sess-%d", seq) }),
	}
	return NewManager(NewMemoryStore(time.Hour), append(base, opts...)...)
}

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	id, state, err := m.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", id)
	assert.Equal(t, form.NewState(), state)

	res, err := m.Apply(ctx, id, events.Event{Type: events.TypeSubmit})
	require.NoError(t, err)
	require.NotNil(t, res.Submit)
	assert.False(t, res.Submit.Completed)
	assert.Equal(t, rules.MsgFullNameRequired, res.State.Errors[fields.FieldFullName])

	res, err = m.Apply(ctx, id, append(validDeveloperEvents(), events.Event{Type: events.TypeSubmit})...)
	require.NoError(t, err)
	assert.True(t, res.Submit.Completed)
	assert.True(t, res.State.Completed)

	stored, err := m.State(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.State, stored)

	res, err = m.Apply(ctx, id, events.Event{Type: events.TypeBack})
	require.NoError(t, err)
	assert.Nil(t, res.Submit)
	assert.False(t, res.State.Completed)
	assert.Equal(t, "Ann", res.State.Values.FullName)

	require.NoError(t, m.Close(ctx, id))
	_, err = m.State(ctx, id)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))
}

func TestManager_UUIDs(t *testing.T) {
	m := NewManager(NewMemoryStore(0))
	a, _, err := m.Start(context.Background())
	require.NoError(t, err)
	b, _, err := m.Start(context.Background())
	require.NoError(t, err)

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestManager_ApplyIsAtomic(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id, _, err := m.Start(ctx)
	require.NoError(t, err)

	_, err = m.Apply(ctx, id,
		events.Event{Type: events.TypeSet, Field: "fullName", Value: "Ann"},
		events.Event{Type: events.TypeToggleSkill, Skill: "COBOL"},
	)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownSkill))

	state, err := m.State(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, state.Values.FullName)
}

func TestManager_UnknownSession(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Apply(context.Background(), "nope", events.Event{Type: events.TypeSubmit})
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound))
}

func TestManager_CompletionHook(t *testing.T) {
	ctx := context.Background()
	var completed []form.State
	m := newTestManager(t, WithCompletionHook(form.CompletionFunc(func(_ context.Context, s form.State) {
		completed = append(completed, s)
	})))

	id, _, err := m.Start(ctx)
	require.NoError(t, err)
	_, err = m.Apply(ctx, id, append(validDeveloperEvents(), events.Event{Type: events.TypeSubmit})...)
	require.NoError(t, err)

	// already completed: another submit does not notify again
	_, err = m.Apply(ctx, id, events.Event{Type: events.TypeSubmit})
	require.NoError(t, err)

	require.Len(t, completed, 1)
	assert.Equal(t, "Ann", completed[0].Values.FullName)
}

func TestManager_ConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(0))

	const sessions, toggles = 8, 25
	ids := make([]string, sessions)
	for i := range ids {
		id, _, err := m.Start(ctx)
		require.NoError(t, err)
		ids[i] = id
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for j := 0; j < toggles; j++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := m.Apply(ctx, id, events.Event{Type: events.TypeToggleSkill, Skill: "CSS"})
				assert.NoError(t, err)
			}(id)
		}
	}
	wg.Wait()

	// an odd number of serialized toggles leaves the skill selected
	for _, id := range ids {
		state, err := m.State(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, fields.SkillSet{fields.SkillCSS}, state.Values.Skills)
	}
	assert.Equal(t, 0, m.locks.size())
}
