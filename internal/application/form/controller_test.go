package form

import (
	"context"
	"testing"
	"time"

	"applicant-forms/internal/application/fields"
	"applicant-forms/internal/application/rules"
	apperrors "applicant-forms/internal/common/errors"
	"applicant-forms/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockHook struct {
	mock.Mock
}

func (m *mockHook) OnComplete(ctx context.Context, state State) {
	m.Called(ctx, state)
}

var interview = time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)

func fillValidDeveloper(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.SetField("fullName", "Ann"))
	require.NoError(t, c.SetField("email", "ann@x.io"))
	require.NoError(t, c.SetField("phoneNumber", "5551234"))
	require.NoError(t, c.SetField("position", "Developer"))
	require.NoError(t, c.SetField("relevantExperience", "3"))
	require.NoError(t, c.ToggleSkill(fields.SkillPython))
	c.SetInterviewTime(interview)
}

func newController(t *testing.T, opts ...Option) *Controller {
	return New(append([]Option{WithLogger(logger.NewTestLogger(t))}, opts...)...)
}

// ==========================
// Core Functionality Tests
// ==========================

func TestNew_InitialState(t *testing.T) {
	c := newController(t)
	s := c.State()

	assert.Equal(t, fields.Defaults(), s.Values)
	assert.Empty(t, s.Errors)
	assert.False(t, s.Completed)
}

func TestSubmit_EmptyForm(t *testing.T) {
	c := newController(t)
	res := c.Submit()

	assert.False(t, res.Completed)
	assert.Len(t, res.Errors, 5)
	assert.Equal(t, rules.MsgFullNameRequired, res.Errors[fields.FieldFullName])
	assert.Len(t, res.Violations, 5)
	assert.Equal(t, res.Errors, c.State().Errors)
	assert.False(t, c.Completed())
}

func TestSubmit_ValidDeveloper(t *testing.T) {
	hook := &mockHook{}
	hook.On("OnComplete", mock.Anything, mock.MatchedBy(func(s State) bool {
		return s.Completed && s.Values.FullName == "Ann" && len(s.Errors) == 0
	})).Once()

	c := newController(t, WithCompletionHook(hook))
	fillValidDeveloper(t, c)

	res := c.Submit()
	assert.True(t, res.Completed)
	assert.Empty(t, res.Errors)
	assert.True(t, c.State().Completed)
	hook.AssertExpectations(t)
}

func TestSubmit_SummaryFollowsValidity(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, c *Controller)
		want  bool
	}{
		{"valid values complete", fillValidDeveloper, true},
		{"designer without portfolio stays", func(t *testing.T, c *Controller) {
			fillValidDeveloper(t, c)
			require.NoError(t, c.SetField("position", "Designer"))
		}, false},
		{"manager needs management experience", func(t *testing.T, c *Controller) {
			fillValidDeveloper(t, c)
			c.SetPosition(fields.PositionManager)
		}, false},
		{"manager with experience completes", func(t *testing.T, c *Controller) {
			fillValidDeveloper(t, c)
			c.SetPosition(fields.PositionManager)
			require.NoError(t, c.SetField("managementExperience", "Led a team of 5"))
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t)
			tt.setup(t, c)
			res := c.Submit()
			assert.Equal(t, tt.want, res.Completed)
			assert.Equal(t, len(res.Errors) == 0, res.Completed)
		})
	}
}

func TestSetField_KeepsErrors(t *testing.T) {
	c := newController(t)
	c.Submit()
	before := c.State().Errors

	require.NoError(t, c.SetField("fullName", "Ann"))
	require.NoError(t, c.ToggleSkill(fields.SkillCSS))
	c.SetInterviewTime(interview)

	assert.Equal(t, before, c.State().Errors)
	assert.Equal(t, "Ann", c.State().Values.FullName)
}

func TestSetField_Rejections(t *testing.T) {
	c := newController(t)

	err := c.SetField("nickname", "x")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownField))

	err = c.SetField("skills", "CSS")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownField))

	err = c.SetField("interviewTime", "tomorrow")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownField))

	err = c.SetField("position", "Astronaut")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidValue))

	err = c.ToggleSkill("COBOL")
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnknownSkill))

	assert.Equal(t, fields.Defaults(), c.State().Values)
}

func TestSetPosition_KeepsHiddenValues(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.SetField("position", "Designer"))
	require.NoError(t, c.SetField("portfolioUrl", "https://x.io"))
	require.NoError(t, c.SetField("position", "Manager"))

	assert.Equal(t, "https://x.io", c.State().Values.PortfolioURL)
	assert.False(t, fields.IsRelevant(fields.FieldPortfolioURL, c.State().Values))
}

func TestToggleSkill_Twice(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.ToggleSkill(fields.SkillCSS))
	require.NoError(t, c.ToggleSkill(fields.SkillReact))
	require.NoError(t, c.ToggleSkill(fields.SkillCSS))

	assert.Equal(t, fields.SkillSet{fields.SkillReact}, c.State().Values.Skills)
}

func TestBack_KeepsValuesAndErrors(t *testing.T) {
	c := newController(t)
	fillValidDeveloper(t, c)
	first := c.Submit()
	require.True(t, first.Completed)

	c.Back()
	s := c.State()
	assert.False(t, s.Completed)
	assert.Equal(t, "Ann", s.Values.FullName)
	assert.Empty(t, s.Errors)

	second := c.Submit()
	assert.Equal(t, first.Errors, second.Errors)
	assert.True(t, second.Completed)
}

func TestBack_WhileEditingIsNoop(t *testing.T) {
	c := newController(t)
	c.Submit()
	errs := c.State().Errors

	c.Back()
	assert.False(t, c.Completed())
	assert.Equal(t, errs, c.State().Errors)
}

func TestSubmit_FromSummaryWithErrorsReturnsToForm(t *testing.T) {
	hook := &mockHook{}
	hook.On("OnComplete", mock.Anything, mock.Anything).Once()

	c := newController(t, WithCompletionHook(hook))
	fillValidDeveloper(t, c)
	require.True(t, c.Submit().Completed)

	require.NoError(t, c.SetField("email", ""))
	res := c.Submit()
	assert.False(t, res.Completed)
	assert.Equal(t, rules.MsgEmailRequired, res.Errors[fields.FieldEmail])
	assert.False(t, c.Completed())
	hook.AssertNumberOfCalls(t, "OnComplete", 1)
}

func TestSubmit_RepeatedValidSubmitNotifiesOnce(t *testing.T) {
	calls := 0
	c := newController(t, WithCompletionHook(CompletionFunc(func(context.Context, State) { calls++ })))
	fillValidDeveloper(t, c)

	c.Submit()
	c.Submit()
	assert.Equal(t, 1, calls)

	c.Back()
	c.Submit()
	assert.Equal(t, 2, calls)
}

func TestState_IsDeepCopy(t *testing.T) {
	c := newController(t)
	fillValidDeveloper(t, c)
	c.Submit()

	s := c.State()
	s.Values.Skills[0] = fields.SkillReact
	*s.Values.InterviewTime = interview.Add(time.Hour)
	s.Errors[fields.FieldEmail] = "tampered"

	fresh := c.State()
	assert.Equal(t, fields.SkillSet{fields.SkillPython}, fresh.Values.Skills)
	assert.Equal(t, interview, *fresh.Values.InterviewTime)
	assert.Empty(t, fresh.Errors)
}

func TestRestore(t *testing.T) {
	c := newController(t)
	fillValidDeveloper(t, c)
	c.Submit()
	saved := c.State()

	restored := Restore(saved)
	assert.Equal(t, saved, restored.State())
	assert.True(t, restored.Completed())

	restored.Back()
	assert.False(t, restored.Completed())
	assert.True(t, c.Completed())
}

func TestClearInterviewTime(t *testing.T) {
	c := newController(t)
	c.SetInterviewTime(interview)
	c.ClearInterviewTime()
	res := c.Submit()
	assert.Equal(t, rules.MsgInterviewTimeRequired, res.Errors[fields.FieldInterviewTime])
}
