// internal/application/form/controller.go
package form

import (
	"context"
	"time"

	"applicant-forms/internal/application/fields"
	"applicant-forms/internal/application/rules"
	apperrors "applicant-forms/internal/common/errors"
	"applicant-forms/internal/common/logger"
	"applicant-forms/internal/common/metrics"

	"github.com/looplab/fsm"
)

const (
	StateEditing = "editing"
	StateSummary = "summary"

	eventComplete = "complete"
	eventBack     = "back"
)

// CompletionHook is notified each time a submit moves the form to its summary.
type CompletionHook interface {
	OnComplete(ctx context.Context, state State)
}

// CompletionFunc adapts a function to CompletionHook.
type CompletionFunc func(ctx context.Context, state State)

func (f CompletionFunc) OnComplete(ctx context.Context, state State) { f(ctx, state) }

type Option func(*Controller)

func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.logger = log
		}
	}
}

func WithCompletionHook(hook CompletionHook) Option {
	return func(c *Controller) { c.hook = hook }
}

// Controller owns the state of one applicant form. It is not safe for
// concurrent use.
type Controller struct {
	values  fields.Values
	errors  rules.ErrorMap
	machine *fsm.FSM
	hook    CompletionHook
	logger  logger.Logger
}

// New returns a controller holding a fresh form.
func New(opts ...Option) *Controller {
	return Restore(NewState(), opts...)
}

// Restore returns a controller continuing from a stored state.
func Restore(s State, opts ...Option) *Controller {
	s = s.Clone()
	if s.Values.Skills == nil {
		s.Values.Skills = fields.SkillSet{}
	}

	c := &Controller{
		values: s.Values,
		errors: s.Errors,
		logger: logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.machine = fsm.NewFSM(
		StateEditing,
		fsm.Events{
			{Name: eventComplete, Src: []string{StateEditing}, Dst: StateSummary},
			{Name: eventBack, Src: []string{StateSummary}, Dst: StateEditing},
		},
		fsm.Callbacks{
			"enter_" + StateSummary: func(ctx context.Context, _ *fsm.Event) {
				c.notifyComplete(ctx)
			},
		},
	)
	if s.Completed {
		c.machine.SetState(StateSummary)
	}
	return c
}

// State returns a deep copy of the current form state.
func (c *Controller) State() State {
	return State{
		Values:    c.values.Clone(),
		Errors:    c.errors.Clone(),
		Completed: c.Completed(),
	}
}

func (c *Controller) Completed() bool {
	return c.machine.Current() == StateSummary
}

// SetField replaces one text or position value. Errors from the last submit are
// left untouched.
func (c *Controller) SetField(name, value string) error {
	f, err := fields.ParseFieldName(name)
	if err != nil {
		return apperrors.NewUnknownFieldError(name)
	}
	if f == fields.FieldPosition {
		p, err := fields.ParsePosition(value)
		if err != nil {
			return apperrors.NewInvalidValueError(name, value)
		}
		c.SetPosition(p)
		return nil
	}
	if !c.values.SetText(f, value) {
		return apperrors.NewUnknownFieldError(name)
	}
	return nil
}

// SetPosition changes the position. Values of fields that become hidden are kept.
func (c *Controller) SetPosition(p fields.Position) {
	c.values.Position = p
}

func (c *Controller) SetInterviewTime(t time.Time) {
	c.values.InterviewTime = &t
}

func (c *Controller) ClearInterviewTime() {
	c.values.InterviewTime = nil
}

// ToggleSkill adds skill if absent, removes it if present.
func (c *Controller) ToggleSkill(skill fields.Skill) error {
	if _, err := fields.ParseSkill(string(skill)); err != nil {
		return apperrors.NewUnknownSkillError(string(skill))
	}
	c.values.Skills = c.values.Skills.Toggle(skill)
	return nil
}

// Submit validates the current values, stores the resulting errors and moves
// to the summary when there are none. It never fails.
func (c *Controller) Submit() SubmitResult {
	return c.SubmitContext(context.Background())
}

// SubmitContext is Submit with a context passed to the completion hook.
func (c *Controller) SubmitContext(ctx context.Context) SubmitResult {
	violations := rules.Check(c.values)
	errs := rules.ErrorMap{}
	for _, v := range violations {
		errs[v.Field] = v.Message
		metrics.FormRuleViolations.WithLabelValues(string(v.Field), string(v.Kind)).Inc()
	}
	c.errors = errs

	if len(errs) == 0 {
		metrics.FormSubmissions.WithLabelValues(metrics.OutcomeCompleted).Inc()
		if c.machine.Can(eventComplete) {
			if err := c.machine.Event(ctx, eventComplete); err != nil {
				c.logger.Warn("complete transition failed", map[string]interface{}{"error": err})
			}
		}
	} else {
		metrics.FormSubmissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		if c.machine.Can(eventBack) {
			_ = c.machine.Event(ctx, eventBack)
		}
	}

	c.logger.Info("submit evaluated", map[string]interface{}{
		"errorCount": len(errs),
		"completed":  c.Completed(),
	})

	return SubmitResult{
		Errors:     errs.Clone(),
		Violations: violations,
		Completed:  c.Completed(),
	}
}

// Back returns from the summary to the form. Values and errors are kept.
func (c *Controller) Back() {
	if !c.machine.Can(eventBack) {
		return
	}
	if err := c.machine.Event(context.Background(), eventBack); err != nil {
		c.logger.Warn("back transition failed", map[string]interface{}{"error": err})
	}
}

// notifyComplete runs inside the fsm transition and must not call back into the machine.
func (c *Controller) notifyComplete(ctx context.Context) {
	if c.hook == nil {
		return
	}
	c.hook.OnComplete(ctx, State{
		Values:    c.values.Clone(),
		Errors:    c.errors.Clone(),
		Completed: true,
	})
}
