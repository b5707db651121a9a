// internal/session/manager.go
package session

import (
	"context"
	"time"

	"applicant-forms/internal/application/events"
	"applicant-forms/internal/application/form"
	"applicant-forms/internal/common/logger"
	"applicant-forms/internal/common/metrics"
	"applicant-forms/internal/common/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "applicant-forms/session"

// ApplyResult is the state after a batch of events, plus the outcome of the
// last submit in the batch if there was one.
type ApplyResult struct {
	State  form.State
	Submit *form.SubmitResult
}

type ManagerOption func(*Manager)

func WithLogger(log logger.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

func WithObservability(obs *observability.Observability) ManagerOption {
	return func(m *Manager) { m.obs = obs }
}

// WithCompletionHook is passed to every controller the manager restores.
func WithCompletionHook(hook form.CompletionHook) ManagerOption {
	return func(m *Manager) { m.hook = hook }
}

func withIDGenerator(gen func() string) ManagerOption {
	return func(m *Manager) { m.newID = gen }
}

// Manager runs many independent form sessions over a Store. Calls for the same
// session id are serialized; different ids proceed in parallel.
type Manager struct {
	store  Store
	locks  *keyedMutex
	logger logger.Logger
	obs    *observability.Observability
	tracer trace.Tracer
	hook   form.CompletionHook
	newID  func() string
}

func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		locks:  newKeyedMutex(),
		logger: logger.NewNoOpLogger(),
		tracer: otel.Tracer(tracerName),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithFields(map[string]interface{}{
		"component": "session-manager",
		"store":     store.Name(),
	})
	return m
}

// Start creates a session holding a fresh form and returns its id.
func (m *Manager) Start(ctx context.Context) (string, form.State, error) {
	id := m.newID()
	state := form.NewState()

	if err := m.store.Put(ctx, id, state); err != nil {
		return "", form.State{}, err
	}
	metrics.SessionsActive.Inc()

	m.logger.Info("session started", map[string]interface{}{"sessionId": id})
	return id, state, nil
}

func (m *Manager) State(ctx context.Context, id string) (form.State, error) {
	unlock := m.locks.Lock(id)
	defer unlock()
	return m.store.Get(ctx, id)
}

// Apply loads the session, feeds it evs in order and saves the result. The batch
// is all or nothing: if any event is rejected the stored state is left as it was.
func (m *Manager) Apply(ctx context.Context, id string, evs ...events.Event) (*ApplyResult, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	ctx, span := m.tracer.Start(ctx, "session.apply", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.Int("session.events", len(evs)),
	))
	defer span.End()

	start := time.Now()
	log := m.logger.WithFields(map[string]interface{}{"sessionId": id}).
		WithFields(observability.TraceFields(ctx))

	result, err := m.apply(ctx, id, evs, log)

	elapsed := time.Since(start)
	metrics.SessionApplyDuration.WithLabelValues(m.store.Name()).Observe(elapsed.Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		m.obs.RecordApply(ctx, elapsed, "error", false)
		log.Warn("event batch rejected", map[string]interface{}{"error": err})
		return nil, err
	}

	span.SetAttributes(attribute.Bool("form.completed", result.State.Completed))
	m.obs.RecordApply(ctx, elapsed, "ok", result.State.Completed)
	log.Debug("event batch applied", map[string]interface{}{
		"events":    len(evs),
		"completed": result.State.Completed,
	})
	return result, nil
}

func (m *Manager) apply(ctx context.Context, id string, evs []events.Event, log logger.Logger) (*ApplyResult, error) {
	state, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	opts := []form.Option{form.WithLogger(log)}
	if m.hook != nil {
		opts = append(opts, form.WithCompletionHook(m.hook))
	}
	c := form.Restore(state, opts...)

	result := &ApplyResult{}
	for _, e := range evs {
		res, err := events.Apply(ctx, c, e)
		if err != nil {
			metrics.SessionEventsApplied.WithLabelValues(string(e.Type), "rejected").Inc()
			return nil, err
		}
		metrics.SessionEventsApplied.WithLabelValues(string(e.Type), "ok").Inc()
		if res != nil {
			result.Submit = res
		}
	}

	result.State = c.State()
	if err := m.store.Put(ctx, id, result.State); err != nil {
		return nil, err
	}
	return result, nil
}

// Close discards the session.
func (m *Manager) Close(ctx context.Context, id string) error {
	unlock := m.locks.Lock(id)
	defer unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	metrics.SessionsActive.Dec()
	m.logger.Info("session closed", map[string]interface{}{"sessionId": id})
	return nil
}
