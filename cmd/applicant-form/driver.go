// cmd/applicant-form/driver.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"applicant-forms/internal/application/events"
	"applicant-forms/internal/application/view"
	apperrors "applicant-forms/internal/common/errors"
	"applicant-forms/internal/common/logger"
	"applicant-forms/internal/session"
)

// driver feeds a JSON-lines event stream into one session and prints the view
// after every submit and once the stream ends.
type driver struct {
	manager  *session.Manager
	reporter *apperrors.Reporter
	logger   logger.Logger
	out      io.Writer
	format   string
}

func (d *driver) run(ctx context.Context, opts options, input io.Reader) error {
	id, err := d.open(ctx, opts)
	if err != nil {
		return err
	}
	log := d.logger.WithFields(map[string]interface{}{"sessionId": id})
	log.Info("session ready", nil)

	reader := events.NewReader(input)
	for {
		if err := ctx.Err(); err != nil {
			log.Warn("stopping before end of input", map[string]interface{}{"reason": err.Error()})
			return nil
		}

		e, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if apperrors.IsCode(err, apperrors.ErrCodeEventDecodeFailed) {
				d.reporter.Report("event skipped", err, map[string]interface{}{"sessionId": id})
				continue
			}
			return fmt.Errorf("read events: %w", err)
		}

		res, err := d.manager.Apply(ctx, id, e)
		if err != nil {
			if apperrors.IsRetryable(err) || apperrors.IsCode(err, apperrors.ErrCodeSessionNotFound) {
				return err
			}
			d.reporter.Report("event rejected", err, map[string]interface{}{
				"sessionId": id,
				"eventType": string(e.Type),
			})
			continue
		}
		if res.Submit != nil {
			if err := view.Render(d.out, view.Project(res.State), d.format); err != nil {
				return err
			}
		}
	}

	state, err := d.manager.State(ctx, id)
	if err != nil {
		return err
	}
	return view.Render(d.out, view.Project(state), d.format)
}

// open resumes opts.sessionID or starts a new session, prefilled from
// opts.valuesPath when given.
func (d *driver) open(ctx context.Context, opts options) (string, error) {
	if opts.sessionID != "" {
		if opts.valuesPath != "" {
			return "", errors.New("-values only applies to new sessions")
		}
		if _, err := d.manager.State(ctx, opts.sessionID); err != nil {
			return "", err
		}
		return opts.sessionID, nil
	}

	id, _, err := d.manager.Start(ctx)
	if err != nil {
		return "", err
	}
	if opts.valuesPath == "" {
		return id, nil
	}

	raw, err := os.ReadFile(opts.valuesPath)
	if err != nil {
		return "", fmt.Errorf("read values: %w", err)
	}
	values, err := events.DecodeValues(raw)
	if err != nil {
		return "", err
	}
	if _, err := d.manager.Apply(ctx, id, events.FromValues(values)...); err != nil {
		return "", err
	}
	return id, nil
}
