// cmd/applicant-form/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"applicant-forms/internal/application/form"
	"applicant-forms/internal/application/view"
	"applicant-forms/internal/common/config"
	"applicant-forms/internal/common/database"
	apperrors "applicant-forms/internal/common/errors"
	"applicant-forms/internal/common/logger"
	"applicant-forms/internal/common/observability"
	"applicant-forms/internal/session"
)

type options struct {
	configPath string
	eventsPath string
	valuesPath string
	sessionID  string
	format     string
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to a config file (default: configs/config.yaml lookup)")
	flag.StringVar(&opts.eventsPath, "events", "-", "JSON-lines event file, - for stdin")
	flag.StringVar(&opts.valuesPath, "values", "", "JSON field values used to prefill a new session")
	flag.StringVar(&opts.sessionID, "session", "", "resume an existing session id (redis store)")
	flag.StringVar(&opts.format, "format", view.FormatText, "view output format: text, json or yaml")
	flag.Parse()

	os.Exit(run(opts, os.Stdout))
}

func run(opts options, stdout io.Writer) int {
	bootLog := logger.New("info", "console", "stderr")

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		bootLog.Error("config load failed", zap.Error(err))
		return 1
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{"app": cfg.App.Name})
	reporter := apperrors.NewReporter(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()
	tracing := observability.NewTracing(cfg.Tracing, cfg.App.Name)
	defer tracing.Shutdown()

	store, health, closeStore, err := buildStore(ctx, cfg, zapLog)
	if err != nil {
		reporter.Report("session store unavailable", err, nil)
		return 1
	}
	defer closeStore()

	manager := session.NewManager(store,
		session.WithLogger(log),
		session.WithObservability(obs),
		session.WithCompletionHook(completionLogger{log: log}),
	)

	input, closeInput, err := openInput(opts.eventsPath)
	if err != nil {
		reporter.Report("cannot open events", err, nil)
		return 1
	}
	defer closeInput()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	if cfg.Metrics.Enabled {
		srv := newServer(cfg.Metrics.Address, health)
		g.Go(func() error {
			log.Info("metrics listener started", map[string]interface{}{"address": cfg.Metrics.Address})
			return srv.listen()
		})
		g.Go(func() error {
			<-gctx.Done()
			return srv.shutdown()
		})
	}

	g.Go(func() error {
		defer cancel()
		d := &driver{
			manager:  manager,
			reporter: reporter,
			logger:   log,
			out:      stdout,
			format:   opts.format,
		}
		return d.run(gctx, opts, input)
	})

	if err := g.Wait(); err != nil {
		reporter.Report("applicant form session failed", err, nil)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// buildStore returns the configured session store, a health check for it and
// a cleanup func.
func buildStore(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) (session.Store, func(context.Context) error, func(), error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		ok := func(context.Context) error { return nil }
		return session.NewMemoryStore(cfg.Session.TTLDuration()), ok, func() {}, nil
	}

	var rc *database.RedisClient
	err := retryWithBackoff(ctx, func() error {
		var err error
		rc, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rc.Ping(ctx)
	}, 5, 500*time.Millisecond, zapLog, "Redis connection")
	if err != nil {
		if rc != nil {
			_ = rc.Close()
		}
		return nil, nil, nil, apperrors.NewSessionStoreError("connect", err)
	}
	zapLog.Info("Redis connected successfully", zap.String("address", cfg.Database.Redis.Address))

	store := session.NewRedisStore(rc.Client, cfg.Session.KeyPrefix, cfg.Session.TTLDuration())
	return store, rc.Ping, func() { _ = rc.Close() }, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// completionLogger records each completed application.
type completionLogger struct {
	log logger.Logger
}

func (c completionLogger) OnComplete(_ context.Context, s form.State) {
	c.log.Info("application completed", map[string]interface{}{
		"fullName": s.Values.FullName,
		"position": string(s.Values.Position),
		"skills":   len(s.Values.Skills),
	})
}

var _ form.CompletionHook = completionLogger{}
