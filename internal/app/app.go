package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"SEOScorer/internal/analyzer"
	"SEOScorer/internal/config"
	"SEOScorer/internal/corrector"
	"SEOScorer/internal/infrastructure/events"
	"SEOScorer/internal/infrastructure/scheduler"
	"SEOScorer/internal/infrastructure/storage"
	"SEOScorer/internal/learning"
	"SEOScorer/internal/logging"
	"SEOScorer/internal/ports"
	"SEOScorer/internal/scoring"
	"SEOScorer/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	gate      *usecase.Gate
	retrain   *usecase.RetrainJob
	publisher *events.RedisPublisher
	db        *sql.DB
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var publisher *events.RedisPublisher
	var eventPort ports.EventPublisher
	if cfg.Events.RedisAddr != "" {
		publisher = events.NewRedisPublisher(cfg.Events.RedisAddr, cfg.Events.RedisPassword, cfg.Events.ChannelPrefix)
		eventPort = publisher
	}

	var db *sql.DB
	if cfg.Database.DSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
	}
	repository := storage.NewPostgresRepository(db)

	scorer := scoring.New()
	gate := usecase.NewGate(usecase.GateDeps{
		Analyzer:  analyzer.New(cfg.Analyzer.InternalDomain),
		Scorer:    scorer,
		Corrector: corrector.New(scorer, eventPort, baseLogger.With("component", "corrector")),
		Logger:    baseLogger.With("component", "gate"),
	})

	learner := learning.NewWeightLearner(baseLogger.With("component", "learner"))
	driver := scheduler.NewCronScheduler(cfg.Retrain.CronExpression, cfg.Retrain.Location())
	retrain := usecase.NewRetrainJob(driver, learner, repository, repository,
		baseLogger.With("component", "retrain"))

	return &Application{
		cfg:       cfg,
		gate:      gate,
		retrain:   retrain,
		publisher: publisher,
		db:        db,
		logger:    baseLogger,
	}, nil
}

// Gate exposes the quality gate for an embedding HTTP surface.
func (a *Application) Gate() *usecase.Gate {
	return a.gate
}

// Run starts the retrain schedule and blocks until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.retrain.Start(ctx); err != nil {
		return fmt.Errorf("start retrain job: %w", err)
	}

	a.logger.Info("seo scorer started",
		"retrain_cron", a.cfg.Retrain.CronExpression)

	<-ctx.Done()
	return a.Close()
}

// Close releases held resources.
func (a *Application) Close() error {
	ctx := context.Background()
	if err := a.retrain.Stop(ctx); err != nil {
		a.logger.Warn("retrain stop failed", "error", err)
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("event publisher close failed", "error", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}
