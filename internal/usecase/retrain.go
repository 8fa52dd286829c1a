package usecase

import (
	"context"
	"log/slog"
	"time"

	"SEOScorer/internal/learning"
	"SEOScorer/internal/ports"
)

// RetrainJob wires the cron-like driver with periodic weight relearning. It
// walks every known workspace and runs the fetch-train-persist cycle; guard
// failures are logged outcomes, not errors.
type RetrainJob struct {
	driver  ports.Scheduler
	learner *learning.WeightLearner
	samples ports.SampleSource
	store   ports.WeightStore
	logger  *slog.Logger
}

// NewRetrainJob returns a helper to start/stop the recurring retrain cycle.
func NewRetrainJob(driver ports.Scheduler, learner *learning.WeightLearner, samples ports.SampleSource, store ports.WeightStore, logger *slog.Logger) *RetrainJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetrainJob{
		driver:  driver,
		learner: learner,
		samples: samples,
		store:   store,
		logger:  logger,
	}
}

// Start registers the retrain cycle with the provided scheduler.
func (j *RetrainJob) Start(ctx context.Context) error {
	if j.driver == nil || j.learner == nil {
		return nil
	}

	job := func(trigger time.Time) {
		j.RunOnce(ctx)
	}

	return j.driver.Start(ctx, job)
}

// RunOnce retrains weights for every workspace immediately.
func (j *RetrainJob) RunOnce(ctx context.Context) {
	if j.samples == nil || j.store == nil {
		return
	}

	workspaces, err := j.store.ListWorkspaces(ctx)
	if err != nil {
		j.logger.Error("list workspaces failed", "error", err)
		return
	}

	for _, workspaceID := range workspaces {
		result := j.learner.AdjustWeights(ctx, workspaceID, j.samples, j.store)
		if result.Success {
			j.logger.Info("workspace weights retrained", "workspace_id", workspaceID)
			continue
		}
		j.logger.Info("workspace retrain skipped",
			"workspace_id", workspaceID, "reason", result.Reason)
	}
}

// Stop gracefully tears down the underlying scheduler.
func (j *RetrainJob) Stop(ctx context.Context) error {
	if j.driver == nil {
		return nil
	}
	return j.driver.Stop(ctx)
}
