package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"SEOScorer/internal/domain"
)

// EventPublisher pushes engine events to downstream consumers. Delivery is
// best-effort; callers log failures and never let them alter a decision.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any, workspaceID uuid.UUID) error
}

// SampleSource yields historical (checklist, avg position) pairs per workspace
// for weight retraining.
type SampleSource interface {
	FetchSamples(ctx context.Context, workspaceID uuid.UUID) ([]domain.TrainingSample, error)
}

// WeightStore persists learned weight tables; written only after a training
// run succeeds.
type WeightStore interface {
	SaveWeights(ctx context.Context, workspaceID uuid.UUID, weights domain.WeightTable) error
	LoadWeights(ctx context.Context, workspaceID uuid.UUID) (domain.WeightTable, error)
	ListWorkspaces(ctx context.Context) ([]uuid.UUID, error)
}

// Scheduler controls when the retrain job executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
