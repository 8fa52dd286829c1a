package corrector

import (
	"context"
	"fmt"
	"log/slog"

	"SEOScorer/internal/domain"
	"SEOScorer/internal/ports"
	"SEOScorer/internal/scoring"
)

// Corrector decides whether scored content may publish, needs regeneration,
// or must escalate to a human. It keeps no state across calls; the attempt
// counter travels inside the caller-owned CorrectionSession.
type Corrector struct {
	scorer    *scoring.Scorer
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// New wires the decision policy; a nil scorer falls back to default weights.
func New(scorer *scoring.Scorer, publisher ports.EventPublisher, logger *slog.Logger) *Corrector {
	if scorer == nil {
		scorer = scoring.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Corrector{scorer: scorer, publisher: publisher, logger: logger}
}

// Input carries everything one decision needs. Signals is optional; it is
// only consulted for issue derivation when the score carries no breakdown.
type Input struct {
	Session domain.CorrectionSession
	Result  domain.ScoreResult
	Signals *domain.SignalSet
}

// Correct runs the decision policy, in order: approve on threshold, escalate
// on exhausted attempts, pass when no issue is identifiable, otherwise
// request regeneration. Emits at most one event; publish failures are logged
// and never change the outcome.
func (c *Corrector) Correct(ctx context.Context, in Input) domain.Decision {
	session := in.Session
	score := in.Result.Score

	if score >= domain.ThresholdApproved {
		c.logger.Info("article approved for publishing",
			"article_id", session.ArticleID, "score", score)
		c.publish(ctx, domain.EventArticleApproved, domain.ApprovedEvent{
			ArticleID: session.ArticleID,
			Score:     score,
			Status:    domain.StatusApproved,
		}, session)
		return domain.Decision{
			Action:    domain.ActionApproved,
			ArticleID: session.ArticleID,
			Score:     score,
			Session:   session,
			Attempt:   session.Attempt,
			Message:   "Article approved for publishing",
		}
	}

	if session.Exhausted() {
		c.logger.Warn("max correction attempts reached, manual review required",
			"article_id", session.ArticleID, "score", score, "attempt", session.Attempt)
		return domain.Decision{
			Action:    domain.ActionManualReviewRequired,
			ArticleID: session.ArticleID,
			Score:     score,
			Session:   session,
			Attempt:   session.Attempt,
			Message:   fmt.Sprintf("Max correction attempts (%d) reached, manual review required", domain.MaxCorrectionAttempts),
		}
	}

	issues := c.identifyIssues(in)
	if len(issues) == 0 {
		c.logger.Info("no identifiable issues to correct",
			"article_id", session.ArticleID, "score", score)
		return domain.Decision{
			Action:    domain.ActionNoIssuesFound,
			ArticleID: session.ArticleID,
			Score:     score,
			Session:   session,
			Attempt:   session.Attempt,
			Message:   "No specific issues identified for correction",
		}
	}

	instructions := scoring.CorrectionInstructions(issues)
	next := session.Next()

	c.logger.Info("requesting correction",
		"article_id", session.ArticleID, "score", score,
		"issues", issues, "attempt", next.Attempt)

	c.publish(ctx, domain.EventArticleGenerateRequest, domain.GenerateRequestEvent{
		ArticleID:         session.ArticleID,
		CorrectionReason:  issues,
		Instructions:      instructions,
		CorrectionAttempt: next.Attempt,
	}, session)

	return domain.Decision{
		Action:       domain.ActionCorrectionRequested,
		ArticleID:    session.ArticleID,
		Score:        score,
		Issues:       issues,
		Instructions: instructions,
		Session:      next,
		Attempt:      next.Attempt,
		Message:      "Correction request sent for regeneration",
	}
}

func (c *Corrector) identifyIssues(in Input) []string {
	if issues := scoring.IssuesFromBreakdown(in.Result.Breakdown); len(issues) > 0 {
		return issues
	}
	if in.Signals != nil {
		return scoring.IdentifyIssues(*in.Signals)
	}
	return nil
}

func (c *Corrector) publish(ctx context.Context, eventType string, payload any, session domain.CorrectionSession) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, eventType, payload, session.WorkspaceID); err != nil {
		c.logger.Warn("event publish failed",
			"event", eventType, "article_id", session.ArticleID, "error", err)
	}
}
