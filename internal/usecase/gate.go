package usecase

import (
	"context"
	"log/slog"

	"SEOScorer/internal/analyzer"
	"SEOScorer/internal/corrector"
	"SEOScorer/internal/domain"
	"SEOScorer/internal/scoring"
)

// GateDeps wires the engine components into the quality gate.
type GateDeps struct {
	Analyzer  *analyzer.Analyzer
	Scorer    *scoring.Scorer
	Corrector *corrector.Corrector
	Logger    *slog.Logger
}

// Gate is the content-quality gate: it composes feature extraction, scoring
// and the correction policy for callers holding raw markup. All methods are
// stateless and safe under concurrent use.
type Gate struct {
	analyzer  *analyzer.Analyzer
	scorer    *scoring.Scorer
	corrector *corrector.Corrector
	logger    *slog.Logger
}

// NewGate constructs the gate; missing deps fall back to defaults.
func NewGate(deps GateDeps) *Gate {
	if deps.Analyzer == nil {
		deps.Analyzer = analyzer.New("")
	}
	if deps.Scorer == nil {
		deps.Scorer = scoring.New()
	}
	if deps.Corrector == nil {
		deps.Corrector = corrector.New(deps.Scorer, nil, deps.Logger)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Gate{
		analyzer:  deps.Analyzer,
		scorer:    deps.Scorer,
		corrector: deps.Corrector,
		logger:    deps.Logger,
	}
}

// Report bundles one full scoring pass for an external surface to return
// verbatim.
type Report struct {
	Score         int                 `json:"score"`
	Status        domain.Status       `json:"status"`
	Analysis      domain.SignalSet    `json:"analysis"`
	DetailedScore domain.ScoreResult  `json:"detailed_score"`
	Issues        []string            `json:"issues"`
	Suggestions   []domain.Suggestion `json:"suggestions"`
}

// Analyze extracts the signal set without scoring.
func (g *Gate) Analyze(htmlContent string, targetKeywords []string) domain.SignalSet {
	return g.analyzer.Analyze(htmlContent, targetKeywords)
}

// AutoScore analyzes and scores markup, returning the score, status, full
// analysis, breakdown, issues and suggestions in one pass.
func (g *Gate) AutoScore(htmlContent string, targetKeywords []string) Report {
	signals := g.analyzer.Analyze(htmlContent, targetKeywords)
	detailed := g.scorer.DetailedScore(signals)
	issues := scoring.IdentifyIssues(signals)

	g.logger.Debug("auto score computed",
		"score", detailed.Score, "status", detailed.Status, "issues", len(issues))

	return Report{
		Score:         detailed.Score,
		Status:        detailed.Status,
		Analysis:      signals,
		DetailedScore: detailed,
		Issues:        issues,
		Suggestions:   scoring.CorrectionSuggestions(issues),
	}
}

// ScoreWithWeights scores a pre-computed analysis against a caller-supplied
// weight table.
func (g *Gate) ScoreWithWeights(signals domain.SignalSet, weights domain.WeightTable) domain.ScoreResult {
	return g.scorer.DetailedScoreWith(signals, weights)
}

// Weights exposes the gate's active weight table.
func (g *Gate) Weights() domain.WeightTable {
	return g.scorer.Weights()
}

// EvaluateAndCorrect analyzes and scores markup, then runs the correction
// policy for the session. The caller owns the attempt counter and must
// serialize concurrent sessions for the same article.
func (g *Gate) EvaluateAndCorrect(ctx context.Context, session domain.CorrectionSession, htmlContent string, targetKeywords []string) domain.Decision {
	signals := g.analyzer.Analyze(htmlContent, targetKeywords)
	detailed := g.scorer.DetailedScore(signals)

	return g.corrector.Correct(ctx, corrector.Input{
		Session: session,
		Result:  detailed,
		Signals: &signals,
	})
}
