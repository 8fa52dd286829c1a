package usecase

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	"SEOScorer/internal/corrector"
	"SEOScorer/internal/domain"
)

type publishedEvent struct {
	eventType   string
	payload     any
	workspaceID uuid.UUID
}

type capturingPublisher struct {
	events []publishedEvent
}

func (p *capturingPublisher) Publish(_ context.Context, eventType string, payload any, workspaceID uuid.UUID) error {
	p.events = append(p.events, publishedEvent{eventType, payload, workspaceID})
	return nil
}

// strongDocument builds markup that passes every checklist signal for the
// keyword "coffee".
func strongDocument() string {
	filler := strings.Repeat("quality roast flavor aroma brewing method water temperature grind size ", 31)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<title>Coffee Brewing Guide</title>
<meta name="description" content="A practical guide to brewing better coffee at home.">
</head>
<body>
<h1>Best Coffee Guide</h1>
<h2>Coffee Brewing Tips</h2>
<p>Coffee lovers know that great coffee starts with fresh beans.</p>
<p>%s</p>
<img src="beans.jpg" alt="coffee beans">
<a href="/guides/grinders">grinder guide</a>
<a href="https://example.org/water-quality">water quality report</a>
</body>
</html>`, filler)
}

func TestAutoScoreStrongDocument(t *testing.T) {
	t.Parallel()

	gate := NewGate(GateDeps{})
	report := gate.AutoScore(strongDocument(), []string{"coffee"})

	if report.Score != 100 {
		t.Fatalf("Score = %d, want 100; issues: %v", report.Score, report.Issues)
	}
	if report.Status != domain.StatusApproved {
		t.Fatalf("Status = %q, want %q", report.Status, domain.StatusApproved)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("Issues = %v, want none", report.Issues)
	}
	if len(report.Suggestions) != 0 {
		t.Fatalf("Suggestions = %v, want none", report.Suggestions)
	}
	if report.DetailedScore.TotalPoints != report.DetailedScore.MaxPoints {
		t.Fatalf("TotalPoints = %d, MaxPoints = %d, want equal",
			report.DetailedScore.TotalPoints, report.DetailedScore.MaxPoints)
	}
}

func TestAutoScoreEmptyDocument(t *testing.T) {
	t.Parallel()

	gate := NewGate(GateDeps{})
	report := gate.AutoScore("", nil)

	// Only images_have_alt passes vacuously, worth 10 of 100 points.
	if report.Score != 10 {
		t.Fatalf("Score = %d, want 10", report.Score)
	}
	if report.Status != domain.StatusNeedsCorrection {
		t.Fatalf("Status = %q, want %q", report.Status, domain.StatusNeedsCorrection)
	}
	if report.Analysis.WordCount != 0 {
		t.Fatalf("WordCount = %v, want 0", report.Analysis.WordCount)
	}
	if report.Analysis.H1Present {
		t.Fatal("H1Present = true, want false")
	}
	if !report.Analysis.ImagesHaveAlt {
		t.Fatal("ImagesHaveAlt = false, want true")
	}

	wantIssues := []string{
		"missing_keyword_in_title",
		"missing_h1",
		"missing_keyword_in_h1",
		"missing_keyword_in_h2",
		"keyword_density_issue",
		"low_word_count",
		"no_internal_links",
		"no_external_links",
		"missing_meta_description",
	}
	if !reflect.DeepEqual(report.Issues, wantIssues) {
		t.Fatalf("Issues = %v, want %v", report.Issues, wantIssues)
	}
	if len(report.Suggestions) != len(wantIssues) {
		t.Fatalf("got %d suggestions, want %d", len(report.Suggestions), len(wantIssues))
	}
}

func TestScoreWithWeights(t *testing.T) {
	t.Parallel()

	gate := NewGate(GateDeps{})
	signals := gate.Analyze(strongDocument(), []string{"coffee"})

	result := gate.ScoreWithWeights(signals, domain.WeightTable{
		"title_contains_keyword": 30,
		"h1_present":             70,
	})

	if result.Score != 100 {
		t.Fatalf("Score = %d, want 100", result.Score)
	}
	if result.MaxPoints != 100 {
		t.Fatalf("MaxPoints = %d, want 100", result.MaxPoints)
	}
	if len(result.Breakdown) != 2 {
		t.Fatalf("got %d breakdown entries, want 2", len(result.Breakdown))
	}
}

func TestGateWeightsDefault(t *testing.T) {
	t.Parallel()

	gate := NewGate(GateDeps{})
	if !reflect.DeepEqual(gate.Weights(), domain.DefaultWeights()) {
		t.Fatalf("Weights = %v, want defaults", gate.Weights())
	}
}

func TestEvaluateAndCorrectRequestsRegeneration(t *testing.T) {
	t.Parallel()

	publisher := &capturingPublisher{}
	gate := NewGate(GateDeps{Corrector: corrector.New(nil, publisher, nil)})

	session := domain.CorrectionSession{
		ArticleID:   "article-7",
		WorkspaceID: uuid.MustParse("f2b7a1a0-0000-4000-8000-000000000002"),
		Attempt:     0,
	}

	decision := gate.EvaluateAndCorrect(context.Background(), session, "<html><body><p>too short</p></body></html>", []string{"coffee"})

	if decision.Action != domain.ActionCorrectionRequested {
		t.Fatalf("Action = %q, want %q", decision.Action, domain.ActionCorrectionRequested)
	}
	if decision.Attempt != 1 {
		t.Fatalf("Attempt = %d, want 1", decision.Attempt)
	}
	if len(decision.Issues) == 0 {
		t.Fatal("expected issues on a weak document")
	}

	if len(publisher.events) != 1 {
		t.Fatalf("got %d events, want 1", len(publisher.events))
	}
	if publisher.events[0].eventType != domain.EventArticleGenerateRequest {
		t.Fatalf("event type = %q, want %q",
			publisher.events[0].eventType, domain.EventArticleGenerateRequest)
	}
}

func TestEvaluateAndCorrectApproves(t *testing.T) {
	t.Parallel()

	publisher := &capturingPublisher{}
	gate := NewGate(GateDeps{Corrector: corrector.New(nil, publisher, nil)})

	session := domain.CorrectionSession{
		ArticleID:   "article-8",
		WorkspaceID: uuid.MustParse("f2b7a1a0-0000-4000-8000-000000000003"),
		Attempt:     2,
	}

	decision := gate.EvaluateAndCorrect(context.Background(), session, strongDocument(), []string{"coffee"})

	if decision.Action != domain.ActionApproved {
		t.Fatalf("Action = %q, want %q", decision.Action, domain.ActionApproved)
	}
	if decision.Score != 100 {
		t.Fatalf("Score = %d, want 100", decision.Score)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("got %d events, want 1", len(publisher.events))
	}
	if publisher.events[0].eventType != domain.EventArticleApproved {
		t.Fatalf("event type = %q, want %q",
			publisher.events[0].eventType, domain.EventArticleApproved)
	}
}
