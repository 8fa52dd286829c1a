package scoring

import (
	"math"
	"reflect"
	"testing"

	"SEOScorer/internal/domain"
)

// allPassingSignals returns a set where every canonical checklist entry
// passes comfortably.
func allPassingSignals() domain.SignalSet {
	return domain.SignalSet{
		TitleContainsKeyword: true,
		H1Present:            true,
		H1Count:              1,
		H1ContainsKeyword:    true,
		H2Count:              2,
		H2ContainsKeyword:    true,
		KeywordDensity:       1.5,
		KeywordDensityOK:     true,
		ImagesCount:          3,
		ImagesWithAlt:        3,
		ImagesHaveAlt:        true,
		WordCount:            1200,
		WordCountAdequate:    true,
		InternalLinks:        4,
		ExternalLinks:        2,
		HasInternalLinks:     true,
		HasExternalLinks:     true,
		MetaDescription:      true,
		MetaDescriptionLen:   155,
		TitleLength:          40,
	}
}

// setChecklistSignal flips one canonical signal on a set by name.
func setChecklistSignal(s *domain.SignalSet, name string, passing bool) {
	switch name {
	case "title_contains_keyword":
		s.TitleContainsKeyword = passing
	case "h1_present":
		s.H1Present = passing
	case "h1_contains_keyword":
		s.H1ContainsKeyword = passing
	case "h2_contains_keyword":
		s.H2ContainsKeyword = passing
	case "keyword_density_ok":
		s.KeywordDensityOK = passing
	case "images_have_alt":
		s.ImagesHaveAlt = passing
	case "word_count_adequate":
		s.WordCountAdequate = passing
	case "has_internal_links":
		s.HasInternalLinks = passing
	case "has_external_links":
		s.HasExternalLinks = passing
	case "meta_description":
		s.MetaDescription = passing
	}
}

func TestScoreAllPassing(t *testing.T) {
	t.Parallel()

	scorer := New()
	if got := scorer.Score(allPassingSignals()); got != 100 {
		t.Fatalf("expected score 100, got %d", got)
	}
}

func TestScoreAllFailing(t *testing.T) {
	t.Parallel()

	// Zero value fails everything, including images_have_alt.
	if got := New().Score(domain.SignalSet{}); got != 0 {
		t.Fatalf("expected score 0, got %d", got)
	}
}

func TestScoreEmptyWeightTable(t *testing.T) {
	t.Parallel()

	scorer := NewWithWeights(domain.WeightTable{})
	if got := scorer.Score(allPassingSignals()); got != 0 {
		t.Fatalf("no configured weights must score 0, got %d", got)
	}
}

func TestScoreMonotonic(t *testing.T) {
	t.Parallel()

	scorer := New()

	for _, check := range canonicalChecks {
		signals := domain.SignalSet{}
		before := scorer.Score(signals)

		setChecklistSignal(&signals, check.Signal, true)
		after := scorer.Score(signals)

		if after < before {
			t.Fatalf("flipping %s to passing lowered score: %d -> %d",
				check.Signal, before, after)
		}
	}
}

func TestDetailedScoreBreakdownConsistency(t *testing.T) {
	t.Parallel()

	signals := allPassingSignals()
	signals.TitleContainsKeyword = false
	signals.HasExternalLinks = false

	result := New().DetailedScore(signals)

	sum := 0
	for name, item := range result.Breakdown {
		if item.Passed && item.Points != item.Weight {
			t.Fatalf("%s passed but earned %d of %d points", name, item.Points, item.Weight)
		}
		if !item.Passed && item.Points != 0 {
			t.Fatalf("%s failed but earned %d points", name, item.Points)
		}
		sum += item.Points
	}

	if sum != result.TotalPoints {
		t.Fatalf("breakdown points sum %d != total_points %d", sum, result.TotalPoints)
	}

	derived := int(math.Round(float64(result.TotalPoints) / float64(result.MaxPoints) * 100))
	if derived != result.Score {
		t.Fatalf("derived score %d != reported score %d", derived, result.Score)
	}
}

func TestStatusBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		want  domain.Status
	}{
		{0, domain.StatusNeedsCorrection},
		{59, domain.StatusNeedsCorrection},
		{60, domain.StatusNeedsReview},
		{79, domain.StatusNeedsReview},
		{80, domain.StatusApproved},
		{100, domain.StatusApproved},
	}

	for _, tc := range cases {
		if got := domain.StatusForScore(tc.score); got != tc.want {
			t.Fatalf("StatusForScore(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestScenarioNeedsReview(t *testing.T) {
	t.Parallel()

	signals := allPassingSignals()
	signals.TitleContainsKeyword = false
	signals.WordCountAdequate = false
	signals.WordCount = 250

	result := New().DetailedScore(signals)

	if result.Score != 75 {
		t.Fatalf("expected score 75, got %d", result.Score)
	}
	if result.Status != domain.StatusNeedsReview {
		t.Fatalf("expected needs_review, got %s", result.Status)
	}

	issues := IdentifyIssues(signals)
	want := []string{"missing_keyword_in_title", "low_word_count"}
	if !reflect.DeepEqual(issues, want) {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestIdentifyIssuesCanonicalOrder(t *testing.T) {
	t.Parallel()

	issues := IdentifyIssues(domain.SignalSet{})

	want := []string{
		"missing_keyword_in_title",
		"missing_h1",
		"missing_keyword_in_h1",
		"missing_keyword_in_h2",
		"keyword_density_issue",
		"missing_alt_tags",
		"low_word_count",
		"no_internal_links",
		"no_external_links",
		"missing_meta_description",
	}
	if !reflect.DeepEqual(issues, want) {
		t.Fatalf("unexpected issue order: %v", issues)
	}
}

func TestIdentifyIssuesRecommendedWordCount(t *testing.T) {
	t.Parallel()

	// Adequate (above the minimum) but below the recommended count: the
	// defensive issue is still raised, exactly once.
	signals := allPassingSignals()
	signals.WordCount = 500

	issues := IdentifyIssues(signals)
	if len(issues) != 1 || issues[0] != "low_word_count" {
		t.Fatalf("expected single low_word_count issue, got %v", issues)
	}

	signals.WordCount = 1200
	if issues := IdentifyIssues(signals); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestCorrectionSuggestionsFallback(t *testing.T) {
	t.Parallel()

	suggestions := CorrectionSuggestions([]string{"missing_h1", "mystery_issue"})

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Suggestion != "Add an H1 heading to the page" {
		t.Fatalf("unexpected suggestion: %s", suggestions[0].Suggestion)
	}
	if suggestions[1].Suggestion != "Fix: mystery_issue" {
		t.Fatalf("unknown issue must fall back, got %s", suggestions[1].Suggestion)
	}
}

func TestFromWorkspaceWeights(t *testing.T) {
	t.Parallel()

	scorer := FromWorkspaceWeights(domain.WeightTable{"title_contains_keyword": 50})

	weights := scorer.Weights()
	if weights["title_contains_keyword"] != 50 {
		t.Fatalf("override lost: %d", weights["title_contains_keyword"])
	}
	if weights["meta_description"] != 15 {
		t.Fatalf("default entry clobbered: %d", weights["meta_description"])
	}

	// Any positive override table still scores 100 for an all-passing set.
	if got := scorer.Score(allPassingSignals()); got != 100 {
		t.Fatalf("expected 100 with overrides, got %d", got)
	}
}

func TestScoreWithCallerWeights(t *testing.T) {
	t.Parallel()

	signals := allPassingSignals()
	signals.MetaDescription = false

	result := New().DetailedScoreWith(signals, domain.WeightTable{
		"meta_description": 30,
		"h1_present":       70,
	})

	if result.Score != 70 {
		t.Fatalf("expected score 70, got %d", result.Score)
	}
	if result.MaxPoints != 100 || result.TotalPoints != 70 {
		t.Fatalf("unexpected points: %d/%d", result.TotalPoints, result.MaxPoints)
	}
}
