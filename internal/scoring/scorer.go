package scoring

import (
	"fmt"
	"math"

	"SEOScorer/internal/domain"
)

// canonicalChecks lists the ten weighted checklist signals in reporting order,
// paired with the issue id raised when the signal fails.
var canonicalChecks = []struct {
	Signal string
	Issue  string
}{
	{"title_contains_keyword", "missing_keyword_in_title"},
	{"h1_present", "missing_h1"},
	{"h1_contains_keyword", "missing_keyword_in_h1"},
	{"h2_contains_keyword", "missing_keyword_in_h2"},
	{"keyword_density_ok", "keyword_density_issue"},
	{"images_have_alt", "missing_alt_tags"},
	{"word_count_adequate", "low_word_count"},
	{"has_internal_links", "no_internal_links"},
	{"has_external_links", "no_external_links"},
	{"meta_description", "missing_meta_description"},
}

var suggestionsByIssue = map[string]string{
	"missing_keyword_in_title": "Add the main keyword to the page title",
	"missing_h1":               "Add an H1 heading to the page",
	"missing_keyword_in_h1":    "Include the main keyword in the H1 heading",
	"missing_keyword_in_h2":    "Add the main keyword to H2 headings",
	"keyword_density_issue":    fmt.Sprintf("Adjust keyword usage to maintain %.1f-%.0f%% density", domain.MinKeywordDensity, domain.MaxKeywordDensity),
	"missing_alt_tags":         "Add alt text to all images",
	"low_word_count":           fmt.Sprintf("Expand content to %d+ words for better coverage", domain.RecommendedWordCount),
	"no_internal_links":        "Add internal links to related content",
	"no_external_links":        "Add authoritative external references",
	"missing_meta_description": "Add a meta description (150-160 characters)",
}

var instructionsByIssue = map[string]string{
	"missing_keyword_in_title": "Add main keyword to the page title",
	"missing_h1":               "Add an H1 heading that includes the main keyword",
	"missing_keyword_in_h1":    "Include the main keyword in the H1 heading",
	"missing_keyword_in_h2":    "Add main keyword to H2 headings",
	"keyword_density_issue":    fmt.Sprintf("Adjust keyword usage - aim for %.1f-%.0f%% density", domain.MinKeywordDensity, domain.MaxKeywordDensity),
	"missing_alt_tags":         "Add descriptive alt text to all images",
	"low_word_count":           fmt.Sprintf("Expand content to %d+ words", domain.RecommendedWordCount),
	"no_internal_links":        "Add internal links to related content",
	"no_external_links":        "Add authoritative external references",
	"missing_meta_description": "Add a meta description (150-160 characters)",
}

// Scorer converts a signal set into a weighted 0-100 score. The weight table
// is fixed at construction and read-only afterwards, so a Scorer is safe for
// concurrent use.
type Scorer struct {
	weights domain.WeightTable
}

// New returns a scorer with the default checklist weights.
func New() *Scorer {
	return &Scorer{weights: domain.DefaultWeights()}
}

// NewWithWeights returns a scorer over the given table; nil means defaults.
// Validity of the table (positive weights) is the caller's concern.
func NewWithWeights(weights domain.WeightTable) *Scorer {
	if weights == nil {
		return New()
	}
	return &Scorer{weights: weights.Merge(nil)}
}

// FromWorkspaceWeights merges per-workspace overrides onto the default table;
// the override wins per key.
func FromWorkspaceWeights(overrides domain.WeightTable) *Scorer {
	if len(overrides) == 0 {
		return New()
	}
	return &Scorer{weights: domain.DefaultWeights().Merge(overrides)}
}

// Weights returns a copy of the active table.
func (s *Scorer) Weights() domain.WeightTable {
	return s.weights.Merge(nil)
}

// Score computes the weighted score: the share of passing weight over total
// active weight, rounded to the nearest integer. No weights means score 0.
func (s *Scorer) Score(signals domain.SignalSet) int {
	return scoreValue(signals, s.weights)
}

// ScoreWith computes the score against a caller-supplied table instead of the
// configured one.
func (s *Scorer) ScoreWith(signals domain.SignalSet, weights domain.WeightTable) int {
	if weights == nil {
		weights = s.weights
	}
	return scoreValue(signals, weights)
}

func scoreValue(signals domain.SignalSet, weights domain.WeightTable) int {
	checklist := signals.Checklist()

	total, max := 0, 0
	for name, weight := range weights {
		max += weight
		if sig, ok := checklist[name]; ok && sig.IsPassing() {
			total += weight
		}
	}

	if max == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(max) * 100))
}

// DetailedScore adds the per-signal breakdown and derived status to the score.
func (s *Scorer) DetailedScore(signals domain.SignalSet) domain.ScoreResult {
	return s.DetailedScoreWith(signals, nil)
}

// DetailedScoreWith is DetailedScore against a caller-supplied table.
func (s *Scorer) DetailedScoreWith(signals domain.SignalSet, weights domain.WeightTable) domain.ScoreResult {
	if weights == nil {
		weights = s.weights
	}

	checklist := signals.Checklist()
	breakdown := make(map[string]domain.BreakdownItem, len(weights))

	total, max := 0, 0
	for name, weight := range weights {
		max += weight

		var value any
		passed := false
		if sig, ok := checklist[name]; ok {
			value = sig.Raw()
			passed = sig.IsPassing()
		}

		points := 0
		if passed {
			points = weight
			total += weight
		}

		breakdown[name] = domain.BreakdownItem{
			Value:  value,
			Weight: weight,
			Passed: passed,
			Points: points,
		}
	}

	score := 0
	if max > 0 {
		score = int(math.Round(float64(total) / float64(max) * 100))
	}

	return domain.ScoreResult{
		Score:       score,
		TotalPoints: total,
		MaxPoints:   max,
		Breakdown:   breakdown,
		Status:      domain.StatusForScore(score),
	}
}

// IdentifyIssues returns one issue id per failing canonical checklist entry,
// in canonical order, plus low_word_count whenever the raw word count is
// under the recommended minimum (deduplicated).
func IdentifyIssues(signals domain.SignalSet) []string {
	checklist := signals.Checklist()

	var issues []string
	for _, check := range canonicalChecks {
		sig, ok := checklist[check.Signal]
		if !ok || !sig.IsPassing() {
			issues = append(issues, check.Issue)
		}
	}

	if signals.WordCount < domain.RecommendedWordCount && !containsIssue(issues, "low_word_count") {
		issues = append(issues, "low_word_count")
	}

	return issues
}

// IssuesFromBreakdown derives issue ids from a detailed score breakdown, in
// canonical order. Non-checklist weight keys carry no issue id and are
// skipped.
func IssuesFromBreakdown(breakdown map[string]domain.BreakdownItem) []string {
	var issues []string
	for _, check := range canonicalChecks {
		if item, ok := breakdown[check.Signal]; ok && !item.Passed {
			issues = append(issues, check.Issue)
		}
	}
	return issues
}

// IssueForSignal maps a weighted signal name to its issue id.
func IssueForSignal(signal string) (string, bool) {
	for _, check := range canonicalChecks {
		if check.Signal == signal {
			return check.Issue, true
		}
	}
	return "", false
}

// CorrectionSuggestions maps issue ids to remediation advice; unknown ids get
// a generic fallback.
func CorrectionSuggestions(issues []string) []domain.Suggestion {
	suggestions := make([]domain.Suggestion, 0, len(issues))
	for _, issue := range issues {
		text, ok := suggestionsByIssue[issue]
		if !ok {
			text = fmt.Sprintf("Fix: %s", issue)
		}
		suggestions = append(suggestions, domain.Suggestion{Issue: issue, Suggestion: text})
	}
	return suggestions
}

// CorrectionInstructions maps issue ids to regeneration instructions for the
// content generator.
func CorrectionInstructions(issues []string) []string {
	instructions := make([]string, 0, len(issues))
	for _, issue := range issues {
		text, ok := instructionsByIssue[issue]
		if !ok {
			text = fmt.Sprintf("Fix issue: %s", issue)
		}
		instructions = append(instructions, text)
	}
	return instructions
}

func containsIssue(issues []string, issue string) bool {
	for _, existing := range issues {
		if existing == issue {
			return true
		}
	}
	return false
}
