package domain

// Score thresholds and correction bounds shared by the scorer and corrector.
const (
	ThresholdApproved    = 80
	ThresholdNeedsReview = 60

	MaxCorrectionAttempts = 3

	MinKeywordDensity = 0.5
	MaxKeywordDensity = 3.0

	MinWordCount         = 300
	RecommendedWordCount = 800
)

// Status classifies a score against the fixed publish thresholds.
type Status string

const (
	StatusApproved        Status = "approved"
	StatusNeedsReview     Status = "needs_review"
	StatusNeedsCorrection Status = "needs_correction"
)

// StatusForScore maps a 0-100 score onto its publish status.
func StatusForScore(score int) Status {
	switch {
	case score >= ThresholdApproved:
		return StatusApproved
	case score >= ThresholdNeedsReview:
		return StatusNeedsReview
	default:
		return StatusNeedsCorrection
	}
}

// WeightTable maps signal names to positive integer weights.
type WeightTable map[string]int

// DefaultWeights returns the canonical ten-entry checklist table.
func DefaultWeights() WeightTable {
	return WeightTable{
		"title_contains_keyword": 15,
		"h1_present":             10,
		"h1_contains_keyword":    10,
		"h2_contains_keyword":    5,
		"keyword_density_ok":     10,
		"images_have_alt":        10,
		"word_count_adequate":    10,
		"has_internal_links":     10,
		"has_external_links":     5,
		"meta_description":       15,
	}
}

// Merge returns a copy of the table with overrides applied per key.
func (w WeightTable) Merge(overrides WeightTable) WeightTable {
	merged := make(WeightTable, len(w)+len(overrides))
	for name, weight := range w {
		merged[name] = weight
	}
	for name, weight := range overrides {
		merged[name] = weight
	}
	return merged
}

// BreakdownItem explains how a single weighted signal contributed to a score.
type BreakdownItem struct {
	Value  any  `json:"value"`
	Weight int  `json:"weight"`
	Passed bool `json:"passed"`
	Points int  `json:"points"`
}

// ScoreResult is the ephemeral output of one scoring pass.
type ScoreResult struct {
	Score       int                      `json:"score"`
	TotalPoints int                      `json:"total_points"`
	MaxPoints   int                      `json:"max_points"`
	Breakdown   map[string]BreakdownItem `json:"breakdown"`
	Status      Status                   `json:"status"`
}

// Suggestion pairs an issue id with its remediation advice.
type Suggestion struct {
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}
