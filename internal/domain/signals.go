package domain

// Signal is one named SEO observation extracted from content. A signal either
// passes or fails; the concrete variant decides what counts as passing.
type Signal interface {
	IsPassing() bool
	Raw() any
}

// BooleanSignal passes when true (e.g. h1_present).
type BooleanSignal bool

// IsPassing reports whether the check succeeded.
func (s BooleanSignal) IsPassing() bool { return bool(s) }

// Raw returns the underlying value for score breakdowns.
func (s BooleanSignal) Raw() any { return bool(s) }

// CountSignal passes when strictly positive (e.g. internal_links).
type CountSignal float64

// IsPassing reports whether the measured quantity is positive.
func (s CountSignal) IsPassing() bool { return float64(s) > 0 }

// Raw returns the underlying value for score breakdowns.
func (s CountSignal) Raw() any { return float64(s) }

// SignalSet is the complete fixed extraction result for one document. It is
// created per analyze call and never retained or mutated by the engine.
type SignalSet struct {
	TitleContainsKeyword bool    `json:"title_contains_keyword"`
	H1Present            bool    `json:"h1_present"`
	H1Count              int     `json:"h1_count"`
	H1ContainsKeyword    bool    `json:"h1_contains_keyword"`
	H2Count              int     `json:"h2_count"`
	H2ContainsKeyword    bool    `json:"h2_contains_keyword"`
	KeywordDensity       float64 `json:"keyword_density"`
	KeywordDensityOK     bool    `json:"keyword_density_ok"`
	ImagesCount          int     `json:"images_count"`
	ImagesWithAlt        int     `json:"images_with_alt"`
	ImagesWithoutAlt     int     `json:"images_without_alt"`
	ImagesHaveAlt        bool    `json:"images_have_alt"`
	WordCount            int     `json:"word_count"`
	WordCountAdequate    bool    `json:"word_count_adequate"`
	InternalLinks        int     `json:"internal_links"`
	ExternalLinks        int     `json:"external_links"`
	HasInternalLinks     bool    `json:"has_internal_links"`
	HasExternalLinks     bool    `json:"has_external_links"`
	MetaDescription      bool    `json:"meta_description"`
	MetaDescriptionLen   int     `json:"meta_description_length"`
	TitleLength          int     `json:"title_length"`
}

// EmptySignalSet is the well-defined baseline for an empty document. Zero
// images means nothing is missing alt text, so that check passes.
func EmptySignalSet() SignalSet {
	return SignalSet{ImagesHaveAlt: true}
}

// Checklist exposes every signal by its canonical name so scoring can resolve
// arbitrary weight-table keys against the set. Names absent from the map are
// treated as failing by the scorer.
func (s SignalSet) Checklist() map[string]Signal {
	return map[string]Signal{
		"title_contains_keyword":  BooleanSignal(s.TitleContainsKeyword),
		"h1_present":              BooleanSignal(s.H1Present),
		"h1_count":                CountSignal(s.H1Count),
		"h1_contains_keyword":     BooleanSignal(s.H1ContainsKeyword),
		"h2_count":                CountSignal(s.H2Count),
		"h2_contains_keyword":     BooleanSignal(s.H2ContainsKeyword),
		"keyword_density":         CountSignal(s.KeywordDensity),
		"keyword_density_ok":      BooleanSignal(s.KeywordDensityOK),
		"images_count":            CountSignal(s.ImagesCount),
		"images_with_alt":         CountSignal(s.ImagesWithAlt),
		"images_without_alt":      CountSignal(s.ImagesWithoutAlt),
		"images_have_alt":         BooleanSignal(s.ImagesHaveAlt),
		"word_count":              CountSignal(s.WordCount),
		"word_count_adequate":     BooleanSignal(s.WordCountAdequate),
		"internal_links":          CountSignal(s.InternalLinks),
		"external_links":          CountSignal(s.ExternalLinks),
		"has_internal_links":      BooleanSignal(s.HasInternalLinks),
		"has_external_links":      BooleanSignal(s.HasExternalLinks),
		"meta_description":        BooleanSignal(s.MetaDescription),
		"meta_description_length": CountSignal(s.MetaDescriptionLen),
		"title_length":            CountSignal(s.TitleLength),
	}
}
