package domain

// TrainingSample pairs one article's historical checklist values with its
// observed average search position. Samples missing either side are discarded
// by the learner before training.
type TrainingSample struct {
	Checklist   map[string]bool
	AvgPosition *float64
}

// Valid reports whether the sample carries both a checklist and an outcome.
func (s TrainingSample) Valid() bool {
	return len(s.Checklist) > 0 && s.AvgPosition != nil
}

// Learner guard bounds.
const (
	MinTrainingSamples      = 10
	DefaultRankingThreshold = 10.0
)
