package learning

import (
	"context"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"SEOScorer/internal/domain"
	"SEOScorer/internal/ports"
	"SEOScorer/internal/scoring"
)

// FeatureNames fixes the order of the canonical checklist signals in every
// training vector; weight derivation relies on this order matching the
// classifier's coefficient order.
var FeatureNames = []string{
	"title_contains_keyword",
	"h1_present",
	"h1_contains_keyword",
	"h2_contains_keyword",
	"keyword_density_ok",
	"images_have_alt",
	"word_count_adequate",
	"has_internal_links",
	"has_external_links",
	"meta_description",
}

// Training guard reasons. These are outcomes, not errors: a periodic retrain
// loop inspects the reason and moves on.
const (
	ReasonInsufficientData      = "insufficient_data"
	ReasonInsufficientValidData = "insufficient_valid_data"
	ReasonSingleClassData       = "single_class_data"
	ReasonNoArticles            = "no_articles"
	ReasonTrainingFailed        = "training_failed"
	ReasonError                 = "error"
)

// TrainingResult reports one training run. Success false with a reason never
// mutates the learner's current model.
type TrainingResult struct {
	Success        bool               `json:"success"`
	Reason         string             `json:"reason,omitempty"`
	Samples        int                `json:"samples,omitempty"`
	ValidSamples   int                `json:"valid_samples,omitempty"`
	Required       int                `json:"required,omitempty"`
	SamplesUsed    int                `json:"samples_used,omitempty"`
	LearnedWeights domain.WeightTable `json:"learned_weights,omitempty"`
	Accuracy       float64            `json:"model_accuracy,omitempty"`
	GoodRankings   int                `json:"good_rankings"`
	PoorRankings   int                `json:"poor_rankings"`
}

// TrainedModel is the learner's classifier state, replaced wholesale on each
// successful retrain.
type TrainedModel struct {
	Classifier Classifier
	Scaler     *StandardScaler
	Weights    domain.WeightTable
	Accuracy   float64
}

// AdjustResult reports one fetch-train-persist cycle for a workspace.
type AdjustResult struct {
	Success     bool               `json:"success"`
	Reason      string             `json:"reason,omitempty"`
	WorkspaceID uuid.UUID          `json:"workspace_id"`
	NewWeights  domain.WeightTable `json:"new_weights,omitempty"`
	Training    *TrainingResult    `json:"training_details,omitempty"`
}

// WeightLearner derives scoring weights from historical ranking outcomes. It
// is meant for an out-of-band periodic job, never the request path.
type WeightLearner struct {
	newClassifier func() Classifier
	logger        *slog.Logger
	model         *TrainedModel
}

// NewWeightLearner builds a learner backed by logistic regression.
func NewWeightLearner(logger *slog.Logger) *WeightLearner {
	return NewWeightLearnerWithClassifier(func() Classifier { return NewLogisticRegression() }, logger)
}

// NewWeightLearnerWithClassifier allows swapping the model implementation.
func NewWeightLearnerWithClassifier(factory func() Classifier, logger *slog.Logger) *WeightLearner {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeightLearner{newClassifier: factory, logger: logger}
}

// Train fits a fresh classifier on the samples. Guards run in order:
// insufficient raw samples, insufficient valid samples, single outcome class.
// Only a fully successful run replaces the current model.
func (l *WeightLearner) Train(samples []domain.TrainingSample, rankingThreshold float64) TrainingResult {
	if rankingThreshold <= 0 {
		rankingThreshold = domain.DefaultRankingThreshold
	}

	if len(samples) < domain.MinTrainingSamples {
		l.logger.Warn("not enough samples for training",
			"samples", len(samples), "required", domain.MinTrainingSamples)
		return TrainingResult{
			Reason:   ReasonInsufficientData,
			Samples:  len(samples),
			Required: domain.MinTrainingSamples,
		}
	}

	var (
		features [][]float64
		labels   []int
	)
	for _, sample := range samples {
		if !sample.Valid() {
			continue
		}
		features = append(features, featureVector(sample.Checklist))
		if *sample.AvgPosition < rankingThreshold {
			labels = append(labels, 1)
		} else {
			labels = append(labels, 0)
		}
	}

	if len(features) < domain.MinTrainingSamples {
		return TrainingResult{
			Reason:       ReasonInsufficientValidData,
			ValidSamples: len(features),
			Required:     domain.MinTrainingSamples,
		}
	}

	good, poor := 0, 0
	for _, label := range labels {
		if label == 1 {
			good++
		} else {
			poor++
		}
	}
	if good == 0 || poor == 0 {
		l.logger.Warn("training data has only one outcome class",
			"good_rankings", good, "poor_rankings", poor)
		return TrainingResult{
			Reason:       ReasonSingleClassData,
			GoodRankings: good,
			PoorRankings: poor,
		}
	}

	scaler := &StandardScaler{}
	scaled, err := scaler.FitTransform(features)
	if err != nil {
		return TrainingResult{Reason: ReasonTrainingFailed}
	}

	clf := l.newClassifier()
	if err := clf.Fit(scaled, labels); err != nil {
		l.logger.Warn("classifier fit failed", "error", err)
		return TrainingResult{Reason: ReasonTrainingFailed}
	}

	weights := weightsFromCoefficients(clf.Coefficients())
	accuracy := trainingAccuracy(clf, scaled, labels)

	l.model = &TrainedModel{
		Classifier: clf,
		Scaler:     scaler,
		Weights:    weights,
		Accuracy:   accuracy,
	}

	l.logger.Info("model trained",
		"samples_used", len(features), "accuracy", accuracy,
		"good_rankings", good, "poor_rankings", poor)

	return TrainingResult{
		Success:        true,
		SamplesUsed:    len(features),
		LearnedWeights: weights.Merge(nil),
		Accuracy:       accuracy,
		GoodRankings:   good,
		PoorRankings:   poor,
	}
}

// AdjustWeights fetches a workspace's samples, trains, and persists the new
// table only when training succeeds. Every failure path performs no write.
func (l *WeightLearner) AdjustWeights(ctx context.Context, workspaceID uuid.UUID, source ports.SampleSource, store ports.WeightStore) AdjustResult {
	samples, err := source.FetchSamples(ctx, workspaceID)
	if err != nil {
		l.logger.Error("fetch samples failed", "workspace_id", workspaceID, "error", err)
		return AdjustResult{Reason: ReasonError, WorkspaceID: workspaceID}
	}

	if len(samples) == 0 {
		return AdjustResult{Reason: ReasonNoArticles, WorkspaceID: workspaceID}
	}

	result := l.Train(samples, domain.DefaultRankingThreshold)
	if !result.Success {
		return AdjustResult{Reason: result.Reason, WorkspaceID: workspaceID, Training: &result}
	}

	if err := store.SaveWeights(ctx, workspaceID, result.LearnedWeights); err != nil {
		l.logger.Error("persist learned weights failed", "workspace_id", workspaceID, "error", err)
		return AdjustResult{Reason: ReasonError, WorkspaceID: workspaceID, Training: &result}
	}

	l.logger.Info("updated workspace weights",
		"workspace_id", workspaceID, "weights", result.LearnedWeights)

	return AdjustResult{
		Success:     true,
		WorkspaceID: workspaceID,
		NewWeights:  result.LearnedWeights,
		Training:    &result,
	}
}

// PredictRankingProbability returns the good-ranking probability for the
// signals under the last trained model; ok is false when no model exists.
func (l *WeightLearner) PredictRankingProbability(signals domain.SignalSet) (float64, bool) {
	if l.model == nil {
		return 0, false
	}

	checklist := make(map[string]bool, len(FeatureNames))
	for name, sig := range signals.Checklist() {
		checklist[name] = sig.IsPassing()
	}

	scaled, err := l.model.Scaler.Transform(featureVector(checklist))
	if err != nil {
		return 0, false
	}

	p, err := l.model.Classifier.PredictProba(scaled)
	if err != nil {
		return 0, false
	}
	return p, true
}

// ScorerWithLearnedWeights returns a scorer over the last learned table, or
// one with defaults when nothing has been trained yet.
func (l *WeightLearner) ScorerWithLearnedWeights() *scoring.Scorer {
	if l.model == nil {
		return scoring.New()
	}
	return scoring.NewWithWeights(l.model.Weights)
}

// LearnedWeights returns the last learned table; ok is false before the first
// successful training run.
func (l *WeightLearner) LearnedWeights() (domain.WeightTable, bool) {
	if l.model == nil {
		return nil, false
	}
	return l.model.Weights.Merge(nil), true
}

// Model exposes the current trained state, mainly for inspection.
func (l *WeightLearner) Model() *TrainedModel {
	return l.model
}

func featureVector(checklist map[string]bool) []float64 {
	vec := make([]float64, len(FeatureNames))
	for i, name := range FeatureNames {
		if checklist[name] {
			vec[i] = 1
		}
	}
	return vec
}

// weightsFromCoefficients maps |coefficient| shares onto integer weights
// summing to roughly 100, flooring each at 1 so a learned table never zeroes
// out a signal. Zero coefficients across the board fall back to an equal
// split.
func weightsFromCoefficients(coefficients []float64) domain.WeightTable {
	total := 0.0
	for _, c := range coefficients {
		total += math.Abs(c)
	}

	weights := make(domain.WeightTable, len(FeatureNames))
	if total == 0 {
		equal := 100 / len(FeatureNames)
		for _, name := range FeatureNames {
			weights[name] = equal
		}
		return weights
	}

	for i, name := range FeatureNames {
		w := int(math.Abs(coefficients[i]) / total * 100)
		if w < 1 {
			w = 1
		}
		weights[name] = w
	}
	return weights
}

func trainingAccuracy(clf Classifier, features [][]float64, labels []int) float64 {
	if len(features) == 0 {
		return 0
	}

	correct := 0
	for i, row := range features {
		p, err := clf.PredictProba(row)
		if err != nil {
			return 0
		}
		predicted := 0
		if p >= 0.5 {
			predicted = 1
		}
		if predicted == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(features))
}
