package learning

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Classifier is the minimal contract the weight learner needs from a binary
// classification model: fit on labeled rows, predict the positive-class
// probability for a row, and expose per-feature coefficients for weight
// derivation.
type Classifier interface {
	Fit(features [][]float64, labels []int) error
	PredictProba(features []float64) (float64, error)
	Coefficients() []float64
}

// LogisticRegression is a class-balanced binary logistic model trained with
// batch gradient descent.
type LogisticRegression struct {
	LearningRate float64
	MaxIter      int
	Tolerance    float64

	coef []float64
	bias float64
}

var _ Classifier = (*LogisticRegression)(nil)

// NewLogisticRegression returns a model with the default hyperparameters.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		LearningRate: 0.1,
		MaxIter:      1000,
		Tolerance:    1e-6,
	}
}

// Fit trains the model. Labels must be 0 or 1 and both classes must be
// present; samples are weighted inversely to class frequency so a skewed
// outcome distribution does not dominate the fit.
func (m *LogisticRegression) Fit(features [][]float64, labels []int) error {
	rows := len(features)
	if rows == 0 {
		return fmt.Errorf("no training rows")
	}
	if rows != len(labels) {
		return fmt.Errorf("feature rows (%d) and labels (%d) differ", rows, len(labels))
	}
	cols := len(features[0])
	if cols == 0 {
		return fmt.Errorf("no features")
	}

	positives := 0
	for _, label := range labels {
		if label != 0 && label != 1 {
			return fmt.Errorf("label %d is not binary", label)
		}
		positives += label
	}
	negatives := rows - positives
	if positives == 0 || negatives == 0 {
		return fmt.Errorf("training labels contain a single class")
	}

	// Balanced sample weights: n / (2 * n_class).
	posWeight := float64(rows) / (2 * float64(positives))
	negWeight := float64(rows) / (2 * float64(negatives))

	x := mat.NewDense(rows, cols, nil)
	for i, row := range features {
		if len(row) != cols {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), cols)
		}
		x.SetRow(i, row)
	}

	coef := make([]float64, cols)
	bias := 0.0
	grad := make([]float64, cols)

	for iter := 0; iter < m.MaxIter; iter++ {
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0

		for i := 0; i < rows; i++ {
			row := x.RawRowView(i)
			p := sigmoid(floats.Dot(coef, row) + bias)

			sampleWeight := negWeight
			if labels[i] == 1 {
				sampleWeight = posWeight
			}
			residual := sampleWeight * (p - float64(labels[i]))

			floats.AddScaled(grad, residual, row)
			gradBias += residual
		}

		scale := m.LearningRate / float64(rows)
		floats.AddScaled(coef, -scale, grad)
		bias -= scale * gradBias

		if math.Max(floats.Norm(grad, math.Inf(1)), math.Abs(gradBias))/float64(rows) < m.Tolerance {
			break
		}
	}

	m.coef = coef
	m.bias = bias
	return nil
}

// PredictProba returns the probability of the positive class for one row.
func (m *LogisticRegression) PredictProba(features []float64) (float64, error) {
	if m.coef == nil {
		return 0, fmt.Errorf("model is not fitted")
	}
	if len(features) != len(m.coef) {
		return 0, fmt.Errorf("got %d features, want %d", len(features), len(m.coef))
	}
	return sigmoid(floats.Dot(m.coef, features) + m.bias), nil
}

// Coefficients returns a copy of the fitted per-feature coefficients.
func (m *LogisticRegression) Coefficients() []float64 {
	if m.coef == nil {
		return nil
	}
	out := make([]float64, len(m.coef))
	copy(out, m.coef)
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
