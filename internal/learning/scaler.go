package learning

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler standardizes features to zero mean and unit variance using
// statistics from the training set. Constant columns keep a unit deviation so
// transformed values stay finite.
type StandardScaler struct {
	mean []float64
	std  []float64
}

// Fit computes per-column mean and standard deviation.
func (s *StandardScaler) Fit(features [][]float64) error {
	if len(features) == 0 {
		return fmt.Errorf("no rows to fit")
	}

	cols := len(features[0])
	s.mean = make([]float64, cols)
	s.std = make([]float64, cols)

	column := make([]float64, len(features))
	for j := 0; j < cols; j++ {
		for i, row := range features {
			column[i] = row[j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		s.mean[j] = mean
		s.std[j] = std
	}
	return nil
}

// Transform standardizes one row with the fitted statistics.
func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if s.mean == nil {
		return nil, fmt.Errorf("scaler is not fitted")
	}
	if len(row) != len(s.mean) {
		return nil, fmt.Errorf("got %d features, want %d", len(row), len(s.mean))
	}

	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.mean[j]) / s.std[j]
	}
	return out, nil
}

// FitTransform fits the scaler and standardizes every row.
func (s *StandardScaler) FitTransform(features [][]float64) ([][]float64, error) {
	if err := s.Fit(features); err != nil {
		return nil, err
	}

	out := make([][]float64, len(features))
	for i, row := range features {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}
