// Package model implements the classifiers fitted by the training pipeline
// and the scorer artifact loaded by the serving path.
package model

import "gonum.org/v1/gonum/mat"

// Classifier is a binary classifier over a numeric feature matrix.
// Probabilities are returned as [P(negative), P(positive)] per row.
type Classifier interface {
	Fit(x *mat.Dense, y []int, sampleWeight []float64) error
	PredictProba(x *mat.Dense) ([][2]float64, error)
	Name() string
}

// BalancedSampleWeights computes class-balanced per-row weights: each class
// contributes equally to the loss regardless of label imbalance,
// weight = n / (classes * count(class)).
func BalancedSampleWeights(y []int) []float64 {
	counts := [2]float64{}
	for _, label := range y {
		counts[label]++
	}
	n := float64(len(y))
	weights := make([]float64, len(y))
	for i, label := range y {
		if counts[label] > 0 {
			weights[i] = n / (2 * counts[label])
		}
	}
	return weights
}
