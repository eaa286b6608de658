package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is an L2-regularized logistic regression fitted by
// batch gradient descent. C is the inverse regularization strength, same
// convention as the original pipeline (C=0.1 means strong regularization).
type LogisticRegression struct {
	C            float64
	MaxIter      int
	LearningRate float64
	Tolerance    float64

	Weights []float64
	Bias    float64
}

// NewLogisticRegression returns the training-pipeline configuration.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		C:            0.1,
		MaxIter:      500,
		LearningRate: 0.5,
		Tolerance:    1e-6,
	}
}

// Name implements Classifier.
func (lr *LogisticRegression) Name() string { return "logistic_regression" }

// Fit minimizes the weighted log loss plus the L2 penalty.
func (lr *LogisticRegression) Fit(x *mat.Dense, y []int, sampleWeight []float64) error {
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return fmt.Errorf("logistic regression: empty training matrix")
	}
	if len(y) != n {
		return fmt.Errorf("logistic regression: %d rows but %d labels", n, len(y))
	}
	if sampleWeight == nil {
		sampleWeight = make([]float64, n)
		for i := range sampleWeight {
			sampleWeight[i] = 1
		}
	}
	totalWeight := 0.0
	for _, w := range sampleWeight {
		totalWeight += w
	}
	if totalWeight <= 0 {
		return fmt.Errorf("logistic regression: non-positive total sample weight")
	}

	lr.Weights = make([]float64, d)
	lr.Bias = 0
	lambda := 1 / lr.C

	grad := make([]float64, d)
	residual := make([]float64, n)
	prevLoss := math.Inf(1)
	for iter := 0; iter < lr.MaxIter; iter++ {
		loss := 0.0
		for i := 0; i < n; i++ {
			p := sigmoid(lr.decision(x.RawRowView(i)))
			target := float64(y[i])
			residual[i] = sampleWeight[i] * (p - target)
			loss -= sampleWeight[i] * (target*math.Log(clampProb(p)) + (1-target)*math.Log(clampProb(1-p)))
		}
		for j := range grad {
			grad[j] = 0
		}
		gradBias := 0.0
		for i := 0; i < n; i++ {
			row := x.RawRowView(i)
			r := residual[i]
			for j, v := range row {
				grad[j] += r * v
			}
			gradBias += r
		}
		for j := range grad {
			grad[j] = grad[j]/totalWeight + lambda*lr.Weights[j]/totalWeight
			loss += lambda * lr.Weights[j] * lr.Weights[j] / 2
		}
		for j := range lr.Weights {
			lr.Weights[j] -= lr.LearningRate * grad[j]
		}
		lr.Bias -= lr.LearningRate * gradBias / totalWeight

		loss /= totalWeight
		if math.Abs(prevLoss-loss) < lr.Tolerance {
			break
		}
		prevLoss = loss
	}
	return nil
}

// PredictProba implements Classifier.
func (lr *LogisticRegression) PredictProba(x *mat.Dense) ([][2]float64, error) {
	n, d := x.Dims()
	if len(lr.Weights) == 0 {
		return nil, fmt.Errorf("logistic regression is not fitted")
	}
	if d != len(lr.Weights) {
		return nil, fmt.Errorf("logistic regression: matrix has %d features, model has %d", d, len(lr.Weights))
	}
	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		p := sigmoid(lr.decision(x.RawRowView(i)))
		out[i] = [2]float64{1 - p, p}
	}
	return out, nil
}

func (lr *LogisticRegression) decision(row []float64) float64 {
	z := lr.Bias
	for j, v := range row {
		z += lr.Weights[j] * v
	}
	return z
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func clampProb(p float64) float64 {
	const eps = 1e-12
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}
