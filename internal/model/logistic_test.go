package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// separableData is a tiny linearly separable problem: positive class sits
// at x=1, negative at x=0.
func separableData() (*mat.Dense, []int) {
	x := mat.NewDense(8, 2, []float64{
		0, 1,
		0.1, 0.9,
		0.05, 1.1,
		0.2, 0.8,
		1, 0,
		0.9, 0.1,
		1.1, 0.05,
		0.8, 0.2,
	})
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}
	return x, y
}

func TestLogisticRegression_FitsSeparableData(t *testing.T) {
	x, y := separableData()
	lr := NewLogisticRegression()
	require.NoError(t, lr.Fit(x, y, BalancedSampleWeights(y)))

	proba, err := lr.PredictProba(x)
	require.NoError(t, err)

	for i, p := range proba {
		assert.InDelta(t, 1.0, p[0]+p[1], 1e-9)
		if y[i] == 1 {
			assert.Greater(t, p[1], 0.5, "row %d", i)
		} else {
			assert.Less(t, p[1], 0.5, "row %d", i)
		}
	}
}

func TestLogisticRegression_PredictBeforeFitFails(t *testing.T) {
	lr := NewLogisticRegression()
	_, err := lr.PredictProba(mat.NewDense(1, 2, []float64{0, 1}))
	assert.Error(t, err)
}

func TestLogisticRegression_DimensionMismatch(t *testing.T) {
	x, y := separableData()
	lr := NewLogisticRegression()
	require.NoError(t, lr.Fit(x, y, nil))

	_, err := lr.PredictProba(mat.NewDense(1, 3, []float64{0, 1, 2}))
	assert.Error(t, err)
}

func TestLogisticRegression_FitIsDeterministic(t *testing.T) {
	x, y := separableData()

	a := NewLogisticRegression()
	require.NoError(t, a.Fit(x, y, nil))
	b := NewLogisticRegression()
	require.NoError(t, b.Fit(x, y, nil))

	assert.Equal(t, a.Weights, b.Weights)
	assert.Equal(t, a.Bias, b.Bias)
}

func TestBalancedSampleWeights_EqualizesClasses(t *testing.T) {
	y := []int{0, 0, 0, 1}
	w := BalancedSampleWeights(y)

	var negSum, posSum float64
	for i, label := range y {
		if label == 1 {
			posSum += w[i]
		} else {
			negSum += w[i]
		}
	}
	assert.InDelta(t, negSum, posSum, 1e-9)
}
