package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRandomForest_FitsSeparableData(t *testing.T) {
	x, y := separableData()
	rf := NewRandomForest()
	rf.NEstimators = 20
	require.NoError(t, rf.Fit(x, y, BalancedSampleWeights(y)))

	proba, err := rf.PredictProba(x)
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

func TestRandomForest_FitIsDeterministic(t *testing.T) {
	x, y := separableData()

	a := NewRandomForest()
	a.NEstimators = 10
	require.NoError(t, a.Fit(x, y, nil))
	b := NewRandomForest()
	b.NEstimators = 10
	require.NoError(t, b.Fit(x, y, nil))

	pa, err := a.PredictProba(x)
	require.NoError(t, err)
	pb, err := b.PredictProba(x)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestRandomForest_PredictBeforeFitFails(t *testing.T) {
	rf := NewRandomForest()
	_, err := rf.PredictProba(mat.NewDense(1, 2, []float64{0, 1}))
	assert.Error(t, err)
}

func TestRandomForest_EmptyMatrixFails(t *testing.T) {
	rf := NewRandomForest()
	err := rf.Fit(mat.NewDense(1, 1, []float64{0}), []int{0, 1}, nil)
	assert.Error(t, err)
}
