package model

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// RandomForest is a bagged ensemble of depth-limited CART trees with
// per-tree bootstrap resampling and sqrt(d) feature subsampling.
type RandomForest struct {
	NEstimators int
	MaxDepth    int
	Seed        int64

	Trees []*DecisionTree
}

// NewRandomForest returns the training-pipeline configuration: 100 trees of
// depth 10.
func NewRandomForest() *RandomForest {
	return &RandomForest{NEstimators: 100, MaxDepth: 10, Seed: 42}
}

// Name implements Classifier.
func (rf *RandomForest) Name() string { return "random_forest" }

// Fit grows the ensemble. Each tree gets its own deterministic RNG so a
// refit over the same data reproduces the same forest.
func (rf *RandomForest) Fit(x *mat.Dense, y []int, sampleWeight []float64) error {
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return fmt.Errorf("random forest: empty training matrix")
	}
	if len(y) != n {
		return fmt.Errorf("random forest: %d rows but %d labels", n, len(y))
	}
	if sampleWeight == nil {
		sampleWeight = make([]float64, n)
		for i := range sampleWeight {
			sampleWeight[i] = 1
		}
	}

	mtry := mtryDefault(d)
	rf.Trees = make([]*DecisionTree, rf.NEstimators)
	for t := 0; t < rf.NEstimators; t++ {
		rng := rand.New(rand.NewSource(rf.Seed + int64(t)))
		bootstrap := make([]int, n)
		for i := range bootstrap {
			bootstrap[i] = rng.Intn(n)
		}
		rf.Trees[t] = fitTree(x, y, sampleWeight, bootstrap, rf.MaxDepth, mtry, rng)
	}
	return nil
}

// PredictProba averages the class distributions of every tree.
func (rf *RandomForest) PredictProba(x *mat.Dense) ([][2]float64, error) {
	if len(rf.Trees) == 0 {
		return nil, fmt.Errorf("random forest is not fitted")
	}
	n, _ := x.Dims()
	out := make([][2]float64, n)
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		var acc [2]float64
		for _, tree := range rf.Trees {
			p := tree.predictProba(row)
			acc[0] += p[0]
			acc[1] += p[1]
		}
		k := float64(len(rf.Trees))
		out[i] = [2]float64{acc[0] / k, acc[1] / k}
	}
	return out, nil
}
