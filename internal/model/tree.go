package model

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// TreeNode is one node of a fitted decision tree, stored flat so the tree
// serializes without pointer chasing.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Leaf      bool
	Proba     [2]float64
}

// DecisionTree is a CART classifier limited by depth, splitting on weighted
// Gini impurity over a random feature subset per node.
type DecisionTree struct {
	MaxDepth        int
	MinSamplesSplit int
	Nodes           []TreeNode
}

type treeBuilder struct {
	x    *mat.Dense
	y    []int
	w    []float64
	mtry int
	rng  *rand.Rand
	tree *DecisionTree
}

// fitTree grows one tree over the given sample indices.
func fitTree(x *mat.Dense, y []int, w []float64, samples []int, maxDepth, mtry int, rng *rand.Rand) *DecisionTree {
	t := &DecisionTree{MaxDepth: maxDepth, MinSamplesSplit: 2}
	b := &treeBuilder{x: x, y: y, w: w, mtry: mtry, rng: rng, tree: t}
	b.grow(samples, 0)
	return t
}

// grow appends the subtree for samples and returns its node index.
func (b *treeBuilder) grow(samples []int, depth int) int {
	idx := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, TreeNode{Left: -1, Right: -1})

	classWeight := [2]float64{}
	for _, i := range samples {
		classWeight[b.y[i]] += b.w[i]
	}
	total := classWeight[0] + classWeight[1]

	pure := classWeight[0] == 0 || classWeight[1] == 0
	if depth >= b.tree.MaxDepth || len(samples) < b.tree.MinSamplesSplit || pure {
		b.tree.Nodes[idx] = leafNode(classWeight, total)
		return idx
	}

	feature, threshold, ok := b.bestSplit(samples, total, classWeight)
	if !ok {
		b.tree.Nodes[idx] = leafNode(classWeight, total)
		return idx
	}

	var left, right []int
	for _, i := range samples {
		if b.x.At(i, feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		b.tree.Nodes[idx] = leafNode(classWeight, total)
		return idx
	}

	leftIdx := b.grow(left, depth+1)
	rightIdx := b.grow(right, depth+1)
	b.tree.Nodes[idx].Feature = feature
	b.tree.Nodes[idx].Threshold = threshold
	b.tree.Nodes[idx].Left = leftIdx
	b.tree.Nodes[idx].Right = rightIdx
	return idx
}

func leafNode(classWeight [2]float64, total float64) TreeNode {
	node := TreeNode{Left: -1, Right: -1, Leaf: true}
	if total > 0 {
		node.Proba = [2]float64{classWeight[0] / total, classWeight[1] / total}
	} else {
		node.Proba = [2]float64{0.5, 0.5}
	}
	return node
}

// bestSplit scans mtry random features for the split with the largest
// weighted Gini decrease.
func (b *treeBuilder) bestSplit(samples []int, total float64, classWeight [2]float64) (int, float64, bool) {
	_, d := b.x.Dims()
	parentGini := gini(classWeight, total)

	features := b.rng.Perm(d)
	if len(features) > b.mtry {
		features = features[:b.mtry]
	}

	bestGain := 0.0
	bestFeature, bestThreshold := -1, 0.0

	ordered := make([]int, len(samples))
	for _, f := range features {
		copy(ordered, samples)
		sort.Slice(ordered, func(i, j int) bool {
			return b.x.At(ordered[i], f) < b.x.At(ordered[j], f)
		})

		leftWeight := [2]float64{}
		leftTotal := 0.0
		for pos := 0; pos < len(ordered)-1; pos++ {
			i := ordered[pos]
			leftWeight[b.y[i]] += b.w[i]
			leftTotal += b.w[i]

			v, next := b.x.At(i, f), b.x.At(ordered[pos+1], f)
			if v == next {
				continue
			}
			rightWeight := [2]float64{classWeight[0] - leftWeight[0], classWeight[1] - leftWeight[1]}
			rightTotal := total - leftTotal
			gain := parentGini -
				(leftTotal/total)*gini(leftWeight, leftTotal) -
				(rightTotal/total)*gini(rightWeight, rightTotal)
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (v + next) / 2
			}
		}
	}

	if bestFeature < 0 || bestGain <= 1e-12 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func gini(classWeight [2]float64, total float64) float64 {
	if total <= 0 {
		return 0
	}
	p0 := classWeight[0] / total
	p1 := classWeight[1] / total
	return 1 - p0*p0 - p1*p1
}

// predictProba walks the tree for one row.
func (t *DecisionTree) predictProba(row []float64) [2]float64 {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Leaf {
			return node.Proba
		}
		if row[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// mtryDefault is the classic sqrt(d) feature subsample size.
func mtryDefault(d int) int {
	m := int(math.Sqrt(float64(d)))
	if m < 1 {
		m = 1
	}
	return m
}
