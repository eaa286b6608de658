// Package training fits the matching classifiers from the prepared table
// and evaluates them on a held-out split.
package training

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lucasmtt/talent-match/internal/dataset"
	"github.com/lucasmtt/talent-match/internal/features"
	"github.com/lucasmtt/talent-match/internal/model"
	"github.com/lucasmtt/talent-match/internal/types"
	"go.uber.org/zap"
)

const (
	// TestFraction and Seed pin the split so two runs over the same table
	// produce the same held-out set.
	TestFraction = 0.25
	Seed         = 42
)

// Evaluation holds the held-out metrics of one fitted variant.
type Evaluation struct {
	Accuracy float64
	ROCAUC   float64
	Report   model.ClassificationReport
}

// VariantResult is the outcome of fitting one classifier variant. A variant
// that failed carries Err and no artifact; it never fails the run.
type VariantResult struct {
	Name     string
	Artifact *model.Artifact
	Eval     Evaluation
	Err      error
}

// Result is the outcome of one training run.
type Result struct {
	RunID    string
	Contract features.Contract
	Variants []VariantResult
}

// Fitted returns the variants that produced an artifact.
func (r *Result) Fitted() []VariantResult {
	var out []VariantResult
	for _, v := range r.Variants {
		if v.Err == nil {
			out = append(out, v)
		}
	}
	return out
}

// Pipeline builds scorer artifacts from a labeled training table.
type Pipeline struct {
	log *zap.Logger
}

// New returns a training pipeline logging through log.
func New(log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log}
}

// variantSpec pairs a classifier with whether its features get scaled.
// The linear model wants unit-variance features; the forest is scale-free.
type variantSpec struct {
	name       string
	scale      bool
	classifier func() model.Classifier
}

// Fit resolves the contract against the table, splits it, and fits the
// linear and ensemble variants. Each variant is isolated: one failing to
// fit is reported and skipped while the run continues with the others.
func (p *Pipeline) Fit(table *dataset.Table) (*Result, error) {
	if len(table.Rows) == 0 {
		return nil, fmt.Errorf("training table is empty")
	}

	rawRows := table.FeatureRows()
	labels := table.Labels()

	contract := features.ResolveContract(rawRows)
	p.log.Info("feature contract resolved",
		zap.Int("text_columns", len(contract.TextColumns)),
		zap.Int("categorical_columns", len(contract.CategoricalColumns)))

	rows := make([]types.FlatRecord, len(rawRows))
	for i, row := range rawRows {
		rows[i] = contract.Fill(row)
	}

	trainIdx, testIdx := stratifiedSplit(labels, TestFraction, Seed)
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return nil, fmt.Errorf("split produced an empty partition (%d train, %d test)", len(trainIdx), len(testIdx))
	}
	trainRows, trainY := subset(rows, labels, trainIdx)
	testRows, testY := subset(rows, labels, testIdx)
	p.log.Info("stratified split done",
		zap.Int("train_rows", len(trainRows)),
		zap.Int("test_rows", len(testRows)))

	specs := []variantSpec{
		{name: "logistic_regression", scale: true, classifier: func() model.Classifier { return model.NewLogisticRegression() }},
		{name: "random_forest", scale: false, classifier: func() model.Classifier { return model.NewRandomForest() }},
	}

	result := &Result{
		RunID:    uuid.New().String(),
		Contract: contract,
		Variants: make([]VariantResult, len(specs)),
	}

	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		go func(i int, spec variantSpec) {
			defer wg.Done()
			result.Variants[i] = p.fitVariant(spec, contract, result.RunID, trainRows, trainY, testRows, testY)
		}(i, spec)
	}
	wg.Wait()

	for _, v := range result.Variants {
		if v.Err != nil {
			p.log.Error("variant failed to fit", zap.String("variant", v.Name), zap.Error(v.Err))
			continue
		}
		p.log.Info("variant fitted",
			zap.String("variant", v.Name),
			zap.Float64("accuracy", v.Eval.Accuracy),
			zap.Float64("roc_auc", v.Eval.ROCAUC))
	}
	if len(result.Fitted()) == 0 {
		return nil, fmt.Errorf("no classifier variant could be fitted")
	}
	return result, nil
}

// fitVariant fits and evaluates one classifier variant end to end.
func (p *Pipeline) fitVariant(spec variantSpec, contract features.Contract, runID string,
	trainRows []types.FlatRecord, trainY []int, testRows []types.FlatRecord, testY []int) VariantResult {

	res := VariantResult{Name: spec.name}

	transform := features.NewTransformer(contract)
	if err := transform.Fit(trainRows); err != nil {
		res.Err = fmt.Errorf("fitting transform: %w", err)
		return res
	}
	xTrain, err := transform.Transform(trainRows)
	if err != nil {
		res.Err = fmt.Errorf("transforming training rows: %w", err)
		return res
	}
	xTest, err := transform.Transform(testRows)
	if err != nil {
		res.Err = fmt.Errorf("transforming test rows: %w", err)
		return res
	}

	var scaler *features.StdScaler
	if spec.scale {
		scaler = &features.StdScaler{}
		scaler.Fit(xTrain)
		scaler.Transform(xTrain)
		scaler.Transform(xTest)
	}

	clf := spec.classifier()
	weights := model.BalancedSampleWeights(trainY)
	if err := clf.Fit(xTrain, trainY, weights); err != nil {
		res.Err = fmt.Errorf("fitting classifier: %w", err)
		return res
	}

	proba, err := clf.PredictProba(xTest)
	if err != nil {
		res.Err = fmt.Errorf("evaluating classifier: %w", err)
		return res
	}
	pred := make([]int, len(proba))
	scores := make([]float64, len(proba))
	for i, pr := range proba {
		scores[i] = pr[1]
		if pr[1] >= 0.5 {
			pred[i] = 1
		}
	}
	res.Eval = Evaluation{
		Accuracy: model.Accuracy(testY, pred),
		ROCAUC:   model.ROCAUC(testY, scores),
		Report:   model.Report(testY, pred),
	}
	res.Artifact = &model.Artifact{
		ModelName:       spec.name,
		RunID:           runID,
		TrainedAt:       time.Now().UTC(),
		FeatureContract: contract,
		Transform:       transform,
		Scaler:          scaler,
		Model:           clf,
	}
	return res
}

// stratifiedSplit splits indices preserving label proportions. Per-label
// index lists are shuffled with the fixed seed, then the test fraction is
// taken from each.
func stratifiedSplit(labels []int, testFraction float64, seed int64) (train, test []int) {
	byLabel := map[int][]int{}
	for i, label := range labels {
		byLabel[label] = append(byLabel[label], i)
	}
	rng := rand.New(rand.NewSource(seed))
	for _, label := range []int{0, 1} {
		idx := byLabel[label]
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		cut := int(float64(len(idx)) * testFraction)
		test = append(test, idx[:cut]...)
		train = append(train, idx[cut:]...)
	}
	return train, test
}

func subset(rows []types.FlatRecord, labels []int, idx []int) ([]types.FlatRecord, []int) {
	outRows := make([]types.FlatRecord, len(idx))
	outY := make([]int, len(idx))
	for i, j := range idx {
		outRows[i] = rows[j]
		outY[i] = labels[j]
	}
	return outRows, outY
}
