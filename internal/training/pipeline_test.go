package training

import (
	"fmt"
	"testing"

	"github.com/lucasmtt/talent-match/internal/dataset"
	"github.com/lucasmtt/talent-match/internal/features"
	"github.com/lucasmtt/talent-match/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticTable builds a table where positive rows mention matching skills
// and negative rows do not, with enough rows for a stratified split.
func syntheticTable(n int) *dataset.Table {
	table := &dataset.Table{}
	for i := 0; i < n; i++ {
		label := i % 2
		var cv, skills string
		if label == 1 {
			cv = fmt.Sprintf("experienced go developer %d backend services", i)
			skills = "go postgres docker"
		} else {
			cv = fmt.Sprintf("unrelated profile %d finance audit", i)
			skills = "accounting excel"
		}
		table.Rows = append(table.Rows, dataset.LabeledRow{
			JobID:       "5000",
			ApplicantID: fmt.Sprintf("31%03d", i),
			Label:       label,
			Features: types.FlatRecord{
				"cv_pt":                                       cv,
				"app_prof_conhecimentos_tecnicos":             skills,
				"vaga_principais_atividades":                  "desenvolvimento backend",
				"vaga_competencia_tecnicas_e_comportamentais": "go sql",
				"vaga_nivel_academico":                        "Superior",
			},
		})
	}
	return table
}

func TestPipeline_FitProducesBothVariants(t *testing.T) {
	result, err := New(nil).Fit(syntheticTable(40))
	require.NoError(t, err)

	require.Len(t, result.Variants, 2)
	names := []string{result.Variants[0].Name, result.Variants[1].Name}
	assert.Contains(t, names, "logistic_regression")
	assert.Contains(t, names, "random_forest")

	for _, v := range result.Fitted() {
		require.NotNil(t, v.Artifact)
		assert.Equal(t, result.RunID, v.Artifact.RunID)
		assert.GreaterOrEqual(t, v.Eval.Accuracy, 0.0)
		assert.LessOrEqual(t, v.Eval.Accuracy, 1.0)
		assert.GreaterOrEqual(t, v.Eval.ROCAUC, 0.0)
		assert.LessOrEqual(t, v.Eval.ROCAUC, 1.0)
	}
}

func TestPipeline_BakedContractExcludesNothingOnSmallCorpus(t *testing.T) {
	result, err := New(nil).Fit(syntheticTable(40))
	require.NoError(t, err)

	assert.Equal(t, features.TextColumns, result.Contract.TextColumns)
	assert.Contains(t, result.Contract.CategoricalColumns, "vaga_nivel_academico")
}

func TestPipeline_EmptyTableFails(t *testing.T) {
	_, err := New(nil).Fit(&dataset.Table{})
	assert.Error(t, err)
}

func TestPipeline_ArtifactScoresServingRows(t *testing.T) {
	result, err := New(nil).Fit(syntheticTable(40))
	require.NoError(t, err)
	require.NotEmpty(t, result.Fitted())

	artifact := result.Fitted()[0].Artifact
	row := artifact.Contract().Fill(types.FlatRecord{
		"cv_pt":                           "experienced go developer backend services",
		"app_prof_conhecimentos_tecnicos": "go postgres",
	})
	proba, err := artifact.PredictProba([]types.FlatRecord{row})
	require.NoError(t, err)
	require.Len(t, proba, 1)
	assert.InDelta(t, 1.0, proba[0][0]+proba[0][1], 1e-9)
}

func TestStratifiedSplit_PreservesProportionsAndSeed(t *testing.T) {
	labels := make([]int, 100)
	for i := range labels {
		if i < 20 {
			labels[i] = 1
		}
	}

	trainA, testA := stratifiedSplit(labels, 0.25, Seed)
	trainB, testB := stratifiedSplit(labels, 0.25, Seed)

	assert.Equal(t, trainA, trainB)
	assert.Equal(t, testA, testB)
	assert.Len(t, testA, 25)
	assert.Len(t, trainA, 75)

	posTest := 0
	for _, i := range testA {
		posTest += labels[i]
	}
	assert.Equal(t, 5, posTest)
}
