package model

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/lucasmtt/talent-match/internal/features"
	"github.com/lucasmtt/talent-match/internal/types"
)

func init() {
	// Classifier lives behind an interface inside the artifact; gob needs
	// the concrete types announced up front.
	gob.Register(&LogisticRegression{})
	gob.Register(&RandomForest{})
}

// Scorer is the trained matching model as the serving path sees it: an
// opaque callable over contract-conformant feature rows.
type Scorer interface {
	Contract() features.Contract
	Predict(rows []types.FlatRecord) ([]int, error)
	PredictProba(rows []types.FlatRecord) ([][2]float64, error)
}

// Artifact is a fitted preprocessing+classifier pipeline: the baked
// contract, the fitted transform, the optional scaler and the classifier,
// persisted as one unit so training and serving can never disagree on the
// schema.
type Artifact struct {
	ModelName string
	RunID     string
	TrainedAt time.Time

	FeatureContract features.Contract
	Transform       *features.Transformer
	Scaler          *features.StdScaler
	Model           Classifier
}

// Contract implements Scorer.
func (a *Artifact) Contract() features.Contract { return a.FeatureContract }

// PredictProba scores a batch of contract-conformant rows.
func (a *Artifact) PredictProba(rows []types.FlatRecord) ([][2]float64, error) {
	x, err := a.Transform.Transform(rows)
	if err != nil {
		return nil, fmt.Errorf("feature transform failed: %w", err)
	}
	if a.Scaler != nil {
		a.Scaler.Transform(x)
	}
	proba, err := a.Model.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("%s prediction failed: %w", a.ModelName, err)
	}
	return proba, nil
}

// Predict returns the hard label per row, thresholded at 0.5.
func (a *Artifact) Predict(rows []types.FlatRecord) ([]int, error) {
	proba, err := a.PredictProba(rows)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(proba))
	for i, p := range proba {
		if p[1] >= 0.5 {
			labels[i] = 1
		}
	}
	return labels, nil
}

// Save writes the artifact to path.
func (a *Artifact) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create artifact file %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(a); err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}
	return nil
}

// LoadArtifact reads a persisted scorer artifact from path.
func LoadArtifact(path string) (*Artifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact file %s: %w", path, err)
	}
	defer f.Close()
	var a Artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode artifact %s: %w", path, err)
	}
	return &a, nil
}
