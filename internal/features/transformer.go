package features

import (
	"fmt"

	"github.com/lucasmtt/talent-match/internal/types"
	"gonum.org/v1/gonum/mat"
)

// Transformer is the combined feature transform: one TF-IDF block per text
// column followed by the one-hot block for the categorical columns. It is
// fitted once during training and travels inside the scorer artifact.
type Transformer struct {
	Contract Contract
	Text     map[string]*Vectorizer
	Encoder  *OneHotEncoder
}

// NewTransformer builds an unfitted transformer for the contract.
func NewTransformer(c Contract) *Transformer {
	text := make(map[string]*Vectorizer, len(c.TextColumns))
	for _, col := range c.TextColumns {
		text[col] = NewVectorizer()
	}
	return &Transformer{
		Contract: c,
		Text:     text,
		Encoder:  NewOneHotEncoder(c.CategoricalColumns),
	}
}

// Width returns the width of the output matrix.
func (t *Transformer) Width() int {
	w := t.Encoder.Width()
	for _, col := range t.Contract.TextColumns {
		w += t.Text[col].Width()
	}
	return w
}

// Fit learns vocabularies and category sets from the training rows. Rows
// must already have the fill policy applied.
func (t *Transformer) Fit(rows []types.FlatRecord) error {
	for _, row := range rows {
		if err := t.Contract.Validate(row); err != nil {
			return err
		}
	}
	for _, col := range t.Contract.TextColumns {
		docs := make([]string, len(rows))
		for i, row := range rows {
			docs[i] = row[col]
		}
		t.Text[col].Fit(docs)
	}
	t.Encoder.Fit(rows)
	return nil
}

// Transform builds the feature matrix for rows. Every row must carry every
// contracted column; a violation is a hard error, not a default.
func (t *Transformer) Transform(rows []types.FlatRecord) (*mat.Dense, error) {
	width := t.Width()
	if width == 0 {
		return nil, fmt.Errorf("transformer is not fitted")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to transform")
	}
	x := mat.NewDense(len(rows), width, nil)
	for i, row := range rows {
		if err := t.Contract.Validate(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		dst := x.RawRowView(i)
		offset := 0
		for _, col := range t.Contract.TextColumns {
			v := t.Text[col]
			v.TransformInto(row[col], dst[offset:])
			offset += v.Width()
		}
		t.Encoder.TransformInto(row, dst[offset:])
	}
	return x, nil
}
