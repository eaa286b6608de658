package features

import (
	"bytes"
	"encoding/gob"
	"sort"

	"github.com/lucasmtt/talent-match/internal/types"
)

// OneHotEncoder encodes the contracted categorical columns. Categories are
// learned at fit time; an unseen category at transform time encodes as all
// zeros instead of failing. A fitted or decoded encoder is immutable, so
// concurrent transforms need no locking.
type OneHotEncoder struct {
	Columns    []string
	Categories map[string][]string

	index map[string]map[string]int
}

// NewOneHotEncoder returns an encoder over the given columns.
func NewOneHotEncoder(columns []string) *OneHotEncoder {
	return &OneHotEncoder{Columns: append([]string(nil), columns...)}
}

// Fit learns the category set of every column from the training rows.
// Categories are sorted so the column layout is reproducible.
func (e *OneHotEncoder) Fit(rows []types.FlatRecord) {
	e.Categories = make(map[string][]string, len(e.Columns))
	for _, col := range e.Columns {
		distinct := make(map[string]struct{})
		for _, row := range rows {
			distinct[row[col]] = struct{}{}
		}
		cats := make([]string, 0, len(distinct))
		for c := range distinct {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		e.Categories[col] = cats
	}
	e.index = buildCategoryIndex(e.Columns, e.Categories)
}

// Width returns the total number of output columns.
func (e *OneHotEncoder) Width() int {
	w := 0
	for _, col := range e.Columns {
		w += len(e.Categories[col])
	}
	return w
}

// TransformInto writes the encoding of row into dst[0:Width()].
func (e *OneHotEncoder) TransformInto(row types.FlatRecord, dst []float64) {
	block := dst[:e.Width()]
	for i := range block {
		block[i] = 0
	}
	offset := 0
	for _, col := range e.Columns {
		if pos, ok := e.index[col][row[col]]; ok {
			block[offset+pos] = 1
		}
		offset += len(e.Categories[col])
	}
}

// buildCategoryIndex derives the category→position lookup from the sorted
// category lists. The result is fully built before anything reads it.
func buildCategoryIndex(columns []string, categories map[string][]string) map[string]map[string]int {
	index := make(map[string]map[string]int, len(columns))
	for _, col := range columns {
		m := make(map[string]int, len(categories[col]))
		for i, c := range categories[col] {
			m[c] = i
		}
		index[col] = m
	}
	return index
}

// encoderState is the persisted form: only the learned state travels, the
// derived index is rebuilt on decode.
type encoderState struct {
	Columns    []string
	Categories map[string][]string
}

// GobEncode implements gob.GobEncoder.
func (e *OneHotEncoder) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(encoderState{
		Columns:    e.Columns,
		Categories: e.Categories,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder. The index is rebuilt here so a
// decoded encoder serves concurrent transforms without further writes.
func (e *OneHotEncoder) GobDecode(data []byte) error {
	var state encoderState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return err
	}
	e.Columns = state.Columns
	e.Categories = state.Categories
	e.index = buildCategoryIndex(state.Columns, state.Categories)
	return nil
}
