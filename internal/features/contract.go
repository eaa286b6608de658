// Package features defines the feature schema shared by training and
// serving, and the transform that turns flat records into model input.
//
// Both pipelines must produce byte-for-byte identical schemas, so every
// column name, default and cardinality decision lives here and nowhere else.
package features

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasmtt/talent-match/internal/types"
)

const (
	// SentinelUnknown is the fill value for a missing categorical column,
	// applied identically offline and online.
	SentinelUnknown = "Unknown"

	// MaxCategoricalCardinality bounds one-hot expansion: a candidate
	// categorical column with this many or more distinct values in the
	// training corpus is excluded from the contract entirely.
	MaxCategoricalCardinality = 50

	// ContractVersion is bumped whenever the column sets below change.
	ContractVersion = 1

	// JobColumnPrefix marks columns that originate from the job record.
	// They are required in every scoring request and never defaulted.
	JobColumnPrefix = "vaga_"
)

// TextColumns are the four free-text features, vectorized independently.
var TextColumns = []string{
	"cv_pt",
	"vaga_principais_atividades",
	"vaga_competencia_tecnicas_e_comportamentais",
	"app_prof_conhecimentos_tecnicos",
}

// CategoricalCandidates are the level/location/flag columns considered for
// one-hot encoding. The cardinality rule decides at training time which of
// them enter the contract. The space in "vaga_nivel profissional" is real;
// the upstream export carries it.
var CategoricalCandidates = []string{
	"vaga_nivel profissional",
	"vaga_nivel_academico",
	"vaga_nivel_ingles",
	"vaga_nivel_espanhol",
	"vaga_areas_atuacao",
	"vaga_local_trabalho",
	"vaga_vaga_especifica_para_pcd",
	"app_prof_nivel_profissional",
	"app_prof_area_atuacao",
	"app_form_nivel_academico",
	"app_form_nivel_ingles",
	"app_form_nivel_espanhol",
}

// Contract is the resolved feature schema. It is decided once at training
// time, persisted inside the scorer artifact, and honored verbatim at
// serving time.
type Contract struct {
	Version            int
	TextColumns        []string
	CategoricalColumns []string
}

// ResolveContract applies the cardinality rule against the training corpus
// and returns the baked contract. Candidate categorical columns keep their
// declaration order; distinct values are counted after the fill policy so
// the sentinel counts as a regular category.
func ResolveContract(rows []types.FlatRecord) Contract {
	kept := make([]string, 0, len(CategoricalCandidates))
	for _, col := range CategoricalCandidates {
		distinct := make(map[string]struct{})
		for _, row := range rows {
			v, ok := row[col]
			if !ok || v == "" {
				v = SentinelUnknown
			}
			distinct[v] = struct{}{}
		}
		if len(distinct) < MaxCategoricalCardinality {
			kept = append(kept, col)
		}
	}
	return Contract{
		Version:            ContractVersion,
		TextColumns:        append([]string(nil), TextColumns...),
		CategoricalColumns: kept,
	}
}

// Columns returns all contracted columns, text first.
func (c Contract) Columns() []string {
	out := make([]string, 0, len(c.TextColumns)+len(c.CategoricalColumns))
	out = append(out, c.TextColumns...)
	out = append(out, c.CategoricalColumns...)
	return out
}

// JobColumns returns the contracted columns that originate from the job
// record. A scoring request must carry every one of them.
func (c Contract) JobColumns() []string {
	var out []string
	for _, col := range c.Columns() {
		if strings.HasPrefix(col, JobColumnPrefix) {
			out = append(out, col)
		}
	}
	return out
}

// MissingJobColumns returns the contracted job-side columns absent from the
// query, sorted for stable error messages. Presence is key presence: an
// empty string is a present value, exactly like the original intake.
func (c Contract) MissingJobColumns(query types.FlatRecord) []string {
	var missing []string
	for _, col := range c.JobColumns() {
		if _, ok := query[col]; !ok {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

// Fill returns a copy of row restricted to the contracted columns with the
// fill policy applied: missing text becomes the empty string, missing
// categoricals become the sentinel.
func (c Contract) Fill(row types.FlatRecord) types.FlatRecord {
	out := make(types.FlatRecord, len(c.TextColumns)+len(c.CategoricalColumns))
	for _, col := range c.TextColumns {
		out[col] = row[col]
	}
	for _, col := range c.CategoricalColumns {
		v, ok := row[col]
		if !ok || v == "" {
			v = SentinelUnknown
		}
		out[col] = v
	}
	return out
}

// Validate reports a hard error when a contracted column is missing from a
// row handed to the transform. Serving never tolerates a contract violation.
func (c Contract) Validate(row types.FlatRecord) error {
	for _, col := range c.Columns() {
		if _, ok := row[col]; !ok {
			return fmt.Errorf("feature row violates contract: missing column %q", col)
		}
	}
	return nil
}
