package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lucasmtt/talent-match/internal/types"
)

// LabeledRow is one labeled training pair: the merged job and applicant
// features plus the binary target.
type LabeledRow struct {
	JobID       string           `json:"job_id"`
	ApplicantID string           `json:"applicant_id"`
	Status      string           `json:"status"`
	Label       int              `json:"label"`
	Features    types.FlatRecord `json:"features"`
}

// Table is the prepared training table persisted between the prepare and
// train stages.
type Table struct {
	Rows []LabeledRow `json:"rows"`
}

// FeatureRows returns the feature side of the table.
func (t *Table) FeatureRows() []types.FlatRecord {
	rows := make([]types.FlatRecord, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.Features
	}
	return rows
}

// Labels returns the target side of the table.
func (t *Table) Labels() []int {
	labels := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		labels[i] = r.Label
	}
	return labels
}

// Save writes the table to path as JSON.
func (t *Table) Save(path string) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode training table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write training table %s: %w", path, err)
	}
	return nil
}

// LoadTable reads a prepared training table from path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training table %s: %w", path, err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse training table %s: %w", path, err)
	}
	return &t, nil
}
