package dataset

import (
	"sort"

	"github.com/lucasmtt/talent-match/internal/types"
	"go.uber.org/zap"
)

// BuildTrainingTable joins the prospect pairs against the job and applicant
// exports, labels every pair and drops the ones whose status maps to no
// label. Join misses behave like the original left joins: the row keeps
// whatever side resolved and the fill policy covers the rest at fit time.
func BuildTrainingTable(raw *RawRecords, norm *Normalizer, log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}

	// Applicants are looked up by their professional code, which is also
	// how prospects reference them.
	applicantsByID := make(map[string]types.ApplicantRecord, len(raw.Applicants))
	for rawKey, rec := range raw.Applicants {
		applicantsByID[norm.ResolveApplicantID(rawKey, rec)] = rec
	}

	// Deterministic row order: job codes sorted, prospects in export order.
	jobIDs := make([]string, 0, len(raw.Prospects))
	for jobID := range raw.Prospects {
		jobIDs = append(jobIDs, jobID)
	}
	sort.Strings(jobIDs)

	table := &Table{}
	excluded := 0
	for _, jobID := range jobIDs {
		group := raw.Prospects[jobID]

		var jobFeatures types.FlatRecord
		if job, ok := raw.Jobs[jobID]; ok {
			jobFeatures = norm.NormalizeJob(job)
		} else {
			jobFeatures = types.FlatRecord{}
		}

		for _, prospect := range group.Prospects {
			label := LabelStatus(prospect.Status)
			if label == LabelExcluded {
				excluded++
				continue
			}

			features := jobFeatures.Clone()
			if applicant, ok := applicantsByID[prospect.ApplicantCode]; ok {
				features.Merge(norm.NormalizeApplicant(applicant))
			}

			table.Rows = append(table.Rows, LabeledRow{
				JobID:       jobID,
				ApplicantID: prospect.ApplicantCode,
				Status:      prospect.Status,
				Label:       int(label),
				Features:    features,
			})
		}
	}

	positives := 0
	for _, r := range table.Rows {
		positives += r.Label
	}
	log.Info("training table built",
		zap.Int("rows", len(table.Rows)),
		zap.Int("positives", positives),
		zap.Int("negatives", len(table.Rows)-positives),
		zap.Int("excluded_unmapped_status", excluded))

	return table
}
