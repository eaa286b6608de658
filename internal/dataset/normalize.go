// Package dataset loads the raw recruitment exports and turns them into the
// flat, labeled table the training pipeline consumes.
package dataset

import (
	"strconv"

	"github.com/lucasmtt/talent-match/internal/types"
	"go.uber.org/zap"
)

// Normalizer flattens nested record categories into prefixed flat columns.
// It is a pure transform; malformed values are logged and dropped from the
// output instead of failing the batch.
type Normalizer struct {
	log *zap.Logger
}

// NewNormalizer returns a normalizer logging through log. A nil logger
// disables logging.
func NewNormalizer(log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{log: log}
}

// Flatten rewrites every key of nested as prefix + "_" + key. An absent
// nested map yields an empty record. Values that are neither scalar nor nil
// (nested maps, arrays) are dropped with a log line; one corrupt field never
// aborts the record.
func (n *Normalizer) Flatten(prefix string, nested map[string]any) types.FlatRecord {
	out := make(types.FlatRecord, len(nested))
	for key, value := range nested {
		s, ok := scalarString(value)
		if !ok {
			n.log.Warn("dropping non-scalar field during normalization",
				zap.String("prefix", prefix),
				zap.String("key", key))
			continue
		}
		out[prefix+"_"+key] = s
	}
	return out
}

// FlattenInto flattens nested into dst, same rules as Flatten.
func (n *Normalizer) FlattenInto(dst types.FlatRecord, prefix string, nested map[string]any) {
	dst.Merge(n.Flatten(prefix, nested))
}

// scalarString renders a scalar JSON value as a string. nil renders as the
// empty string so a JSON null behaves like a missing text field.
func scalarString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", true
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

// NormalizeApplicant builds the flat applicant-side feature columns:
// the resume text plus the professional and education maps under their
// respective prefixes.
func (n *Normalizer) NormalizeApplicant(rec types.ApplicantRecord) types.FlatRecord {
	out := make(types.FlatRecord)
	out["cv_pt"] = rec.ResumePT
	n.FlattenInto(out, "app_prof", rec.Professional)
	n.FlattenInto(out, "app_form", rec.Education)
	return out
}

// NormalizeJob builds the flat job-side feature columns from the profile
// map under the vaga_ prefix.
func (n *Normalizer) NormalizeJob(rec types.JobRecord) types.FlatRecord {
	return n.Flatten("vaga", rec.Profile)
}

// ResolveApplicantID returns the applicant identity: the codigo_profissional
// of the basic-info map when present, otherwise the raw export key. The
// fallback is logged so malformed exports are visible instead of silent.
func (n *Normalizer) ResolveApplicantID(rawKey string, rec types.ApplicantRecord) string {
	if code, ok := rec.BasicInfo["codigo_profissional"]; ok {
		if s, ok := scalarString(code); ok && s != "" {
			return s
		}
	}
	n.log.Warn("applicant without codigo_profissional, falling back to raw key",
		zap.String("raw_key", rawKey))
	return rawKey
}
