// Package types defines the data model shared by the offline preparation
// pipeline and the online matching service.
package types

// FlatRecord is a flattened view of a nested source record: every nested key
// rewritten with a source-specific prefix, every value rendered as a string.
type FlatRecord map[string]string

// Clone returns a shallow copy of the record.
func (r FlatRecord) Clone() FlatRecord {
	out := make(FlatRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge copies every key of other into r, overwriting on collision.
// Prefixing at normalization time guarantees collisions cannot happen
// between records from different sources.
func (r FlatRecord) Merge(other FlatRecord) {
	for k, v := range other {
		r[k] = v
	}
}

// ApplicantRecord is one entry of the applicants export, keyed by the raw
// applicant code. Nested categories are kept as free-form maps; the
// normalizer flattens them with the app_prof_/app_form_ prefixes.
type ApplicantRecord struct {
	BasicInfo    map[string]any `json:"infos_basicas"`
	PersonalInfo map[string]any `json:"informacoes_pessoais"`
	CurrentRole  map[string]any `json:"cargo_atual"`
	Professional map[string]any `json:"informacoes_profissionais"`
	Education    map[string]any `json:"formacao_e_idiomas"`
	ResumePT     string         `json:"cv_pt"`
	ResumeEN     string         `json:"cv_en"`
}

// JobRecord is one entry of the vagas export, keyed by the job code. Only
// the profile map feeds the model; the other maps are carried for
// completeness of the export schema.
type JobRecord struct {
	BasicInfo map[string]any `json:"informacoes_basicas"`
	Profile   map[string]any `json:"perfil_vaga"`
	Benefits  map[string]any `json:"beneficios"`
}

// ProspectGroup is one entry of the prospects export: the applicants that
// were ever attached to a single job, with their free-text outcome status.
type ProspectGroup struct {
	JobTitle  string     `json:"titulo"`
	Modality  string     `json:"modalidade"`
	Prospects []Prospect `json:"prospects"`
}

// Prospect links an applicant to the owning job with its outcome status.
type Prospect struct {
	Name          string `json:"nome"`
	ApplicantCode string `json:"codigo"`
	Status        string `json:"situacao_candidado"`
	AppliedAt     string `json:"data_candidatura"`
	UpdatedAt     string `json:"ultima_atualizacao"`
	Comment       string `json:"comentario"`
	Recruiter     string `json:"recrutador"`
}
