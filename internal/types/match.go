package types

// Applicant is one entry of the serving snapshot: the applicant identity
// plus its already-normalized feature columns. Immutable after load.
type Applicant struct {
	ID       string     `json:"id"`
	Features FlatRecord `json:"features"`
}

// MatchResult is the per-request ranking entry returned by the matching
// engine. Never persisted; its lifetime is one request.
type MatchResult struct {
	Index              int     `json:"index"`
	ApplicantIndex     string  `json:"applicant_index"`
	Prediction         int     `json:"prediction"`
	ProbabilityNoMatch float64 `json:"probability_no_match"`
	ProbabilityMatch   float64 `json:"probability_match"`
}
