package matching

import (
	"sort"

	"github.com/lucasmtt/talent-match/internal/model"
	"github.com/lucasmtt/talent-match/internal/snapshot"
	"github.com/lucasmtt/talent-match/internal/types"
	"go.uber.org/zap"
)

// TopK is the shortlist length returned per request.
const TopK = 5

// Engine ranks the applicant pool against one job query. It holds
// references to an immutable scorer and the snapshot store; both are
// injected at construction and only ever replaced wholesale, so Match is a
// pure synchronous computation safe under concurrent requests.
type Engine struct {
	scorer    model.Scorer
	snapshots *snapshot.Store
	topK      int
	log       *zap.Logger
}

// New builds an engine. A nil scorer is allowed; Match then answers with
// ServiceUnavailableError until a scorer-bearing engine replaces it.
func New(scorer model.Scorer, snapshots *snapshot.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{scorer: scorer, snapshots: snapshots, topK: TopK, log: log}
}

// Match validates the job query, builds one feature row per applicant,
// scores the whole batch in one scorer call and returns at most TopK
// results ordered by descending match probability. Ties keep snapshot
// order, so the ranking is reproducible.
func (e *Engine) Match(query types.FlatRecord) ([]types.MatchResult, error) {
	if e.scorer == nil {
		return nil, &ServiceUnavailableError{}
	}

	contract := e.scorer.Contract()
	if missing := contract.MissingJobColumns(query); len(missing) > 0 {
		return nil, &ValidationError{MissingFields: missing}
	}

	snap := e.snapshots.Current()
	if snap.Len() == 0 {
		return []types.MatchResult{}, nil
	}

	// Job-side fields are validated above; from here the fill policy covers
	// every optional column, applicant-side included.
	rows := make([]types.FlatRecord, snap.Len())
	for i, applicant := range snap.Applicants {
		row := query.Clone()
		for _, col := range contract.Columns() {
			if v, ok := applicant.Features[col]; ok {
				row[col] = v
			}
		}
		rows[i] = contract.Fill(row)
	}

	proba, err := e.scorer.PredictProba(rows)
	if err != nil {
		return nil, &InferenceError{Err: err}
	}

	results := make([]types.MatchResult, len(proba))
	for i, p := range proba {
		prediction := 0
		if p[1] >= 0.5 {
			prediction = 1
		}
		results[i] = types.MatchResult{
			Index:              i,
			ApplicantIndex:     snap.Applicants[i].ID,
			Prediction:         prediction,
			ProbabilityNoMatch: p[0],
			ProbabilityMatch:   p[1],
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].ProbabilityMatch > results[b].ProbabilityMatch
	})
	if len(results) > e.topK {
		results = results[:e.topK]
	}

	e.log.Debug("match computed",
		zap.Int("pool_size", snap.Len()),
		zap.Int("returned", len(results)))
	return results, nil
}
