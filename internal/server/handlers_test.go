package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lucasmtt/talent-match/internal/features"
	"github.com/lucasmtt/talent-match/internal/matching"
	"github.com/lucasmtt/talent-match/internal/snapshot"
	"github.com/lucasmtt/talent-match/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScorer struct {
	contract features.Contract
	positive []float64
}

func (f *fakeScorer) Contract() features.Contract { return f.contract }

func (f *fakeScorer) PredictProba(rows []types.FlatRecord) ([][2]float64, error) {
	out := make([][2]float64, len(rows))
	for i := range rows {
		p := f.positive[i]
		out[i] = [2]float64{1 - p, p}
	}
	return out, nil
}

func (f *fakeScorer) Predict(rows []types.FlatRecord) ([]int, error) {
	proba, err := f.PredictProba(rows)
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

func serverContract() features.Contract {
	return features.Contract{
		Version:            features.ContractVersion,
		TextColumns:        []string{"cv_pt", "vaga_principais_atividades"},
		CategoricalColumns: []string{"vaga_nivel_academico"},
	}
}

func newTestServer(scorer *fakeScorer, applicants []types.Applicant, reload ReloadFunc) *Server {
	store := snapshot.NewStore(&snapshot.Snapshot{Applicants: applicants})
	var engine *matching.Engine
	if scorer == nil {
		engine = matching.New(nil, store, nil)
	} else {
		engine = matching.New(scorer, store, nil)
	}
	return New(Config{Port: 0}, engine, store, reload, nil)
}

func predictBody() string {
	return `{"vaga_principais_atividades": "desenvolvimento backend", "vaga_nivel_academico": "Ensino Superior Completo"}`
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPredict_ReturnsRankedMatches(t *testing.T) {
	scorer := &fakeScorer{contract: serverContract(), positive: []float64{0.2, 0.7, 0.4}}
	srv := newTestServer(scorer, []types.Applicant{
		{ID: "31001", Features: types.FlatRecord{"cv_pt": "a"}},
		{ID: "31002", Features: types.FlatRecord{"cv_pt": "b"}},
		{ID: "31003", Features: types.FlatRecord{"cv_pt": "c"}},
	}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/predict", predictBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var results []types.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "31002", results[0].ApplicantIndex)
	assert.Equal(t, "31003", results[1].ApplicantIndex)
	assert.Equal(t, "31001", results[2].ApplicantIndex)
	assert.Equal(t, 1, results[0].Index)
	assert.Equal(t, 1, results[0].Prediction)
	assert.InDelta(t, 0.7, results[0].ProbabilityMatch, 1e-9)
	assert.InDelta(t, 0.3, results[0].ProbabilityNoMatch, 1e-9)
}

func TestPredict_EmptyPoolIsEmptyArray(t *testing.T) {
	scorer := &fakeScorer{contract: serverContract()}
	srv := newTestServer(scorer, nil, nil)

	rec := doRequest(t, srv, http.MethodPost, "/predict", predictBody())
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestPredict_MissingFieldIsBadRequest(t *testing.T) {
	scorer := &fakeScorer{contract: serverContract(), positive: []float64{0.5}}
	srv := newTestServer(scorer, []types.Applicant{{ID: "31001"}}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/predict",
		`{"vaga_principais_atividades": "desenvolvimento backend"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "vaga_nivel_academico")
}

func TestPredict_NoModelIsServerError(t *testing.T) {
	srv := newTestServer(nil, []types.Applicant{{ID: "31001"}}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/predict", predictBody())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "model not loaded")
}

func TestPredict_InvalidJSONIsBadRequest(t *testing.T) {
	scorer := &fakeScorer{contract: serverContract(), positive: []float64{0.5}}
	srv := newTestServer(scorer, []types.Applicant{{ID: "31001"}}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/predict", `{"vaga":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPredict_NestedFieldIsBadRequest(t *testing.T) {
	scorer := &fakeScorer{contract: serverContract(), positive: []float64{0.5}}
	srv := newTestServer(scorer, []types.Applicant{{ID: "31001"}}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/predict",
		`{"vaga_nivel_academico": {"nested": true}, "vaga_principais_atividades": "x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "vaga_nivel_academico")
}

func TestPredict_NumericScalarsAreAccepted(t *testing.T) {
	scorer := &fakeScorer{contract: serverContract(), positive: []float64{0.5}}
	srv := newTestServer(scorer, []types.Applicant{{ID: "31001"}}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/predict",
		`{"vaga_principais_atividades": "x", "vaga_nivel_academico": "Superior", "vaga_id": 5000}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReload_SwapsSnapshot(t *testing.T) {
	scorer := &fakeScorer{contract: serverContract(), positive: []float64{0.5, 0.5}}
	reload := func() (*snapshot.Snapshot, error) {
		return &snapshot.Snapshot{Applicants: []types.Applicant{
			{ID: "31010", Features: types.FlatRecord{"cv_pt": "x"}},
			{ID: "31011", Features: types.FlatRecord{"cv_pt": "y"}},
		}}, nil
	}
	srv := newTestServer(scorer, []types.Applicant{{ID: "31001"}}, reload)

	rec := doRequest(t, srv, http.MethodPost, "/reload", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applicants":2`)

	rec = doRequest(t, srv, http.MethodPost, "/predict", predictBody())
	require.Equal(t, http.StatusOK, rec.Code)
	var results []types.MatchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "31010", results[0].ApplicantIndex)
}

func TestReload_FailureIsServerError(t *testing.T) {
	scorer := &fakeScorer{contract: serverContract()}
	reload := func() (*snapshot.Snapshot, error) {
		return nil, errors.New("source unreachable")
	}
	srv := newTestServer(scorer, nil, reload)

	rec := doRequest(t, srv, http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "source unreachable")
}

func TestReload_NotConfigured(t *testing.T) {
	scorer := &fakeScorer{contract: serverContract()}
	srv := newTestServer(scorer, nil, nil)

	rec := doRequest(t, srv, http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := doRequest(t, srv, http.MethodOptions, "/predict", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
