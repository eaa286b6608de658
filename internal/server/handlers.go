package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/lucasmtt/talent-match/internal/types"
	"go.uber.org/zap"
)

// handlePredict scores the applicant pool against the job query in the
// request body and returns the top matches sorted by match probability.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON payload, send the job fields as a JSON object")
		return
	}

	query, err := queryFromBody(body)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.engine.Match(query)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("prediction failed", zap.Error(err))
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, results)
}

// handleReload rebuilds the applicant snapshot and swaps it in atomically.
func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	if s.reload == nil {
		s.errorResponse(w, http.StatusNotFound, "snapshot reload is not configured")
		return
	}
	snap, err := s.reload()
	if err != nil {
		s.log.Error("snapshot reload failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "snapshot reload failed: "+err.Error())
		return
	}
	s.snapshots.Swap(snap)
	s.log.Info("snapshot reloaded", zap.Int("applicants", snap.Len()))
	s.jsonResponse(w, http.StatusOK, map[string]any{"status": "reloaded", "applicants": snap.Len()})
}

// queryFromBody renders the top-level JSON values as the flat job query.
// Scalars stringify; a nested object or array is a malformed query, not a
// field to be silently dropped.
func queryFromBody(body map[string]any) (types.FlatRecord, error) {
	query := make(types.FlatRecord, len(body))
	for key, value := range body {
		switch v := value.(type) {
		case nil:
			query[key] = ""
		case string:
			query[key] = v
		case bool:
			query[key] = strconv.FormatBool(v)
		case float64:
			query[key] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("field %q must be a scalar value", key)
		}
	}
	return query, nil
}
