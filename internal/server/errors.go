// Package server provides the HTTP REST API for the matching service.
package server

import (
	"errors"
	"net/http"

	"github.com/lucasmtt/talent-match/internal/matching"
)

// HTTPStatus maps an engine error to its response status. Validation
// failures are the caller's fault; everything else is a server-side 500.
func HTTPStatus(err error) int {
	var validation *matching.ValidationError
	var unavailable *matching.ServiceUnavailableError
	var inference *matching.InferenceError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unavailable), errors.As(err, &inference):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
