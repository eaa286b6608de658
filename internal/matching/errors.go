// Package matching scores an applicant snapshot against one job query and
// returns the deterministic top-K ranking.
package matching

import (
	"fmt"
	"strings"
)

// ValidationError reports the contracted job-side fields missing from a
// query. Expected caller mistake, never retried, maps to a 400.
type ValidationError struct {
	MissingFields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required job fields: %s", strings.Join(e.MissingFields, ", "))
}

// ServiceUnavailableError means the scorer is not loaded. Checked before
// any row construction so an unusable service does no wasted work.
type ServiceUnavailableError struct{}

func (e *ServiceUnavailableError) Error() string {
	return "model not loaded, prediction unavailable"
}

// InferenceError wraps a failure inside feature construction or the scorer
// call. Terminal for the request; the engine never retries.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed: %v", e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }
