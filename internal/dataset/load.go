package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lucasmtt/talent-match/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Loader reads the raw JSON exports. Each export is a single object keyed
// by entity code. A record that fails to decode is skipped with a log line;
// a file that fails to open or parse is fatal.
type Loader struct {
	log *zap.Logger
}

// NewLoader returns a loader logging through log.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// RawRecords is the three raw exports, loaded and decoded.
type RawRecords struct {
	Jobs       map[string]types.JobRecord
	Applicants map[string]types.ApplicantRecord
	Prospects  map[string]types.ProspectGroup
}

// LoadAll loads the three exports concurrently. Any single file failing
// fails the whole load.
func (l *Loader) LoadAll(ctx context.Context, jobsPath, applicantsPath, prospectsPath string) (*RawRecords, error) {
	var raw RawRecords
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw.Jobs, err = l.LoadJobs(jobsPath)
		return err
	})
	g.Go(func() error {
		var err error
		raw.Applicants, err = l.LoadApplicants(applicantsPath)
		return err
	})
	g.Go(func() error {
		var err error
		raw.Prospects, err = l.LoadProspects(prospectsPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &raw, nil
}

// LoadApplicants loads the applicants export.
func (l *Loader) LoadApplicants(path string) (map[string]types.ApplicantRecord, error) {
	return decodeKeyed[types.ApplicantRecord](l, path, "applicant")
}

// LoadJobs loads the vagas export.
func (l *Loader) LoadJobs(path string) (map[string]types.JobRecord, error) {
	return decodeKeyed[types.JobRecord](l, path, "job")
}

// LoadProspects loads the prospects export.
func (l *Loader) LoadProspects(path string) (map[string]types.ProspectGroup, error) {
	return decodeKeyed[types.ProspectGroup](l, path, "prospect group")
}

// decodeKeyed decodes a keyed export per record, so one corrupt record
// costs that record, not the file.
func decodeKeyed[T any](l *Loader, path, kind string) (map[string]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file %s: %w", kind, path, err)
	}
	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("failed to parse %s file %s: %w", kind, path, err)
	}
	out := make(map[string]T, len(keyed))
	for key, msg := range keyed {
		var rec T
		if err := json.Unmarshal(msg, &rec); err != nil {
			l.log.Warn("skipping malformed record",
				zap.String("kind", kind),
				zap.String("key", key),
				zap.Error(err))
			continue
		}
		out[key] = rec
	}
	return out, nil
}
