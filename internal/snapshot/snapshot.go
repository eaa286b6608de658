// Package snapshot holds the in-memory applicant pool used by the serving
// path: built once, shared read-only by every request, replaced only as a
// whole.
package snapshot

import (
	"sort"
	"sync/atomic"

	"github.com/lucasmtt/talent-match/internal/dataset"
	"github.com/lucasmtt/talent-match/internal/types"
	"go.uber.org/zap"
)

// Snapshot is an immutable applicant pool. Nothing mutates it after Build;
// concurrent readers need no locking.
type Snapshot struct {
	Applicants []types.Applicant
}

// Len returns the pool size.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Applicants)
}

// Build normalizes the raw applicant export into a snapshot. Applicants are
// ordered by identity so snapshot order, and with it ranking tie-breaks, is
// reproducible across restarts.
func Build(applicants map[string]types.ApplicantRecord, norm *dataset.Normalizer) *Snapshot {
	pool := make([]types.Applicant, 0, len(applicants))
	for rawKey, rec := range applicants {
		pool = append(pool, types.Applicant{
			ID:       norm.ResolveApplicantID(rawKey, rec),
			Features: norm.NormalizeApplicant(rec),
		})
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	return &Snapshot{Applicants: pool}
}

// Load reads and normalizes the applicant export at path.
func Load(path string, log *zap.Logger) (*Snapshot, error) {
	if log == nil {
		log = zap.NewNop()
	}
	loader := dataset.NewLoader(log)
	applicants, err := loader.LoadApplicants(path)
	if err != nil {
		return nil, err
	}
	snap := Build(applicants, dataset.NewNormalizer(log))
	log.Info("applicant snapshot loaded",
		zap.String("path", path),
		zap.Int("applicants", snap.Len()))
	return snap, nil
}

// Store publishes the current snapshot to concurrent readers. Reload swaps
// the reference atomically; in-flight requests keep the version they
// started with.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store holding snap.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	if snap != nil {
		s.current.Store(snap)
	}
	return s
}

// Current returns the published snapshot, possibly nil before first load.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap publishes a new snapshot.
func (s *Store) Swap(snap *Snapshot) {
	s.current.Store(snap)
}
