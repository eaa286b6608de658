// Package store provides the optional PostgreSQL source for the raw
// recruitment records, mirroring the JSON export loaders for deployments
// that keep the exports in a database instead of on disk.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucasmtt/talent-match/internal/dataset"
	"github.com/lucasmtt/talent-match/internal/types"
)

// Store wraps a PostgreSQL connection pool over the three record tables.
// Each table is (code text primary key, data jsonb), one row per export
// entry.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes and verifies a connection pool.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// LoadAll loads the three record sets in one round each.
func (s *Store) LoadAll(ctx context.Context) (*dataset.RawRecords, error) {
	jobs, err := s.LoadJobs(ctx)
	if err != nil {
		return nil, err
	}
	applicants, err := s.LoadApplicants(ctx)
	if err != nil {
		return nil, err
	}
	prospects, err := s.LoadProspects(ctx)
	if err != nil {
		return nil, err
	}
	return &dataset.RawRecords{Jobs: jobs, Applicants: applicants, Prospects: prospects}, nil
}

// LoadApplicants loads the applicants table.
func (s *Store) LoadApplicants(ctx context.Context) (map[string]types.ApplicantRecord, error) {
	return loadKeyed[types.ApplicantRecord](ctx, s, "applicants")
}

// LoadJobs loads the vagas table.
func (s *Store) LoadJobs(ctx context.Context) (map[string]types.JobRecord, error) {
	return loadKeyed[types.JobRecord](ctx, s, "vagas")
}

// LoadProspects loads the prospects table.
func (s *Store) LoadProspects(ctx context.Context) (map[string]types.ProspectGroup, error) {
	return loadKeyed[types.ProspectGroup](ctx, s, "prospects")
}

func loadKeyed[T any](ctx context.Context, s *Store, table string) (map[string]T, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT code, data FROM %s`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	out := make(map[string]T)
	for rows.Next() {
		var code string
		var data []byte
		if err := rows.Scan(&code, &data); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s record %s: %w", table, code, err)
		}
		out[code] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", table, err)
	}
	return out, nil
}
