package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/lucasmtt/talent-match/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRawRecords_ValidatesExportsInFixedOrder(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.JobsPath = filepath.Join(dir, "vagas.json")
	cfg.ApplicantsPath = filepath.Join(dir, "applicants.json")
	cfg.ProspectsPath = filepath.Join(dir, "prospects.json")

	// All three files are missing; the jobs export is checked first, so
	// its error surfaces on every run.
	for i := 0; i < 3; i++ {
		_, err := loadRawRecords(context.Background(), &cfg, nil)
		require.Error(t, err)
		assert.ErrorContains(t, err, cfg.JobsPath)
	}
}
