package main

import (
	"context"
	"fmt"

	"github.com/lucasmtt/talent-match/internal/config"
	"github.com/lucasmtt/talent-match/internal/dataset"
	"github.com/lucasmtt/talent-match/internal/logger"
	"github.com/lucasmtt/talent-match/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var prepareSkipValidation bool

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Build the labeled training table from the raw exports",
	Long: `Load the vagas, applicants and prospects exports, normalize the nested
records into prefixed flat columns, label every prospect pair from its
outcome status and persist the resulting training table.`,
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().BoolVar(&prepareSkipValidation, "skip-validation", false, "skip JSON Schema validation of the raw exports")
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log, err := logger.New(jsonLog, debug || cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	ctx := cmd.Context()
	raw, err := loadRawRecords(ctx, cfg, log)
	if err != nil {
		return err
	}

	table := dataset.BuildTrainingTable(raw, dataset.NewNormalizer(log), log)
	if err := table.Save(cfg.TablePath); err != nil {
		return err
	}
	log.Info("training table saved",
		zap.String("path", cfg.TablePath),
		zap.Int("rows", len(table.Rows)))
	return nil
}

// loadRawRecords pulls the three record sets from Postgres when a database
// URL is configured, otherwise from the JSON exports on disk.
func loadRawRecords(ctx context.Context, cfg *config.Config, log *zap.Logger) (*dataset.RawRecords, error) {
	if cfg.DatabaseURL != "" {
		st, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		log.Info("loading raw records from database")
		return st.LoadAll(ctx)
	}

	if !prepareSkipValidation {
		exports := []struct{ schema, path string }{
			{"vagas", cfg.JobsPath},
			{"applicants", cfg.ApplicantsPath},
			{"prospects", cfg.ProspectsPath},
		}
		for _, export := range exports {
			if err := dataset.ValidateExport(export.schema, export.path); err != nil {
				return nil, err
			}
		}
	}
	return dataset.NewLoader(log).LoadAll(ctx, cfg.JobsPath, cfg.ApplicantsPath, cfg.ProspectsPath)
}
