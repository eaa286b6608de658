package main

import (
	"fmt"
	"path/filepath"

	"github.com/lucasmtt/talent-match/internal/config"
	"github.com/lucasmtt/talent-match/internal/dataset"
	"github.com/lucasmtt/talent-match/internal/logger"
	"github.com/lucasmtt/talent-match/internal/training"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the matching classifiers from the prepared table",
	Long: `Fit the linear and ensemble classifier variants on the prepared training
table, report their held-out metrics and persist every variant that fitted
successfully as a scorer artifact.`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	log, err := logger.New(jsonLog, debug || cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	table, err := dataset.LoadTable(cfg.TablePath)
	if err != nil {
		return err
	}
	log.Info("training table loaded",
		zap.String("path", cfg.TablePath),
		zap.Int("rows", len(table.Rows)))

	result, err := training.New(log).Fit(table)
	if err != nil {
		return err
	}

	for _, variant := range result.Variants {
		if variant.Err != nil {
			log.Warn("variant skipped", zap.String("variant", variant.Name), zap.Error(variant.Err))
			continue
		}
		fmt.Printf("\n%s (run %s)\n%s\nROC AUC: %.4f\nAccuracy: %.4f\n",
			variant.Name, result.RunID, variant.Eval.Report, variant.Eval.ROCAUC, variant.Eval.Accuracy)

		path := filepath.Join(cfg.ModelDir, fmt.Sprintf("model_%s.bin", shortName(variant.Name)))
		if err := variant.Artifact.Save(path); err != nil {
			return err
		}
		log.Info("scorer artifact saved",
			zap.String("variant", variant.Name),
			zap.String("path", path))
	}
	return nil
}

// shortName maps a variant to its artifact file suffix, keeping the names
// the serving default expects (model_rf.bin, model_lr.bin).
func shortName(variant string) string {
	switch variant {
	case "logistic_regression":
		return "lr"
	case "random_forest":
		return "rf"
	default:
		return variant
	}
}
