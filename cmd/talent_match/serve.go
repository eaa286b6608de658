package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lucasmtt/talent-match/internal/config"
	"github.com/lucasmtt/talent-match/internal/logger"
	"github.com/lucasmtt/talent-match/internal/matching"
	"github.com/lucasmtt/talent-match/internal/model"
	"github.com/lucasmtt/talent-match/internal/server"
	"github.com/lucasmtt/talent-match/internal/snapshot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that scores the applicant snapshot against posted
job openings and returns the top matches.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	log, err := logger.New(jsonLog, debug || cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	// A missing artifact does not stop the server: /predict answers 500
	// until a model is trained and the process restarted.
	var scorer model.Scorer
	artifact, err := model.LoadArtifact(cfg.ModelPath)
	switch {
	case err == nil:
		scorer = artifact
		log.Info("scorer artifact loaded",
			zap.String("path", cfg.ModelPath),
			zap.String("model", artifact.ModelName),
			zap.String("run_id", artifact.RunID))
	case errors.Is(err, os.ErrNotExist):
		log.Warn("scorer artifact not found, predictions will be unavailable",
			zap.String("path", cfg.ModelPath))
	default:
		log.Warn("scorer artifact could not be loaded, predictions will be unavailable",
			zap.String("path", cfg.ModelPath), zap.Error(err))
	}

	snap, err := snapshot.Load(cfg.ApplicantsPath, log)
	if err != nil {
		return fmt.Errorf("failed to load applicant snapshot: %w", err)
	}
	snapshots := snapshot.NewStore(snap)

	engine := matching.New(scorer, snapshots, log)
	reload := func() (*snapshot.Snapshot, error) {
		return snapshot.Load(cfg.ApplicantsPath, log)
	}

	srv := server.New(server.Config{Port: cfg.Port}, engine, snapshots, reload, log)
	return srv.Start()
}
