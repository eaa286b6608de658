// Package main provides the entry point for the talent match service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
	jsonLog bool
)

var rootCmd = &cobra.Command{
	Use:   "talent_match",
	Short: "Job/applicant matching service",
	Long:  "talent_match prepares the recruitment exports, trains the matching classifiers and serves ranked applicant shortlists over HTTP.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a JSON config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json", false, "json format for logging")
}
