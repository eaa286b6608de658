// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Config is the service configuration, loadable from a JSON file. Missing
// values fall back to defaults; DATABASE_URL from the environment wins over
// the file so deployments can inject credentials without editing it.
type Config struct {
	// Serving
	Port      int    `json:"port" validate:"gte=0,lte=65535"`
	ModelPath string `json:"model_path" validate:"required"`

	// Data sources. DatabaseURL switches the raw-record source from the
	// JSON exports to Postgres.
	ApplicantsPath string `json:"applicants_path" validate:"required"`
	JobsPath       string `json:"jobs_path" validate:"required"`
	ProspectsPath  string `json:"prospects_path" validate:"required"`
	TablePath      string `json:"table_path" validate:"required"`
	ModelDir       string `json:"model_dir" validate:"required"`
	DatabaseURL    string `json:"database_url"`

	// Logging
	Debug   bool `json:"debug"`
	JSONLog bool `json:"json_log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Port:           5000,
		ModelPath:      "data/model_rf.bin",
		ApplicantsPath: "data/applicants.json",
		JobsPath:       "data/vagas.json",
		ProspectsPath:  "data/prospects.json",
		TablePath:      "data/prepared_table.json",
		ModelDir:       "data",
	}
}

// Load reads the configuration at path, merges it over the defaults and
// applies environment overrides. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
