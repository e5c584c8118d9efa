// Package models defines data structures for configuration and parsed task data.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTaskDataDir    = "task_data"
	DefaultSummaryLogsDir = "search_summary_logs"
	DefaultOutputDir      = "data"
	DefaultCron           = "*/30 * * * *"
)

// RunConfig holds runtime configuration for a conversion run.
// Values come from an optional YAML file; CLI flags override them.
type RunConfig struct {
	TaskDataDir     string `yaml:"task_data_dir"`
	SummaryLogsDir  string `yaml:"summary_logs_dir"`
	OutputDir       string `yaml:"output_dir"`
	DBPath          string `yaml:"db_path"`
	History         bool   `yaml:"history"`
	SummaryFile     string `yaml:"summary_file"`
	DetectLanguages bool   `yaml:"detect_languages"`
	Cron            string `yaml:"cron"`
}

// DefaultRunConfig mirrors the directory layout the crawl pipeline produces.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		TaskDataDir:    DefaultTaskDataDir,
		SummaryLogsDir: DefaultSummaryLogsDir,
		OutputDir:      DefaultOutputDir,
		History:        true,
		Cron:           DefaultCron,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (*RunConfig, error) {
	cfg := DefaultRunConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the directories needed for a run are set.
func (c *RunConfig) Validate() error {
	if c.TaskDataDir == "" {
		return fmt.Errorf("task data directory is required")
	}
	if c.SummaryLogsDir == "" {
		return fmt.Errorf("summary logs directory is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}
