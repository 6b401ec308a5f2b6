// Package commands contains the sbomcheck CLI subcommands.
package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/leapstack-labs/sbomcheck/internal/cli/config"
	"github.com/leapstack-labs/sbomcheck/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's configuration
// and context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration. It uses
// config.GetCurrentConfig() if available, otherwise falls back to
// environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	workers := config.DefaultWorkers
	if v, err := strconv.Atoi(os.Getenv("SBOMCHECK_WORKERS")); err == nil && v > 0 {
		workers = v
	}
	return &config.Config{
		OutDir:       getEnvOrDefault("SBOMCHECK_OUT_DIR", config.DefaultOutDir),
		Extension:    getEnvOrDefault("SBOMCHECK_EXTENSION", config.DefaultExtension),
		ResultsFile:  getEnvOrDefault("SBOMCHECK_RESULTS_FILE", config.DefaultResultsFile),
		Workers:      workers,
		Verbose:      os.Getenv("SBOMCHECK_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("SBOMCHECK_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
