// Package config provides configuration management for the sbomcheck CLI.
//
// Configuration is merged from defaults, an optional sbomcheck.yaml file,
// SBOMCHECK_-prefixed environment variables, and CLI flags, in increasing
// order of precedence.
package config

// Config holds all CLI configuration options.
type Config struct {
	// OutDir is where CSV exception files and results.json are written.
	OutDir string `koanf:"out_dir"`
	// Extension is the filename suffix identifying SPDX JSON documents.
	Extension string `koanf:"extension"`
	// ResultsFile is the name of the aggregated JSON results file.
	ResultsFile string `koanf:"results_file"`
	// Workers bounds how many documents are checked concurrently.
	Workers int `koanf:"workers"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// OutputFormat selects the console rendering mode (auto|text|markdown|json).
	OutputFormat string `koanf:"output"`
}

// Default configuration values.
const (
	DefaultOutDir      = "."
	DefaultExtension   = ".spdx.json"
	DefaultResultsFile = "results.json"
	DefaultWorkers     = 4
	DefaultOutput      = "auto"
)
