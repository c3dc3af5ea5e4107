// =============================================================================
// Transaction Converter - Configuration Module
// =============================================================================
//
// This module loads the application configuration.
//
// SOURCES (later sources win):
//   1. Built-in defaults
//   2. An optional YAML file (--config)
//   3. Environment variables, optionally read from a .env file
//
// ENVIRONMENT VARIABLES:
//   CONVERTER_LOG_LEVEL            log.level
//   CONVERTER_LOG_ENCODING         log.encoding
//   CONVERTER_STRICT_RECORD_SIZE   binary.strict_record_size
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvLogLevel         = "CONVERTER_LOG_LEVEL"
	EnvLogEncoding      = "CONVERTER_LOG_ENCODING"
	EnvStrictRecordSize = "CONVERTER_STRICT_RECORD_SIZE"
)

// DefaultEnvFile is the dotenv file read before environment overrides.
// A missing file is not an error.
const DefaultEnvFile = ".env"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Binary BinaryConfig `yaml:"binary"`
	Batch  BatchConfig  `yaml:"batch"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level"`

	// Encoding is one of console, json, logfmt.
	// Default: "console"
	Encoding string `yaml:"encoding"`
}

// BinaryConfig controls the binary codec.
type BinaryConfig struct {
	// StrictRecordSize rejects records whose record_size field disagrees
	// with the actual record length.
	// Default: false
	StrictRecordSize bool `yaml:"strict_record_size"`
}

// BatchConfig controls the batch command.
type BatchConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for .csv, .txt and .bin files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives converted files.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir receives input files after a successful conversion.
	// Default: "./input_archive"
	ArchiveDir string `yaml:"archive_dir"`

	// =========================================================================
	// CONVERSION SETTINGS
	// =========================================================================

	// OutputFormat is the target format: csv, txt or bin.
	// Default: "csv"
	OutputFormat string `yaml:"output_format"`

	// OutputNameFormat names output files. Placeholders: {name} (input file
	// name without extension), {uuid}, {timestamp}. The target extension is
	// appended.
	// Default: "{name}_{uuid}"
	OutputNameFormat string `yaml:"output_name_format"`

	// MaxConcurrency bounds the number of files converted at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError keeps converting remaining files after a failure.
	// Default: false
	ContinueOnError bool `yaml:"continue_on_error"`

	// ErrorLog is the file name, inside OutputDir, of the failure report.
	// Default: "errors.log"
	ErrorLog string `yaml:"error_log"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load builds the configuration.
//
// PARAMETERS:
//   - configPath: A YAML file to read. Empty means defaults only.
//   - envFile: A dotenv file to read before environment overrides. Empty
//     means DefaultEnvFile.
//
// RETURNS:
//   - The validated configuration.
//   - An error if the file cannot be read or a value is invalid.
func Load(configPath, envFile string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if envFile == "" {
		envFile = DefaultEnvFile
	}
	// godotenv never overrides variables that are already set.
	_ = godotenv.Load(envFile)

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills in zero values.
func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Encoding == "" {
		cfg.Log.Encoding = "console"
	}
	if cfg.Batch.InputDir == "" {
		cfg.Batch.InputDir = "./input"
	}
	if cfg.Batch.OutputDir == "" {
		cfg.Batch.OutputDir = "./output"
	}
	if cfg.Batch.ArchiveDir == "" {
		cfg.Batch.ArchiveDir = "./input_archive"
	}
	if cfg.Batch.OutputFormat == "" {
		cfg.Batch.OutputFormat = "csv"
	}
	if cfg.Batch.OutputNameFormat == "" {
		cfg.Batch.OutputNameFormat = "{name}_{uuid}"
	}
	if cfg.Batch.MaxConcurrency == 0 {
		cfg.Batch.MaxConcurrency = 4
	}
	if cfg.Batch.ErrorLog == "" {
		cfg.Batch.ErrorLog = "errors.log"
	}
}

// applyEnv overrides fields from the environment.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogEncoding); ok && v != "" {
		cfg.Log.Encoding = v
	}
	if v, ok := os.LookupEnv(EnvStrictRecordSize); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrictRecordSize, err)
		}
		cfg.Binary.StrictRecordSize = strict
	}
	return nil
}

// validate checks values that have a closed set of options.
func validate(cfg *Config) error {
	switch cfg.Log.Encoding {
	case "console", "json", "logfmt":
	default:
		return fmt.Errorf("log.encoding must be console, json or logfmt, got %q", cfg.Log.Encoding)
	}

	switch strings.ToLower(cfg.Batch.OutputFormat) {
	case "csv", "txt", "bin":
		cfg.Batch.OutputFormat = strings.ToLower(cfg.Batch.OutputFormat)
	default:
		return fmt.Errorf("batch.output_format must be csv, txt or bin, got %q", cfg.Batch.OutputFormat)
	}

	if cfg.Batch.MaxConcurrency < 1 {
		return fmt.Errorf("batch.max_concurrency must be at least 1, got %d", cfg.Batch.MaxConcurrency)
	}

	return nil
}
