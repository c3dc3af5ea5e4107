// =============================================================================
// Transaction Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (converter)
//   ├── convertCmd  (converter convert)
//   ├── compareCmd  (converter compare)
//   ├── validateCmd (converter validate)
//   ├── batchCmd    (converter batch)
//   ├── exportCmd   (converter export)
//   └── versionCmd  (converter version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the configuration (defaults, --config file, environment)
//   2. Applies the --verbose and --strict overrides
//   3. Initializes the global logger
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/tx-converter/internal/config"
	"github.com/ginjaninja78/tx-converter/internal/converter"
	"github.com/ginjaninja78/tx-converter/internal/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the YAML configuration file. Empty means
// defaults and environment only.
var cfgFile string

// verbose switches the log level to debug.
var verbose bool

// strict enables the binary record_size check.
var strict bool

// appConfig is loaded by PersistentPreRunE.
var appConfig *config.Config

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "converter",
	Short: "Transaction Converter - Convert transaction files between CSV, TXT and binary",
	Long: `Transaction Converter reads financial transaction files in one format and
writes them in another. The format of every file is chosen by its extension:

  .csv  delimited text with a header row
  .txt  KEY: value blocks separated by blank lines
  .bin  YPBN-framed binary records

Example Usage:
  converter convert --from records.csv --to records.bin
  converter compare --file1 records.csv --file2 records.bin
  converter validate records.txt
  converter batch --config ./config.yaml
  converter export --from records.bin --to report.xlsx`,

	// Execute prints the error itself.
	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},

	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initApp loads the configuration and sets up logging.
func initApp() error {
	cfg, err := config.Load(cfgFile, "")
	if err != nil {
		return err
	}

	if verbose {
		cfg.Log.Level = "debug"
	}
	if strict {
		cfg.Binary.StrictRecordSize = true
	}

	if err := logger.Initialize(cfg.Log.Level, cfg.Log.Encoding); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appConfig = cfg
	logger.Log.Debugw("configuration loaded", "file", cfgFile, "strict_record_size", cfg.Binary.StrictRecordSize)
	return nil
}

// codecOptions derives codec options from the loaded configuration.
func codecOptions() converter.Options {
	return converter.Options{StrictRecordSize: appConfig.Binary.StrictRecordSize}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)

	rootCmd.PersistentFlags().BoolVar(
		&strict,
		"strict",
		false,
		"Reject binary records whose record_size does not match their length",
	)
}
