package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/tx-converter/internal/converter"
	"github.com/ginjaninja78/tx-converter/pkg/utils"
)

var (
	batchInputDir  string
	batchOutputDir string
	batchFormat    string
	noArchive      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every transaction file in the input directory",
	Long: `The batch command scans the input directory for .csv, .txt and .bin
files and converts each one to the configured output format. Files are
converted concurrently, up to batch.max_concurrency at a time.

On success:
  - The converted file is written to the output directory
  - The input file is moved to the archive directory

On error:
  - An error log is created in the output directory
  - The input file remains in the input directory
  - Unless batch.continue_on_error is set, no further files are started

Directories and the output format come from the configuration file and can
be overridden with flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd)
	},
}

func runBatch(cmd *cobra.Command) error {
	cfg := appConfig.Batch
	if batchInputDir != "" {
		cfg.InputDir = batchInputDir
	}
	if batchOutputDir != "" {
		cfg.OutputDir = batchOutputDir
	}
	if batchFormat != "" {
		cfg.OutputFormat = batchFormat
	}

	format, err := converter.ResolveFormat(cfg.OutputFormat)
	if err != nil {
		return fmt.Errorf("invalid output format: %w", err)
	}

	fm := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ArchiveDir)
	fm.ArchiveOnSuccess = !noArchive

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Transaction Converter ===")
	fmt.Fprintf(out, "Converting files in %s to %s...\n", cfg.InputDir, format)

	summary, err := converter.RunBatch(fm, converter.BatchOptions{
		Options:         codecOptions(),
		OutputFormat:    format,
		NameFormat:      cfg.OutputNameFormat,
		MaxConcurrency:  cfg.MaxConcurrency,
		ContinueOnError: cfg.ContinueOnError,
		ErrorLog:        cfg.ErrorLog,
	})
	if err != nil {
		return err
	}

	if summary.TotalFiles == 0 {
		fmt.Fprintln(out, "No transaction files found in the input directory.")
		return nil
	}

	for _, pf := range summary.ProcessedFiles {
		fmt.Fprintf(out, "  ✓ %s -> %s (%d records)\n", pf.InputFile, pf.OutputFile, pf.Records)
	}

	if err := utils.WriteSummary(out, summary); err != nil {
		return err
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchInputDir, "input", "", "Override batch.input_dir")
	batchCmd.Flags().StringVar(&batchOutputDir, "output", "", "Override batch.output_dir")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "Override batch.output_format (csv, txt or bin)")
	batchCmd.Flags().BoolVar(&noArchive, "no-archive", false, "Leave input files in place after conversion")
}
