// =============================================================================
// Transaction Converter - File Manager Utility
// =============================================================================
//
// This module provides the file handling used by batch conversion:
//   - Directory management
//   - Input discovery by extension
//   - Output file naming
//   - Archival of converted inputs
//   - Error log and summary reports
//
// ARCHIVAL STRATEGY:
//   - Input files are moved to the archive directory after a successful
//     conversion
//   - Failed files remain in the input directory
//   - The error log is written to the output directory
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for batch conversion.
type FileManager struct {
	// InputDir is scanned for files to convert.
	InputDir string

	// OutputDir receives converted files and the error log.
	OutputDir string

	// ArchiveDir receives inputs after a successful conversion.
	ArchiveDir string

	// ArchiveOnSuccess determines whether inputs are moved after conversion.
	ArchiveOnSuccess bool
}

// NewFileManager creates a FileManager that archives on success.
func NewFileManager(inputDir, outputDir, archiveDir string) *FileManager {
	return &FileManager{
		InputDir:         inputDir,
		OutputDir:        outputDir,
		ArchiveDir:       archiveDir,
		ArchiveOnSuccess: true,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.InputDir, fm.OutputDir}
	if fm.ArchiveOnSuccess {
		dirs = append(dirs, fm.ArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the regular files directly inside the input
// directory whose extension is one of extensions.
//
// PARAMETERS:
//   - extensions: Extensions including the dot, e.g. ".csv". Matching is
//     exact and case-sensitive.
//
// RETURNS:
//   - The matching paths, sorted.
//   - An error if the directory cannot be read.
func (fm *FileManager) DiscoverInputFiles(extensions []string) ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[ext] = true
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if wanted[filepath.Ext(entry.Name())] {
			files = append(files, filepath.Join(fm.InputDir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveInputFile moves an input file to the archive directory.
//
// RETURNS:
//   - The path of the archived file, or filePath when archival is off.
//   - An error if the file could not be moved.
func (fm *FileManager) ArchiveInputFile(filePath string) (string, error) {
	if !fm.ArchiveOnSuccess {
		return filePath, nil
	}

	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := filepath.Join(fm.ArchiveDir, filepath.Base(filePath))

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName builds an output file name.
//
// PARAMETERS:
//   - format: The name template. Placeholders:
//       {uuid}      - A random UUID
//       {timestamp} - Current time (YYYYMMDD_HHMMSS)
//       {<key>}     - Any key of params
//   - ext: The extension to enforce, including the dot.
//   - params: Additional placeholder values.
//
// EXAMPLE:
//   format: "{name}_{uuid}", ext: ".bin", params: {"name": "march"}
//   result: "march_1b4e28ba-2fa1-11d2-883f-0016d3cca427.bin"
func GenerateOutputFileName(format, ext string, params map[string]string) string {
	pairs := []string{
		"{uuid}", uuid.New().String(),
		"{timestamp}", time.Now().Format("20060102_150405"),
	}
	for key, value := range params {
		pairs = append(pairs, "{"+key+"}", value)
	}

	result := strings.NewReplacer(pairs...).Replace(format)

	if !strings.HasSuffix(result, ext) {
		result += ext
	}

	return result
}

// TrimExtension returns the base name of path without its extension.
func TrimExtension(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// =============================================================================
// ERROR LOGGING
// =============================================================================

// ErrorLogEntry describes one failed file.
type ErrorLogEntry struct {
	Timestamp time.Time
	FileName  string

	// Op is the step that failed, e.g. "decode" or "archive".
	Op string

	ErrorMessage string
}

// WriteErrorLog writes entries to logPath. Nothing is written when entries
// is empty.
//
// RETURNS:
//   - The path written, or "" when there was nothing to write.
func WriteErrorLog(entries []ErrorLogEntry, logPath string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Transaction Converter - Error Log\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Timestamp:      %s\n"+
			"  File:           %s\n"+
			"  Step:           %s\n"+
			"  Message:        %s\n\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.FileName,
			entry.Op,
			entry.ErrorMessage)
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// ProcessingSummary contains the outcome of a batch run.
type ProcessingSummary struct {
	StartTime       time.Time
	EndTime         time.Time
	TotalFiles      int
	SuccessfulFiles int
	FailedFiles     int

	// SkippedFiles were not attempted because an earlier file failed.
	SkippedFiles int

	TotalRecords    int
	ProcessedFiles  []ProcessedFileInfo
	FailedFilesList []FailedFileInfo

	// ErrorLogPath is set when an error log was written.
	ErrorLogPath string
}

// ProcessedFileInfo describes one converted file.
type ProcessedFileInfo struct {
	InputFile   string
	OutputFile  string
	ArchivePath string
	Records     int
	ProcessTime time.Duration
}

// FailedFileInfo describes one file that could not be converted.
type FailedFileInfo struct {
	InputFile    string
	Op           string
	ErrorMessage string
}

// WriteSummary renders summary as text.
func WriteSummary(w io.Writer, summary ProcessingSummary) error {
	writer := bufio.NewWriter(w)

	fmt.Fprintf(writer, "\n=== Processing Complete ===\n"+
		"Total files:     %d\n"+
		"Successful:      %d\n"+
		"Failed:          %d\n"+
		"Skipped:         %d\n"+
		"Records:         %d\n"+
		"Time elapsed:    %s\n",
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.FailedFiles,
		summary.SkippedFiles,
		summary.TotalRecords,
		summary.EndTime.Sub(summary.StartTime))

	if len(summary.FailedFilesList) > 0 {
		writer.WriteString("\nFailed Files:\n")
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  %s: %s\n", ff.InputFile, ff.ErrorMessage)
		}
	}
	if summary.ErrorLogPath != "" {
		fmt.Fprintf(writer, "\nErrors have been logged to %s\n", summary.ErrorLogPath)
	}

	return writer.Flush()
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
