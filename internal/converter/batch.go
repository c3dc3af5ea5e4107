// =============================================================================
// Transaction Converter - Batch Conversion
// =============================================================================
//
// This module converts every supported file in a directory.
//
// CONCURRENCY:
//   Each file is converted in its own goroutine. At most MaxConcurrency
//   conversions run at once. A single conversion is still one synchronous
//   codec call per direction.
//
// FAILURE HANDLING:
//   - A failed file stays in the input directory and is listed in the
//     error log
//   - Without ContinueOnError, no new file is started after the first
//     failure; files already running finish
//
// =============================================================================

package converter

import (
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ginjaninja78/tx-converter/internal/logger"
	"github.com/ginjaninja78/tx-converter/pkg/utils"
)

// BatchOptions configures RunBatch.
type BatchOptions struct {
	Options

	// OutputFormat is the format every input is converted to.
	OutputFormat Format

	// NameFormat is passed to utils.GenerateOutputFileName with the
	// {name} placeholder set to the input name without extension.
	NameFormat string

	MaxConcurrency  int
	ContinueOnError bool

	// ErrorLog is the file name of the error log inside the output
	// directory.
	ErrorLog string
}

// RunBatch converts every .csv, .txt and .bin file in fm.InputDir.
//
// RETURNS:
//   - A summary of the run. Per-file failures are reported here, not as an
//     error.
//   - An error if the directories cannot be prepared or scanned.
func RunBatch(fm *utils.FileManager, opts BatchOptions) (utils.ProcessingSummary, error) {
	summary := utils.ProcessingSummary{StartTime: time.Now()}

	if err := fm.EnsureDirectories(); err != nil {
		return summary, err
	}

	extensions := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		extensions = append(extensions, f.Extension())
	}

	files, err := fm.DiscoverInputFiles(extensions)
	if err != nil {
		return summary, err
	}
	summary.TotalFiles = len(files)
	logger.Log.Infow("discovered input files", "dir", fm.InputDir, "count", len(files))

	workers := opts.MaxConcurrency
	if workers < 1 {
		workers = 1
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		failed  atomic.Bool
		sem     = make(chan struct{}, workers)
		entries []utils.ErrorLogEntry
	)

	for _, file := range files {
		sem <- struct{}{}

		if failed.Load() && !opts.ContinueOnError {
			<-sem
			mu.Lock()
			summary.SkippedFiles++
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			defer func() { <-sem }()

			processed, failure := convertOne(fm, src, opts)

			mu.Lock()
			defer mu.Unlock()

			if failure != nil {
				failed.Store(true)
				summary.FailedFiles++
				summary.FailedFilesList = append(summary.FailedFilesList, *failure)
				entries = append(entries, utils.ErrorLogEntry{
					Timestamp:    time.Now(),
					FileName:     failure.InputFile,
					Op:           failure.Op,
					ErrorMessage: failure.ErrorMessage,
				})
				return
			}

			summary.SuccessfulFiles++
			summary.TotalRecords += processed.Records
			summary.ProcessedFiles = append(summary.ProcessedFiles, *processed)
		}(file)
	}

	wg.Wait()

	sort.Slice(summary.ProcessedFiles, func(i, j int) bool {
		return summary.ProcessedFiles[i].InputFile < summary.ProcessedFiles[j].InputFile
	})
	sort.Slice(summary.FailedFilesList, func(i, j int) bool {
		return summary.FailedFilesList[i].InputFile < summary.FailedFilesList[j].InputFile
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].FileName < entries[j].FileName
	})

	if len(entries) > 0 {
		logPath, err := utils.WriteErrorLog(entries, filepath.Join(fm.OutputDir, opts.ErrorLog))
		if err != nil {
			logger.Log.Warnw("failed to write error log", "error", err)
		}
		summary.ErrorLogPath = logPath
	}

	summary.EndTime = time.Now()
	return summary, nil
}

// convertOne converts and archives a single file.
func convertOne(fm *utils.FileManager, src string, opts BatchOptions) (*utils.ProcessedFileInfo, *utils.FailedFileInfo) {
	name := utils.GenerateOutputFileName(opts.NameFormat, opts.OutputFormat.Extension(), map[string]string{
		"name": utils.TrimExtension(src),
	})
	dst := filepath.Join(fm.OutputDir, name)

	result := Convert(src, dst, opts.Options)
	if !result.Success {
		op := "convert"
		var convErr *Error
		if errors.As(result.Error, &convErr) {
			op = convErr.Op
		}
		logger.Log.Warnw("conversion failed", "file", src, "error", result.Error)
		return nil, &utils.FailedFileInfo{InputFile: src, Op: op, ErrorMessage: result.Error.Error()}
	}

	archived, err := fm.ArchiveInputFile(src)
	if err != nil {
		logger.Log.Warnw("archive failed", "file", src, "error", err)
		return nil, &utils.FailedFileInfo{InputFile: src, Op: "archive", ErrorMessage: err.Error()}
	}

	return &utils.ProcessedFileInfo{
		InputFile:   src,
		OutputFile:  dst,
		ArchivePath: archived,
		Records:     result.Stats.Records,
		ProcessTime: result.Stats.ProcessingTime,
	}, nil
}
