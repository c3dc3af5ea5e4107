package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/tx-converter/pkg/utils"
)

func newBatchDirs(t *testing.T) *utils.FileManager {
	root := t.TempDir()
	fm := utils.NewFileManager(
		filepath.Join(root, "in"),
		filepath.Join(root, "out"),
		filepath.Join(root, "archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func batchOptions() BatchOptions {
	return BatchOptions{
		OutputFormat:   FormatTxt,
		NameFormat:     "{name}_{uuid}",
		MaxConcurrency: 2,
		ErrorLog:       "errors.log",
	}
}

func TestRunBatch_Success(t *testing.T) {
	fm := newBatchDirs(t)
	txs := sampleTransactions()

	require.NoError(t, WriteFile(filepath.Join(fm.InputDir, "a.csv"), txs, Options{}))
	require.NoError(t, WriteFile(filepath.Join(fm.InputDir, "b.bin"), txs[:1], Options{}))
	require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, "readme.md"), []byte("skip"), 0o644))

	summary, err := RunBatch(fm, batchOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 2, summary.SuccessfulFiles)
	assert.Zero(t, summary.FailedFiles)
	assert.Equal(t, 3, summary.TotalRecords)
	assert.Empty(t, summary.ErrorLogPath)

	require.Len(t, summary.ProcessedFiles, 2)
	first := summary.ProcessedFiles[0]
	assert.Equal(t, filepath.Join(fm.InputDir, "a.csv"), first.InputFile)
	assert.Equal(t, ".txt", filepath.Ext(first.OutputFile))
	assert.Contains(t, filepath.Base(first.OutputFile), "a_")

	got, err := ReadFile(first.OutputFile, Options{})
	require.NoError(t, err)
	assert.Equal(t, txs, got)

	assert.FileExists(t, filepath.Join(fm.ArchiveDir, "a.csv"))
	assert.NoFileExists(t, filepath.Join(fm.InputDir, "a.csv"))
	assert.FileExists(t, filepath.Join(fm.InputDir, "readme.md"))
}

func TestRunBatch_ContinueOnError(t *testing.T) {
	fm := newBatchDirs(t)
	require.NoError(t, WriteFile(filepath.Join(fm.InputDir, "good.csv"), sampleTransactions(), Options{}))
	require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, "bad.bin"), []byte{0, 1, 2, 3}, 0o644))

	opts := batchOptions()
	opts.ContinueOnError = true

	summary, err := RunBatch(fm, opts)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.SuccessfulFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	require.Len(t, summary.FailedFilesList, 1)
	assert.Equal(t, "decode", summary.FailedFilesList[0].Op)
	assert.FileExists(t, filepath.Join(fm.InputDir, "bad.bin"), "failed inputs stay put")

	require.NotEmpty(t, summary.ErrorLogPath)
	data, err := os.ReadFile(summary.ErrorLogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bad.bin")
	assert.Contains(t, string(data), "invalid magic")
}

func TestRunBatch_StopsAfterFailure(t *testing.T) {
	fm := newBatchDirs(t)
	require.NoError(t, os.WriteFile(filepath.Join(fm.InputDir, "a.bin"), []byte{0}, 0o644))
	require.NoError(t, WriteFile(filepath.Join(fm.InputDir, "b.csv"), sampleTransactions(), Options{}))
	require.NoError(t, WriteFile(filepath.Join(fm.InputDir, "c.csv"), sampleTransactions(), Options{}))

	opts := batchOptions()
	opts.MaxConcurrency = 1

	summary, err := RunBatch(fm, opts)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, 2, summary.SkippedFiles)
	assert.Zero(t, summary.SuccessfulFiles)
}

func TestRunBatch_EmptyInput(t *testing.T) {
	fm := newBatchDirs(t)

	summary, err := RunBatch(fm, batchOptions())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalFiles)
}
