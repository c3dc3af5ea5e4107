package converter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/tx-converter/internal/types"
)

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	txs := sampleTransactions()

	csvPath := filepath.Join(dir, "a.csv")
	binPath := filepath.Join(dir, "a.bin")
	require.NoError(t, WriteFile(csvPath, txs, Options{}))
	require.NoError(t, WriteFile(binPath, txs, Options{}))

	t.Run("same records across formats", func(t *testing.T) {
		result, err := Compare(csvPath, binPath, Options{})
		require.NoError(t, err)
		assert.Equal(t, CompareResult{Equal: true, LeftCount: 2, RightCount: 2, FirstMismatch: -1}, result)
	})

	t.Run("different record", func(t *testing.T) {
		changed := sampleTransactions()
		changed[1].Amount++
		path := filepath.Join(dir, "changed.txt")
		require.NoError(t, WriteFile(path, changed, Options{}))

		result, err := Compare(csvPath, path, Options{})
		require.NoError(t, err)
		assert.False(t, result.Equal)
		assert.Equal(t, 1, result.FirstMismatch)
	})

	t.Run("prefix", func(t *testing.T) {
		path := filepath.Join(dir, "short.txt")
		require.NoError(t, WriteFile(path, txs[:1], Options{}))

		result, err := Compare(csvPath, path, Options{})
		require.NoError(t, err)
		assert.False(t, result.Equal)
		assert.Equal(t, 1, result.FirstMismatch)
		assert.Equal(t, 2, result.LeftCount)
		assert.Equal(t, 1, result.RightCount)
	})

	t.Run("both empty", func(t *testing.T) {
		a := filepath.Join(dir, "empty.txt")
		b := filepath.Join(dir, "empty.bin")
		require.NoError(t, WriteFile(a, []types.Transaction{}, Options{}))
		require.NoError(t, WriteFile(b, nil, Options{}))

		result, err := Compare(a, b, Options{})
		require.NoError(t, err)
		assert.True(t, result.Equal)
	})

	t.Run("decode error", func(t *testing.T) {
		_, err := Compare(csvPath, filepath.Join(dir, "missing.bin"), Options{})
		var convErr *Error
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, "read", convErr.Op)
	})
}
