package converter

import (
	"github.com/ginjaninja78/tx-converter/internal/logger"
)

// CompareResult describes how two decoded files relate.
type CompareResult struct {
	// Equal is true when both files hold the same transactions in the
	// same order.
	Equal bool

	LeftCount  int
	RightCount int

	// FirstMismatch is the index of the first differing transaction, or of
	// the first transaction present in only one file. It is -1 when Equal.
	FirstMismatch int
}

// Compare decodes both files, each with the codec matching its extension,
// and compares the transaction sequences.
func Compare(left, right string, opts Options) (CompareResult, error) {
	a, err := ReadFile(left, opts)
	if err != nil {
		return CompareResult{}, err
	}
	b, err := ReadFile(right, opts)
	if err != nil {
		return CompareResult{}, err
	}

	result := CompareResult{
		LeftCount:     len(a),
		RightCount:    len(b),
		FirstMismatch: -1,
	}

	shared := min(len(a), len(b))
	for i := 0; i < shared; i++ {
		if a[i] != b[i] {
			result.FirstMismatch = i
			break
		}
	}
	if result.FirstMismatch < 0 && len(a) != len(b) {
		result.FirstMismatch = shared
	}
	result.Equal = result.FirstMismatch < 0

	logger.Log.Debugw("compared files",
		"left", left,
		"right", right,
		"equal", result.Equal,
		"first_mismatch", result.FirstMismatch,
	)

	return result, nil
}
