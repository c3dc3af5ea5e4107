// =============================================================================
// Transaction Converter - Converter Module
// =============================================================================
//
// This module is the file-level layer around the codecs. It picks a codec
// from the file extension, opens and creates files, and reports what was
// done. The codecs themselves never touch the filesystem.
//
// CONVERSION PIPELINE:
//   1. Resolve the source and destination formats from their extensions
//   2. Read the source file and decode it
//   3. Encode the transactions in the destination format
//   4. Write the destination file
//
// The destination file is only created once encoding has succeeded, so a
// failed conversion never leaves a partial output behind.
//
// =============================================================================

package converter

import (
	"bytes"
	"os"
	"time"

	"github.com/ginjaninja78/tx-converter/internal/logger"
	"github.com/ginjaninja78/tx-converter/internal/types"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// Source is the path of the input file.
	Source string

	// Destination is the path of the output file.
	// It is set even when the conversion failed.
	Destination string

	// Success indicates whether the output file was written.
	Success bool

	// Error is a *Error when the conversion failed, nil otherwise.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about one conversion.
type Stats struct {
	SourceFormat Format
	TargetFormat Format

	// Records is the number of transactions decoded.
	Records int

	BytesRead    int
	BytesWritten int

	ProcessingTime time.Duration
}

// =============================================================================
// CONVERSION
// =============================================================================

// Convert reads src, converts it to the format named by dst's extension, and
// writes dst.
//
// PARAMETERS:
//   - src: The input file. Its extension selects the decoder.
//   - dst: The output file. Its extension selects the encoder.
//   - opts: Codec options.
//
// RETURNS:
//   - A Result. On failure Result.Error holds a *Error naming the step.
func Convert(src, dst string, opts Options) Result {
	start := time.Now()
	result := Result{Source: src, Destination: dst}

	targetFormat, err := ResolveFormat(dst)
	if err != nil {
		result.Error = &Error{Op: "resolve", Path: dst, Err: err}
		return finish(result, start)
	}
	result.Stats.TargetFormat = targetFormat

	txs, sourceFormat, n, err := readFile(src, opts)
	result.Stats.SourceFormat = sourceFormat
	result.Stats.BytesRead = n
	if err != nil {
		result.Error = err
		return finish(result, start)
	}
	result.Stats.Records = len(txs)

	n, err = writeFile(dst, targetFormat, txs, opts)
	result.Stats.BytesWritten = n
	if err != nil {
		result.Error = err
		return finish(result, start)
	}

	result.Success = true
	logger.Log.Infow("converted file",
		"source", src,
		"destination", dst,
		"from", sourceFormat.String(),
		"to", targetFormat.String(),
		"records", len(txs),
	)

	return finish(result, start)
}

// finish stamps the elapsed time.
func finish(result Result, start time.Time) Result {
	result.Stats.ProcessingTime = time.Since(start)
	return result
}

// =============================================================================
// FILE I/O
// =============================================================================

// ReadFile decodes the file at path using the codec chosen by its extension.
func ReadFile(path string, opts Options) ([]types.Transaction, error) {
	txs, _, _, err := readFile(path, opts)
	return txs, err
}

// WriteFile encodes txs using the codec chosen by the extension of path and
// writes the result, replacing any existing file.
func WriteFile(path string, txs []types.Transaction, opts Options) error {
	format, err := ResolveFormat(path)
	if err != nil {
		return &Error{Op: "resolve", Path: path, Err: err}
	}
	_, err = writeFile(path, format, txs, opts)
	return err
}

func readFile(path string, opts Options) ([]types.Transaction, Format, int, error) {
	format, err := ResolveFormat(path)
	if err != nil {
		return nil, 0, 0, &Error{Op: "resolve", Path: path, Err: err}
	}

	codec, err := CodecFor(format, opts)
	if err != nil {
		return nil, format, 0, &Error{Op: "resolve", Path: path, Format: format, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, format, 0, &Error{Op: "read", Path: path, Format: format, Err: err}
	}

	txs, err := codec.Decode(bytes.NewReader(data))
	if err != nil {
		logger.Log.Debugw("decode failed", "path", path, "format", format.String(), "error", err)
		return nil, format, len(data), &Error{Op: "decode", Path: path, Format: format, Err: err}
	}

	logger.Log.Debugw("decoded file", "path", path, "format", format.String(), "records", len(txs), "bytes", len(data))
	return txs, format, len(data), nil
}

func writeFile(path string, format Format, txs []types.Transaction, opts Options) (int, error) {
	codec, err := CodecFor(format, opts)
	if err != nil {
		return 0, &Error{Op: "resolve", Path: path, Format: format, Err: err}
	}

	var buf bytes.Buffer
	if err := codec.Encode(&buf, txs); err != nil {
		return 0, &Error{Op: "encode", Path: path, Format: format, Err: err}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, &Error{Op: "write", Path: path, Format: format, Err: err}
	}

	logger.Log.Debugw("wrote file", "path", path, "format", format.String(), "records", len(txs), "bytes", buf.Len())
	return buf.Len(), nil
}
