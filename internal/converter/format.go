package converter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/tx-converter/internal/binparser"
	"github.com/ginjaninja78/tx-converter/internal/csvparser"
	"github.com/ginjaninja78/tx-converter/internal/txtparser"
	"github.com/ginjaninja78/tx-converter/internal/types"
)

// ErrUnknownExtension is returned when no codec matches a file name.
var ErrUnknownExtension = errors.New("unknown extension")

// Format identifies one of the supported file formats.
type Format int

const (
	FormatCsv Format = iota + 1
	FormatTxt
	FormatBin
)

var formatExtensions = map[Format]string{
	FormatCsv: "csv",
	FormatTxt: "txt",
	FormatBin: "bin",
}

var formatsByExtension = map[string]Format{
	"csv": FormatCsv,
	"txt": FormatTxt,
	"bin": FormatBin,
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatCsv, FormatTxt, FormatBin}
}

// String returns the extension token, e.g. "csv".
func (f Format) String() string {
	if ext, ok := formatExtensions[f]; ok {
		return ext
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// ResolveFormat maps a file name or bare extension to a Format.
// Only the text after the last '.' is considered; a string without a dot is
// treated as the extension itself. Matching is exact and case-sensitive.
func ResolveFormat(nameOrExt string) (Format, error) {
	ext := nameOrExt
	if i := strings.LastIndex(nameOrExt, "."); i >= 0 {
		ext = nameOrExt[i+1:]
	}

	if f, ok := formatsByExtension[ext]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownExtension, nameOrExt)
}

// Codec is the decode/encode contract every format implements.
type Codec interface {
	Decode(r io.Reader) ([]types.Transaction, error)
	Encode(w io.Writer, txs []types.Transaction) error
}

// Options tunes codec behavior.
type Options struct {
	// StrictRecordSize enables the binary record_size check.
	StrictRecordSize bool
}

// CodecFor returns the codec for f.
func CodecFor(f Format, opts Options) (Codec, error) {
	switch f {
	case FormatCsv:
		return csvparser.Codec{}, nil
	case FormatTxt:
		return txtparser.Codec{}, nil
	case FormatBin:
		return binparser.Codec{Strict: opts.StrictRecordSize}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, f)
	}
}
