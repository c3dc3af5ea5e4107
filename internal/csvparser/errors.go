package csvparser

import (
	"fmt"

	"github.com/ginjaninja78/tx-converter/internal/types"
)

// ErrorKind classifies a CSV codec failure.
type ErrorKind int

const (
	// KindRead means the input could not be read as UTF-8 text.
	KindRead ErrorKind = iota + 1
	// KindHeader means the first line is not the canonical header row.
	KindHeader
	// KindLength means a data row does not have exactly 8 columns.
	KindLength
	// KindInvalidField means a column does not parse to its field's type.
	KindInvalidField
	// KindWrite means the output sink failed.
	KindWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindRead:
		return "read error"
	case KindHeader:
		return "invalid header"
	case KindLength:
		return "invalid column count"
	case KindInvalidField:
		return "invalid field"
	case KindWrite:
		return "write error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by Decode and Encode.
//
// Row is the 0-based data row index (the header is not counted) and is only
// meaningful for KindLength and KindInvalidField. Line is the 1-based line
// number in the source text, kept for diagnostics. Field is only meaningful
// for KindInvalidField.
type Error struct {
	Kind  ErrorKind
	Row   int
	Line  int
	Field types.Field
	Err   error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindLength:
		msg = fmt.Sprintf("csv: %s in row %d", e.Kind, e.Row)
	case KindInvalidField:
		msg = fmt.Sprintf("csv: %s %s in row %d", e.Kind, e.Field, e.Row)
	default:
		msg = "csv: " + e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
