package txtparser

import (
	"fmt"

	"github.com/ginjaninja78/tx-converter/internal/types"
)

// ErrorKind classifies a TXT codec failure.
type ErrorKind int

const (
	// KindRead means the input could not be read or is not UTF-8.
	KindRead ErrorKind = iota + 1
	// KindLineFormat means a line has no ": " separator.
	KindLineFormat
	// KindUnknownField means a key is not a canonical field name.
	KindUnknownField
	// KindFieldAlreadyExists means a field appears twice in one record.
	KindFieldAlreadyExists
	// KindMissingField means a record was closed without one of its fields.
	KindMissingField
	// KindInvalidField means a value does not parse.
	KindInvalidField
	// KindWrite means the output sink failed.
	KindWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindRead:
		return "read error"
	case KindLineFormat:
		return "malformed line"
	case KindUnknownField:
		return "unknown field"
	case KindFieldAlreadyExists:
		return "duplicate field"
	case KindMissingField:
		return "missing field"
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
// For decode failures Line is the 0-based line index in the input. Encode
// failures set Line to -1 and Record to the index of the offending
// transaction.
// Field is set for KindFieldAlreadyExists, KindMissingField and
// KindInvalidField.
type Error struct {
	Kind   ErrorKind
	Line   int
	Record int
	Field  types.Field
	Err    error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindRead, KindWrite:
		msg = "txt: " + e.Kind.String()
	case KindLineFormat, KindUnknownField:
		msg = fmt.Sprintf("txt: %s on line %d", e.Kind, e.Line)
	default:
		if e.Line < 0 {
			msg = fmt.Sprintf("txt: %s %s in record %d", e.Kind, e.Field, e.Record)
		} else {
			msg = fmt.Sprintf("txt: %s %s on line %d", e.Kind, e.Field, e.Line)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
