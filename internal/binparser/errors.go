package binparser

import (
	"fmt"

	"github.com/ginjaninja78/tx-converter/internal/types"
)

// ErrorKind classifies a binary codec failure.
type ErrorKind int

const (
	// KindRead means the input could not be read.
	KindRead ErrorKind = iota + 1
	// KindInvalidLength means a record ends before one of its fields.
	KindInvalidLength
	// KindInvalidMagic means a record does not start with "YPBN".
	KindInvalidMagic
	// KindInvalidRecordSize means record_size disagrees with the record.
	KindInvalidRecordSize
	// KindInvalidDescLen means desc_len is negative or too large.
	KindInvalidDescLen
	// KindInvalidField means a field value is out of range or malformed.
	KindInvalidField
	// KindWrite means the output sink failed.
	KindWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindRead:
		return "read error"
	case KindInvalidLength:
		return "unexpected end of record"
	case KindInvalidMagic:
		return "invalid magic"
	case KindInvalidRecordSize:
		return "invalid record size"
	case KindInvalidDescLen:
		return "invalid description length"
	case KindInvalidField:
		return "invalid field"
	case KindWrite:
		return "write error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is returned by Decode and Encode.
// Record is the 0-based index of the record being read or written and Offset
// is the byte offset at which that record starts. Field is only meaningful
// for KindInvalidField.
type Error struct {
	Kind   ErrorKind
	Record int
	Offset int
	Field  types.Field
	Err    error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindRead, KindWrite:
		msg = "bin: " + e.Kind.String()
	case KindInvalidField:
		msg = fmt.Sprintf("bin: %s %s in record %d", e.Kind, e.Field, e.Record)
	default:
		msg = fmt.Sprintf("bin: %s in record %d", e.Kind, e.Record)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
