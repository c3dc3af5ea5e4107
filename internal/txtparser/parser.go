// =============================================================================
// Transaction Converter - TXT Codec
// =============================================================================
//
// This module reads and writes the human-readable key/value format:
//
//   # comment
//   TX_ID: 1
//   TX_TYPE: DEPOSIT
//   FROM_USER_ID: 0
//   TO_USER_ID: 1
//   AMOUNT: 1000
//   TIMESTAMP: 1633036860000
//   STATUS: SUCCESS
//   DESCRIPTION: "record 1"
//
// RULES:
//   - A record is one "KEY: value" line per field, in any order
//   - A blank line (empty or whitespace only) ends a record
//   - The last record may end at end of input instead
//   - Lines starting with '#' are comments
//   - Every field must appear exactly once per record
//
// =============================================================================

package txtparser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/tx-converter/internal/types"
	"github.com/ginjaninja78/tx-converter/internal/validation"
	"github.com/ginjaninja78/tx-converter/pkg/utils"
)

const (
	// KeySeparator separates a field name from its value.
	KeySeparator = ": "

	// CommentPrefix marks a line the decoder ignores.
	CommentPrefix = "#"

	reservedInDescription = "\r\n"
)

// Codec implements the TXT format. The zero value is ready to use.
type Codec struct{}

// Decode reads the whole input and parses it. See the package-level Decode.
func (Codec) Decode(r io.Reader) ([]types.Transaction, error) {
	return Decode(r)
}

// Encode writes transactions. See the package-level Encode.
func (Codec) Encode(w io.Writer, txs []types.Transaction) error {
	return Encode(w, txs)
}

// =============================================================================
// DECODING
// =============================================================================

// record is the state of the record being assembled.
type record struct {
	tx   types.Transaction
	seen [types.FieldCount]bool
}

func (r *record) pending() bool {
	for _, ok := range r.seen {
		if ok {
			return true
		}
	}
	return false
}

// missing returns the first unseen field in canonical order.
func (r *record) missing() (types.Field, bool) {
	for _, f := range types.Fields() {
		if !r.seen[f] {
			return f, true
		}
	}
	return 0, false
}

// Decode reads all of r and parses it as TXT.
//
// RETURNS:
//   - The transactions in input order.
//   - An *Error carrying the 0-based line index of the first failure.
func Decode(r io.Reader) ([]types.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Kind: KindRead, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &Error{Kind: KindRead, Err: fmt.Errorf("input is not valid UTF-8")}
	}

	lines := utils.Lines(string(data))

	var transactions []types.Transaction
	var current record

	// closeRecord emits the pending record, if any, and resets the state.
	closeRecord := func(line int) error {
		if !current.pending() {
			return nil
		}
		if f, ok := current.missing(); ok {
			return &Error{Kind: KindMissingField, Line: line, Field: f}
		}
		transactions = append(transactions, current.tx)
		current = record{}
		return nil
	}

	for i, line := range lines {
		if strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		if strings.TrimSpace(line) == "" {
			if err := closeRecord(i); err != nil {
				return nil, err
			}
			continue
		}

		if err := parseLine(&current, line, i); err != nil {
			return nil, err
		}
	}

	if err := closeRecord(len(lines)); err != nil {
		return nil, err
	}

	return transactions, nil
}

// parseLine applies one "KEY: value" line to the current record.
func parseLine(rec *record, line string, index int) error {
	key, value, ok := strings.Cut(line, KeySeparator)
	if !ok {
		return &Error{Kind: KindLineFormat, Line: index}
	}

	field, ok := types.LookupField(key)
	if !ok {
		return &Error{Kind: KindUnknownField, Line: index, Err: fmt.Errorf("key %q", key)}
	}

	if rec.seen[field] {
		return &Error{Kind: KindFieldAlreadyExists, Line: index, Field: field}
	}

	if err := validation.ParseValue(&rec.tx, field, value); err != nil {
		return &Error{Kind: KindInvalidField, Line: index, Field: field, Err: err}
	}
	rec.seen[field] = true

	return nil
}

// =============================================================================
// ENCODING
// =============================================================================

// Encode writes each transaction as eight "KEY: value" lines in canonical
// order followed by one blank line. The output is written with a single call.
func Encode(w io.Writer, txs []types.Transaction) error {
	var buf bytes.Buffer

	for i, tx := range txs {
		if err := validation.CheckDescription(tx.Description, reservedInDescription); err != nil {
			return &Error{Kind: KindInvalidField, Line: -1, Record: i, Field: types.FieldDescription, Err: err}
		}

		for _, field := range types.Fields() {
			value := types.FieldValue(tx, field)
			if field == types.FieldDescription {
				value = validation.QuoteDescription(value)
			}
			buf.WriteString(field.String())
			buf.WriteString(KeySeparator)
			buf.WriteString(value)
			buf.WriteByte('\n')
		}
		buf.WriteByte('\n')
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return &Error{Kind: KindWrite, Err: err}
	}

	return nil
}
