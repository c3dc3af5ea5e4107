// =============================================================================
// Transaction Converter - CSV Codec
// =============================================================================
//
// This module reads and writes the delimited-text transaction format:
//
//   TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION
//   1,DEPOSIT,0,1,1000,1633036860000,SUCCESS,"record 1"
//
// RULES:
//   - The first line must be the canonical header row, byte-for-byte
//   - Every other non-empty line has exactly 8 comma-separated columns
//   - Columns map positionally to the canonical field order
//   - The description column is wrapped in double quotes
//   - Empty lines are skipped
//
// The format has no escaping: a comma always separates columns, so a
// description containing a comma cannot be written.
//
// =============================================================================

package csvparser

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

// Separator is the column delimiter.
const Separator = ","

// reservedInDescription lists the characters a description may not contain.
const reservedInDescription = ",\r\n"

// Codec implements the CSV format. The zero value is ready to use.
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

// Decode reads all of r and parses it as CSV.
//
// RETURNS:
//   - The transactions in input order.
//   - An *Error on the first failure; nothing is returned alongside it.
func Decode(r io.Reader) ([]types.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Kind: KindRead, Err: err}
	}
	if !utf8.Valid(data) {
		return nil, &Error{Kind: KindRead, Err: fmt.Errorf("input is not valid UTF-8")}
	}

	lines := utils.Lines(string(data))
	if len(lines) == 0 || lines[0] != types.HeaderRow() {
		return nil, &Error{Kind: KindHeader, Line: 1}
	}

	transactions := make([]types.Transaction, 0, len(lines)-1)
	row := 0

	for i, line := range lines[1:] {
		// Skip empty lines.
		if line == "" {
			continue
		}

		tx, err := parseRow(line, row, i+2)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, tx)
		row++
	}

	return transactions, nil
}

// parseRow converts one data line into a Transaction.
//
// PARAMETERS:
//   - line: The raw line without its terminator.
//   - row: The 0-based data row index.
//   - lineNumber: The 1-based line number in the source.
func parseRow(line string, row, lineNumber int) (types.Transaction, error) {
	var tx types.Transaction

	columns := strings.Split(line, Separator)
	if len(columns) != types.FieldCount {
		return tx, &Error{
			Kind: KindLength,
			Row:  row,
			Line: lineNumber,
			Err:  fmt.Errorf("got %d columns, want %d", len(columns), types.FieldCount),
		}
	}

	for i, field := range types.Fields() {
		if err := validation.ParseValue(&tx, field, columns[i]); err != nil {
			return tx, &Error{
				Kind:  KindInvalidField,
				Row:   row,
				Line:  lineNumber,
				Field: field,
				Err:   err,
			}
		}
	}

	return tx, nil
}

// =============================================================================
// ENCODING
// =============================================================================

// Encode writes the header row followed by one line per transaction.
// The document is built in memory and written with a single call.
func Encode(w io.Writer, txs []types.Transaction) error {
	var buf bytes.Buffer

	buf.WriteString(types.HeaderRow())
	buf.WriteByte('\n')

	columns := make([]string, types.FieldCount)
	for row, tx := range txs {
		if err := validation.CheckDescription(tx.Description, reservedInDescription); err != nil {
			return &Error{Kind: KindInvalidField, Row: row, Field: types.FieldDescription, Err: err}
		}

		for i, field := range types.Fields() {
			columns[i] = types.FieldValue(tx, field)
		}
		columns[types.FieldDescription] = validation.QuoteDescription(tx.Description)

		buf.WriteString(strings.Join(columns, Separator))
		buf.WriteByte('\n')
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return &Error{Kind: KindWrite, Err: err}
	}

	return nil
}
