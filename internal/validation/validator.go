// =============================================================================
// Transaction Converter - Field Validation
// =============================================================================
//
// This module holds the per-type parsing rules shared by the text codecs
// (CSV and TXT). Both formats render a field the same way, so both must
// parse it the same way:
//   - TX_ID, FROM_USER_ID, TO_USER_ID, AMOUNT : unsigned 64-bit decimal
//   - TIMESTAMP                                : signed 64-bit decimal
//   - TX_TYPE, STATUS                          : canonical token only
//   - DESCRIPTION                              : text wrapped in "..."
//
// VALIDATION STRATEGY:
//   Values are checked strictly. There is no trimming, no case folding and
//   no fallback to a default; a value either parses exactly or is rejected.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/tx-converter/internal/types"
)

// Quote is the delimiter wrapped around every serialized description.
const Quote = '"'

// ErrNotQuoted is returned when a description is not wrapped in quotes.
var ErrNotQuoted = errors.New("description must be wrapped in double quotes")

// ErrUnencodable is returned when a description contains a character the
// target format uses as a delimiter.
var ErrUnencodable = errors.New("description contains a reserved character")

// =============================================================================
// FIELD PARSING
// =============================================================================

// ParseValue parses raw as the textual form of field f and stores the result
// in tx.
//
// PARAMETERS:
//   - tx: The transaction being assembled.
//   - f: The field the value belongs to.
//   - raw: The value exactly as it appeared in the input.
//
// RETURNS:
//   - An error describing why the value does not parse. The caller attaches
//     the location (row or line) and the field.
func ParseValue(tx *types.Transaction, f types.Field, raw string) error {
	var err error

	switch f {
	case types.FieldTxID:
		tx.TxID, err = strconv.ParseUint(raw, 10, 64)
	case types.FieldTxType:
		tx.TxType, err = types.ParseTxType(raw)
	case types.FieldFromUserID:
		tx.FromUserID, err = strconv.ParseUint(raw, 10, 64)
	case types.FieldToUserID:
		tx.ToUserID, err = strconv.ParseUint(raw, 10, 64)
	case types.FieldAmount:
		tx.Amount, err = strconv.ParseUint(raw, 10, 64)
	case types.FieldTimestamp:
		tx.Timestamp, err = strconv.ParseInt(raw, 10, 64)
	case types.FieldStatus:
		tx.Status, err = types.ParseStatus(raw)
	case types.FieldDescription:
		tx.Description, err = Unquote(raw)
	default:
		err = fmt.Errorf("unknown field %s", f)
	}

	return err
}

// =============================================================================
// DESCRIPTION QUOTING
// =============================================================================

// Unquote strips exactly one leading and one trailing double quote.
// A value shorter than two characters, or one not wrapped on both sides,
// is rejected.
func Unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != Quote || s[len(s)-1] != Quote {
		return "", ErrNotQuoted
	}
	return s[1 : len(s)-1], nil
}

// QuoteDescription wraps a description in double quotes.
func QuoteDescription(s string) string {
	return string(Quote) + s + string(Quote)
}

// CheckDescription reports whether the description can be written to a
// format that reserves the characters in forbidden.
//
// CUSTOMIZATION:
//   Each codec passes its own delimiter set, e.g. ",\r\n" for CSV.
func CheckDescription(s, forbidden string) error {
	if i := strings.IndexAny(s, forbidden); i >= 0 {
		return fmt.Errorf("%w: %q at offset %d", ErrUnencodable, s[i], i)
	}
	return nil
}
