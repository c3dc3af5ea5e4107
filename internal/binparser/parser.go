// =============================================================================
// Transaction Converter - Binary Codec
// =============================================================================
//
// This module reads and writes the self-framing binary transaction format.
// A file is a plain concatenation of records; there is no file header.
//
// RECORD LAYOUT (all integers big-endian):
//
//   | Offset | Size     | Field                                        |
//   |--------|----------|----------------------------------------------|
//   | 0      | 4        | magic "YPBN"                                 |
//   | 4      | 4        | record_size (u32), bytes after this field    |
//   | 8      | 8        | tx_id (u64)                                  |
//   | 16     | 1        | tx_type: 0=DEPOSIT 1=TRANSFER 2=WITHDRAWAL   |
//   | 17     | 8        | from_user_id (u64)                           |
//   | 25     | 8        | to_user_id (u64)                             |
//   | 33     | 8        | amount (u64)                                 |
//   | 41     | 8        | timestamp (i64)                              |
//   | 49     | 1        | status: 0=SUCCESS 1=FAILURE 2=PENDING        |
//   | 50     | 4        | desc_len (i32), payload length with quotes   |
//   | 54     | desc_len | description, UTF-8, wrapped in "..."         |
//
// RECORD SIZE:
//   The encoder always writes record_size = 46 + desc_len. Files produced by
//   other writers are known to carry inconsistent values, so the decoder only
//   checks it when Strict is set.
//
// =============================================================================

package binparser

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/ginjaninja78/tx-converter/internal/types"
	"github.com/ginjaninja78/tx-converter/internal/validation"
)

// Magic is the 4-byte marker at the start of every record.
var Magic = [4]byte{'Y', 'P', 'B', 'N'}

const (
	// prefixSize covers magic and record_size.
	prefixSize = 8

	// fixedBodySize covers tx_id through desc_len.
	fixedBodySize = 8 + 1 + 8 + 8 + 8 + 8 + 1 + 4

	// maxDescLen keeps record_size within a u32 and desc_len within an i32.
	maxDescLen = math.MaxInt32 - fixedBodySize
)

// Wire values for the enum fields. The tables are explicit so a change to
// the Go constants can never silently change the file format.
var (
	txTypeCodes = map[types.TxType]byte{
		types.Deposit:    0,
		types.Transfer:   1,
		types.Withdrawal: 2,
	}
	txTypeByCode = map[byte]types.TxType{
		0: types.Deposit,
		1: types.Transfer,
		2: types.Withdrawal,
	}
	statusCodes = map[types.Status]byte{
		types.Success: 0,
		types.Failure: 1,
		types.Pending: 2,
	}
	statusByCode = map[byte]types.Status{
		0: types.Success,
		1: types.Failure,
		2: types.Pending,
	}
)

// Codec implements the binary format.
type Codec struct {
	// Strict rejects records whose record_size does not equal the number of
	// bytes that actually follow it.
	Strict bool
}

// Decode parses all of r. It uses the lenient codec.
func Decode(r io.Reader) ([]types.Transaction, error) {
	return Codec{}.Decode(r)
}

// Encode writes txs to w.
func Encode(w io.Writer, txs []types.Transaction) error {
	return Codec{}.Encode(w, txs)
}

// =============================================================================
// DECODING
// =============================================================================

// Decode reads all of r and parses records until the input is exhausted.
//
// RETURNS:
//   - The transactions in input order.
//   - An *Error naming the record index on the first failure.
func (c Codec) Decode(r io.Reader) ([]types.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Kind: KindRead, Err: err}
	}

	var transactions []types.Transaction
	cur := &cursor{data: data}

	for index := 0; cur.remaining() > 0; index++ {
		tx, err := c.decodeRecord(cur, index)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// decodeRecord reads one record starting at the cursor position.
func (c Codec) decodeRecord(cur *cursor, index int) (types.Transaction, error) {
	var tx types.Transaction
	start := cur.off

	fail := func(kind ErrorKind, field types.Field, cause error) (types.Transaction, error) {
		return types.Transaction{}, &Error{Kind: kind, Record: index, Offset: start, Field: field, Err: cause}
	}
	truncated := func() (types.Transaction, error) {
		return fail(KindInvalidLength, 0, nil)
	}

	magic, ok := cur.take(len(Magic))
	if !ok {
		return truncated()
	}
	if !bytes.Equal(magic, Magic[:]) {
		return fail(KindInvalidMagic, 0, fmt.Errorf("got %q", magic))
	}

	recordSize, ok := cur.uint32()
	if !ok {
		return truncated()
	}

	if tx.TxID, ok = cur.uint64(); !ok {
		return truncated()
	}

	code, ok := cur.uint8()
	if !ok {
		return truncated()
	}
	if tx.TxType, ok = txTypeByCode[code]; !ok {
		return fail(KindInvalidField, types.FieldTxType, fmt.Errorf("unknown code %d", code))
	}

	if tx.FromUserID, ok = cur.uint64(); !ok {
		return truncated()
	}
	if tx.ToUserID, ok = cur.uint64(); !ok {
		return truncated()
	}
	if tx.Amount, ok = cur.uint64(); !ok {
		return truncated()
	}

	timestamp, ok := cur.uint64()
	if !ok {
		return truncated()
	}
	tx.Timestamp = int64(timestamp)

	if code, ok = cur.uint8(); !ok {
		return truncated()
	}
	if tx.Status, ok = statusByCode[code]; !ok {
		return fail(KindInvalidField, types.FieldStatus, fmt.Errorf("unknown code %d", code))
	}

	rawDescLen, ok := cur.uint32()
	if !ok {
		return truncated()
	}
	descLen := int32(rawDescLen)
	if descLen < 0 {
		return fail(KindInvalidDescLen, 0, fmt.Errorf("negative length %d", descLen))
	}

	payload, ok := cur.take(int(descLen))
	if !ok {
		return fail(KindInvalidLength, 0, fmt.Errorf("description needs %d bytes, %d left", descLen, cur.remaining()))
	}
	if !utf8.Valid(payload) {
		return fail(KindInvalidField, types.FieldDescription, fmt.Errorf("description is not valid UTF-8"))
	}

	description, err := validation.Unquote(string(payload))
	if err != nil {
		return fail(KindInvalidField, types.FieldDescription, err)
	}
	tx.Description = description

	if c.Strict {
		actual := cur.off - start - prefixSize
		if uint64(recordSize) != uint64(actual) {
			return fail(KindInvalidRecordSize, 0, fmt.Errorf("header says %d, record has %d", recordSize, actual))
		}
	}

	return tx, nil
}

// =============================================================================
// ENCODING
// =============================================================================

// Encode serializes every transaction and writes the result with a single
// call. Records are concatenated without separators.
func (c Codec) Encode(w io.Writer, txs []types.Transaction) error {
	var buf []byte

	for index, tx := range txs {
		record, err := appendRecord(nil, tx)
		if err != nil {
			if binErr, ok := err.(*Error); ok {
				binErr.Record = index
				binErr.Offset = len(buf)
			}
			return err
		}
		buf = append(buf, record...)
	}

	if _, err := w.Write(buf); err != nil {
		return &Error{Kind: KindWrite, Err: err}
	}

	return nil
}

// appendRecord appends the encoding of tx to buf.
func appendRecord(buf []byte, tx types.Transaction) ([]byte, error) {
	txTypeCode, ok := txTypeCodes[tx.TxType]
	if !ok {
		return nil, &Error{Kind: KindInvalidField, Field: types.FieldTxType, Err: fmt.Errorf("unknown value %d", tx.TxType)}
	}
	statusCode, ok := statusCodes[tx.Status]
	if !ok {
		return nil, &Error{Kind: KindInvalidField, Field: types.FieldStatus, Err: fmt.Errorf("unknown value %d", tx.Status)}
	}

	payload := validation.QuoteDescription(tx.Description)
	if len(payload) > maxDescLen {
		return nil, &Error{Kind: KindInvalidDescLen, Err: fmt.Errorf("description is %d bytes", len(payload))}
	}
	descLen := uint32(len(payload))

	buf = append(buf, Magic[:]...)
	buf = binary.BigEndian.AppendUint32(buf, fixedBodySize+descLen)
	buf = binary.BigEndian.AppendUint64(buf, tx.TxID)
	buf = append(buf, txTypeCode)
	buf = binary.BigEndian.AppendUint64(buf, tx.FromUserID)
	buf = binary.BigEndian.AppendUint64(buf, tx.ToUserID)
	buf = binary.BigEndian.AppendUint64(buf, tx.Amount)
	buf = binary.BigEndian.AppendUint64(buf, uint64(tx.Timestamp))
	buf = append(buf, statusCode)
	buf = binary.BigEndian.AppendUint32(buf, descLen)
	buf = append(buf, payload...)

	return buf, nil
}
