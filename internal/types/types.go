// =============================================================================
// Transaction Converter - Shared Types
// =============================================================================
//
// This package contains the record model shared by every codec:
//   - Transaction : the unit record (8 fields, fixed order)
//   - Field       : the field registry (canonical order and names)
//   - TxType      : closed vocabulary for the transaction type
//   - Status      : closed vocabulary for the transaction status
//
// The canonical field order defined here is the single source of truth for
// the CSV header row, the binary record layout and the TXT required key set.
//
// =============================================================================

package types

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction represents a single financial transaction.
// The zero value is a valid Deposit/Success record with empty description.
type Transaction struct {
	// TxID is the transaction identifier. Uniqueness is not checked.
	TxID uint64

	// TxType is the kind of transaction.
	TxType TxType

	// FromUserID is the sender.
	FromUserID uint64

	// ToUserID is the recipient.
	ToUserID uint64

	// Amount is expressed in the smallest currency unit.
	Amount uint64

	// Timestamp is Unix time.
	Timestamp int64

	// Status is the processing status.
	Status Status

	// Description is free UTF-8 text, stored without the surrounding quotes.
	Description string
}

// =============================================================================
// FIELD REGISTRY
// =============================================================================

// Field identifies one of the 8 transaction fields.
type Field uint8

const (
	FieldTxID Field = iota
	FieldTxType
	FieldFromUserID
	FieldToUserID
	FieldAmount
	FieldTimestamp
	FieldStatus
	FieldDescription
)

// FieldCount is the number of fields in a Transaction.
const FieldCount = 8

var fieldNames = [FieldCount]string{
	FieldTxID:        "TX_ID",
	FieldTxType:      "TX_TYPE",
	FieldFromUserID:  "FROM_USER_ID",
	FieldToUserID:    "TO_USER_ID",
	FieldAmount:      "AMOUNT",
	FieldTimestamp:   "TIMESTAMP",
	FieldStatus:      "STATUS",
	FieldDescription: "DESCRIPTION",
}

// Fields returns the 8 field identifiers in canonical order.
func Fields() []Field {
	return []Field{
		FieldTxID,
		FieldTxType,
		FieldFromUserID,
		FieldToUserID,
		FieldAmount,
		FieldTimestamp,
		FieldStatus,
		FieldDescription,
	}
}

// String returns the canonical name of the field, e.g. "TX_ID".
func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "Field(" + strconv.Itoa(int(f)) + ")"
}

// FieldName returns the canonical name of the field.
func FieldName(f Field) string {
	return f.String()
}

// LookupField returns the field with the given canonical name.
// The match is exact and case-sensitive.
func LookupField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// HeaderRow returns the canonical field names joined by commas.
func HeaderRow() string {
	return strings.Join(fieldNames[:], ",")
}

// FieldValue returns the textual value of a field as every text writer
// renders it: integers in decimal, enums as their canonical token and the
// description as raw (unquoted) text.
func FieldValue(tx Transaction, f Field) string {
	switch f {
	case FieldTxID:
		return strconv.FormatUint(tx.TxID, 10)
	case FieldTxType:
		return tx.TxType.String()
	case FieldFromUserID:
		return strconv.FormatUint(tx.FromUserID, 10)
	case FieldToUserID:
		return strconv.FormatUint(tx.ToUserID, 10)
	case FieldAmount:
		return strconv.FormatUint(tx.Amount, 10)
	case FieldTimestamp:
		return strconv.FormatInt(tx.Timestamp, 10)
	case FieldStatus:
		return tx.Status.String()
	case FieldDescription:
		return tx.Description
	default:
		return ""
	}
}

// =============================================================================
// TRANSACTION TYPE
// =============================================================================

// TxType is the closed set of transaction types.
type TxType uint8

const (
	Deposit TxType = iota
	Transfer
	Withdrawal
)

var txTypeTokens = [...]string{
	Deposit:    "DEPOSIT",
	Transfer:   "TRANSFER",
	Withdrawal: "WITHDRAWAL",
}

// String returns the canonical token, e.g. "DEPOSIT".
func (t TxType) String() string {
	if int(t) < len(txTypeTokens) {
		return txTypeTokens[t]
	}
	return "TxType(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is one of the defined transaction types.
func (t TxType) Valid() bool {
	return int(t) < len(txTypeTokens)
}

// ParseTxType converts a canonical token into a TxType.
// Unknown tokens are rejected, never coerced to Deposit.
func ParseTxType(s string) (TxType, error) {
	for i, token := range txTypeTokens {
		if token == s {
			return TxType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transaction type %q", s)
}

// =============================================================================
// STATUS
// =============================================================================

// Status is the closed set of transaction statuses.
type Status uint8

const (
	Success Status = iota
	Failure
	Pending
)

var statusTokens = [...]string{
	Success: "SUCCESS",
	Failure: "FAILURE",
	Pending: "PENDING",
}

// String returns the canonical token, e.g. "SUCCESS".
func (s Status) String() string {
	if int(s) < len(statusTokens) {
		return statusTokens[s]
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return int(s) < len(statusTokens)
}

// ParseStatus converts a canonical token into a Status.
func ParseStatus(s string) (Status, error) {
	for i, token := range statusTokens {
		if token == s {
			return Status(i), nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}
