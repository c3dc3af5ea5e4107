package txtparser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/tx-converter/internal/types"
)

var recordLines = []string{
	"TX_ID: 1",
	"TX_TYPE: DEPOSIT",
	"FROM_USER_ID: 0",
	"TO_USER_ID: 1",
	"AMOUNT: 1000",
	"TIMESTAMP: 1633036860000",
	"STATUS: SUCCESS",
	`DESCRIPTION: "record 1"`,
}

func record1() types.Transaction {
	return types.Transaction{
		TxID:        1,
		TxType:      types.Deposit,
		FromUserID:  0,
		ToUserID:    1,
		Amount:      1000,
		Timestamp:   1633036860000,
		Status:      types.Success,
		Description: "record 1",
	}
}

func record2() types.Transaction {
	return types.Transaction{
		TxID:        2,
		TxType:      types.Transfer,
		FromUserID:  1,
		ToUserID:    2,
		Amount:      1111,
		Timestamp:   1633036860000,
		Status:      types.Failure,
		Description: "record 2",
	}
}

func input(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func without(skip int) []string {
	out := make([]string, 0, len(recordLines)-1)
	for i, l := range recordLines {
		if i != skip {
			out = append(out, l)
		}
	}
	return out
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("sink closed")
}

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	var txtErr *Error
	require.ErrorAs(t, err, &txtErr)
	require.Equal(t, kind, txtErr.Kind, err.Error())
	return txtErr
}

func TestDecode_SingleRecord(t *testing.T) {
	got, err := Decode(input(append(recordLines, "")...))
	require.NoError(t, err)
	assert.Equal(t, []types.Transaction{record1()}, got)
}

func TestDecode_TrailingBlankLine(t *testing.T) {
	cases := map[string]string{
		"no terminator":       strings.Join(recordLines, "\n"),
		"newline only":        strings.Join(recordLines, "\n") + "\n",
		"one blank line":      strings.Join(recordLines, "\n") + "\n\n",
		"several blank lines": strings.Join(recordLines, "\n") + "\n\n\n  \n",
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(in))
			require.NoError(t, err)
			assert.Equal(t, []types.Transaction{record1()}, got)
		})
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "\n", "\n\n", "# only a comment\n"} {
		got, err := Decode(strings.NewReader(in))
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestDecode_AnyOrderAndComments(t *testing.T) {
	got, err := Decode(input(
		"# exported transactions",
		"",
		`DESCRIPTION: "record 1"`,
		"STATUS: SUCCESS",
		"# mid-record comment",
		"TIMESTAMP: 1633036860000",
		"AMOUNT: 1000",
		"TO_USER_ID: 1",
		"FROM_USER_ID: 0",
		"TX_TYPE: DEPOSIT",
		"TX_ID: 1",
		"",
		"",
		"TX_ID: 2",
		"TX_TYPE: TRANSFER",
		"FROM_USER_ID: 1",
		"TO_USER_ID: 2",
		"AMOUNT: 1111",
		"TIMESTAMP: 1633036860000",
		"STATUS: FAILURE",
		`DESCRIPTION: "record 2"`,
	))
	require.NoError(t, err)
	assert.Equal(t, []types.Transaction{record1(), record2()}, got)
}

func TestDecode_DuplicateField(t *testing.T) {
	lines := append([]string{"TX_ID: 1"}, recordLines...)

	_, err := Decode(input(lines...))
	txtErr := requireKind(t, err, KindFieldAlreadyExists)
	assert.Equal(t, types.FieldTxID, txtErr.Field)
	assert.Equal(t, 1, txtErr.Line)
}

func TestDecode_MissingField(t *testing.T) {
	for i, f := range types.Fields() {
		t.Run(f.String(), func(t *testing.T) {
			lines := append(without(i), "")

			_, err := Decode(input(lines...))
			txtErr := requireKind(t, err, KindMissingField)
			assert.Equal(t, f, txtErr.Field)
			assert.Equal(t, 7, txtErr.Line)
		})
	}
}

func TestDecode_MissingFieldAtEnd(t *testing.T) {
	_, err := Decode(strings.NewReader(strings.Join(without(7), "\n")))
	txtErr := requireKind(t, err, KindMissingField)
	assert.Equal(t, types.FieldDescription, txtErr.Field)
	assert.Equal(t, 7, txtErr.Line)
}

func TestDecode_FirstMissingFieldIsReported(t *testing.T) {
	_, err := Decode(input("STATUS: SUCCESS", "TX_TYPE: DEPOSIT", ""))
	txtErr := requireKind(t, err, KindMissingField)
	assert.Equal(t, types.FieldTxID, txtErr.Field)
}

func TestDecode_LineErrors(t *testing.T) {
	t.Run("no separator", func(t *testing.T) {
		_, err := Decode(input("TX_ID: 1", "TX_TYPE=DEPOSIT"))
		txtErr := requireKind(t, err, KindLineFormat)
		assert.Equal(t, 1, txtErr.Line)
	})

	t.Run("separator without space", func(t *testing.T) {
		_, err := Decode(input("TX_ID:1"))
		requireKind(t, err, KindLineFormat)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Decode(input("# memo follows", "", "", "MEMO: hello"))
		txtErr := requireKind(t, err, KindUnknownField)
		assert.Equal(t, 3, txtErr.Line)
	})

	t.Run("lowercase key", func(t *testing.T) {
		_, err := Decode(input("tx_id: 1"))
		requireKind(t, err, KindUnknownField)
	})
}

func TestDecode_InvalidField(t *testing.T) {
	cases := []struct {
		line  string
		field types.Field
	}{
		{"TX_ID: -1", types.FieldTxID},
		{"TX_TYPE: deposit", types.FieldTxType},
		{"AMOUNT: 1.5", types.FieldAmount},
		{"TIMESTAMP: now", types.FieldTimestamp},
		{"STATUS: !", types.FieldStatus},
		{"DESCRIPTION: record 1", types.FieldDescription},
	}

	for _, tc := range cases {
		t.Run(tc.field.String(), func(t *testing.T) {
			_, err := Decode(input("# header", tc.line))
			txtErr := requireKind(t, err, KindInvalidField)
			assert.Equal(t, tc.field, txtErr.Field)
			assert.Equal(t, 1, txtErr.Line)
		})
	}
}

func TestDecode_ReadError(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0xff}))
	requireKind(t, err, KindRead)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, []types.Transaction{record1()}))

	assert.Equal(t, strings.Join(recordLines, "\n")+"\n\n", buf.String())
}

func TestEncode_RejectsNewlineInDescription(t *testing.T) {
	tx := record2()
	tx.Description = "two\nlines"

	err := Encode(&bytes.Buffer{}, []types.Transaction{record1(), tx})
	txtErr := requireKind(t, err, KindInvalidField)
	assert.Equal(t, types.FieldDescription, txtErr.Field)
	assert.Equal(t, 1, txtErr.Record)
	assert.Contains(t, err.Error(), "in record 1")
}

func TestEncode_WriteFailure(t *testing.T) {
	err := Encode(failingWriter{}, []types.Transaction{record1()})
	requireKind(t, err, KindWrite)
}

func TestRoundTrip(t *testing.T) {
	txs := []types.Transaction{record1(), record2(), {
		TxID:        18446744073709551615,
		TxType:      types.Withdrawal,
		Timestamp:   -1633036860000,
		Status:      types.Pending,
		Description: `key: value, "quoted"`,
	}}

	var buf bytes.Buffer
	require.NoError(t, Codec{}.Encode(&buf, txs))

	got, err := Codec{}.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, txs, got)
}
