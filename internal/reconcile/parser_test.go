package reconcile_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhellwig/dormnet/internal/reconcile"
)

const statementHeader = `"Kontonummer";"Buchungstag";"Wertstellung";"Umsatzart";"Verwendungszweck";"Name";"Konto";"BLZ";"Betrag";"Währung";"Info"`

func statement(records ...string) string {
	return statementHeader + "\n" + strings.Join(records, "\n") + "\n"
}

func TestParseStatement(t *testing.T) {
	input := statement(
		`"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"EREF+123 xyz";"Max Mustermann";"DE41999";"BANKDEFF";"5,00";"EUR";""`,
		`"9999";"27.06.24";"27.06.24";"LASTSCHRIFT";"mietzins";"Hausverwaltung";"DE02111";"BANKDEFF";"-5,00";"EUR";""`,
	)

	rows, err := reconcile.ParseStatement(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, 2, first.Index)
	assert.Equal(t, "9999", first.OurAccountNumber)
	assert.Equal(t, time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC), first.PostedOn)
	assert.Equal(t, "EREF+123 xyz", first.Reference)
	assert.Equal(t, "Max Mustermann", first.OtherName)
	assert.Equal(t, int64(500), first.Amount)

	assert.Equal(t, int64(-500), rows[1].Amount)
}

func TestParseStatement_Errors(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		errPart string
	}{
		{
			name:    "unsupported currency",
			record:  `"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"ref";"name";"acct";"blz";"5,00";"USD";""`,
			errPart: `unsupported currency "USD"`,
		},
		{
			name:    "illegal date",
			record:  `"9999";"2024-06-28";"28.06.24";"GUTSCHRIFT";"ref";"name";"acct";"blz";"5,00";"EUR";""`,
			errPart: "illegal posting date",
		},
		{
			name:    "fractional cents",
			record:  `"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"ref";"name";"acct";"blz";"5,001";"EUR";""`,
			errPart: "illegal amount",
		},
		{
			name:    "wrong column count",
			record:  `"9999";"28.06.24";"28.06.24"`,
			errPart: "record 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reconcile.ParseStatement(strings.NewReader(statement(tt.record)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

// Record errors carry the 1-based index and echo the offending record.
func TestParseStatement_RecordErrorEcho(t *testing.T) {
	_, err := reconcile.ParseStatement(strings.NewReader(statement(
		`"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"ref";"name";"acct";"blz";"5,00";"CHF";""`,
	)))

	var recErr *reconcile.RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 2, recErr.Index)
	assert.Contains(t, recErr.Raw, `"CHF"`)
	assert.Contains(t, recErr.Raw, `"9999";"28.06.24"`)
}

func TestParseStatement_Empty(t *testing.T) {
	_, err := reconcile.ParseStatement(strings.NewReader(statementHeader + "\n"))
	assert.ErrorIs(t, err, reconcile.ErrEmptyStatement)

	_, err = reconcile.ParseStatement(strings.NewReader(""))
	assert.ErrorIs(t, err, reconcile.ErrEmptyStatement)
}

// Statements arrive in legacy single-byte encodings; umlauts must
// survive the import.
func TestParseStatement_Windows1252(t *testing.T) {
	record := `"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"Beitrag M!ller";"M!ller";"acct";"blz";"5,00";"EUR";""`
	raw := strings.ReplaceAll(statement(record), "!", "\xfc") // ü in Windows-1252

	rows, err := reconcile.ParseStatement(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Müller", rows[0].OtherName)
	assert.Equal(t, "Beitrag Müller", rows[0].Reference)
}

func TestParseAmountRejectsGarbage(t *testing.T) {
	_, err := reconcile.ParseStatement(strings.NewReader(statement(
		`"9999";"28.06.24";"28.06.24";"GUTSCHRIFT";"ref";"name";"acct";"blz";"fünf";"EUR";""`,
	)))
	require.Error(t, err)
	assert.False(t, errors.Is(err, reconcile.ErrEmptyStatement))
}
