package reconcile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mhellwig/dormnet/internal/encoding"
)

// Statement records are semicolon-delimited, fully quoted and carry
// exactly these eleven columns. The first record is a header.
const (
	colOurAccountNumber = iota
	colPostedOn
	colValidOn
	colType
	colReference
	colOtherName
	colOtherAccountNumber
	colOtherRoutingNumber
	colAmount
	colCurrency
	colInfo

	statementColumns
)

const statementDateLayout = "02.01.06"

// ParsedRow is one statement line after structural validation. Index is
// the 1-based record number including the header, kept so later
// processing stages can still point at the source line.
type ParsedRow struct {
	Index              int
	OurAccountNumber   string
	PostedOn           time.Time
	ValidOn            time.Time
	Type               string
	Reference          string
	OtherName          string
	OtherAccountNumber string
	OtherRoutingNumber string
	Amount             int64
	Info               string
}

// ParseStatement reads a bank statement, decoding it to UTF-8 first.
// The header record is discarded. Any structural defect aborts parsing
// with a RecordError naming the record and echoing it verbatim.
func ParseStatement(r io.Reader) ([]*ParsedRow, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding statement: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = statementColumns

	var (
		rows  []*ParsedRow
		index int
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		index++
		if err != nil {
			return nil, &RecordError{Index: index, Raw: restoreRecord(record), Err: err}
		}

		if index == 1 {
			continue // header
		}

		row, err := parseRecord(index, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyStatement
	}

	return rows, nil
}

func parseRecord(index int, record []string) (*ParsedRow, error) {
	fail := func(err error) (*ParsedRow, error) {
		return nil, &RecordError{Index: index, Raw: restoreRecord(record), Err: err}
	}

	if currency := record[colCurrency]; currency != "EUR" {
		return fail(fmt.Errorf("unsupported currency %q", currency))
	}

	postedOn, err := time.Parse(statementDateLayout, record[colPostedOn])
	if err != nil {
		return fail(fmt.Errorf("illegal posting date %q", record[colPostedOn]))
	}

	validOn, err := time.Parse(statementDateLayout, record[colValidOn])
	if err != nil {
		return fail(fmt.Errorf("illegal value date %q", record[colValidOn]))
	}

	amount, err := parseAmount(record[colAmount])
	if err != nil {
		return fail(fmt.Errorf("illegal amount %q: %w", record[colAmount], err))
	}

	return &ParsedRow{
		Index:              index,
		OurAccountNumber:   record[colOurAccountNumber],
		PostedOn:           postedOn,
		ValidOn:            validOn,
		Type:               record[colType],
		Reference:          record[colReference],
		OtherName:          record[colOtherName],
		OtherAccountNumber: record[colOtherAccountNumber],
		OtherRoutingNumber: record[colOtherRoutingNumber],
		Amount:             amount,
		Info:               record[colInfo],
	}, nil
}

// parseAmount converts a decimal-comma amount into cents. Values that
// are not an exact number of cents are rejected.
func parseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return 0, err
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, errors.New("not an integer number of cents")
	}

	return cents.IntPart(), nil
}

// restoreRecord re-serializes a record in the statement dialect so
// error messages echo what the bank delivered.
func restoreRecord(record []string) string {
	quoted := make([]string, len(record))
	for i, f := range record {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ";")
}
