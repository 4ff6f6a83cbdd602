/*
decoder.go - Fault-tolerant CSV to Movement decoder

PURPOSE:
  Turns raw CSV bytes into a lazy sequence of validated movements.
  One bad row never aborts the batch: rows that fail structural parsing
  or label validation are logged as warnings and skipped, and decoding
  continues with the next row.

INPUT FORMAT:
  date, label, amount[, memo[, ...]]

  - No header row; the first row is data
  - Lines starting with '#' are comments
  - Whitespace around fields is trimmed
  - Trailing columns are flexible: a missing memo is allowed (empty),
    extra columns beyond the memo are ignored
  - label is matched case-sensitively against "Income" and "Expense";
    Expense rows have their amount negated, Income rows keep the parsed
    amount as-is (a signed amount is honored, not rejected)

PIPELINE:
  Decoding is a two-stage pipeline: parseRow returns either a Movement
  or a row-level error, and Next reports failures to the logger as a
  side effect and yields only successes. Input row order is preserved.

SEE ALSO:
  - errors.go: MalformedRowError, InvalidLabelError
  - service.go: Drains the decoder inside an ingest transaction
*/
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accepted label tokens. Matching is case-sensitive: "income" is invalid.
const (
	LabelIncome  = "Income"
	LabelExpense = "Expense"
)

// Logger is the minimal logging surface the decoder and service need.
// *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Decoder reads movements from CSV input one row at a time. It is a
// non-restartable forward sequence over the underlying reader.
type Decoder struct {
	csv *csv.Reader
	log Logger
	row int
}

// NewDecoder creates a decoder over r. Rows failing validation are
// reported to log and skipped.
func NewDecoder(r io.Reader, log Logger) *Decoder {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // flexible: column count varies per row
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	return &Decoder{csv: cr, log: log}
}

// Next returns the next valid movement. It returns io.EOF when the
// input is exhausted; an input containing no valid rows at all yields
// io.EOF on the first call, which is not an error condition.
func (d *Decoder) Next() (Movement, error) {
	for {
		record, err := d.csv.Read()
		if err == io.EOF {
			return Movement{}, io.EOF
		}
		d.row++
		if err != nil {
			d.warn(&MalformedRowError{Row: d.row, Err: err})
			continue
		}

		m, rowErr := parseRow(d.row, record)
		if rowErr != nil {
			d.warn(rowErr)
			continue
		}
		return m, nil
	}
}

// DecodeAll drains the decoder, preserving input order. Duplicated input
// rows are not deduplicated; each becomes its own movement.
func (d *Decoder) DecodeAll() []Movement {
	var movements []Movement
	for {
		m, err := d.Next()
		if errors.Is(err, io.EOF) {
			return movements
		}
		movements = append(movements, m)
	}
}

func (d *Decoder) warn(err error) {
	if d.log != nil {
		d.log.Printf("decoder: dropping %v", err)
	}
}

// parseRow validates one syntactically parsed record. The returned error
// is either a *MalformedRowError or an *InvalidLabelError.
func parseRow(row int, record []string) (Movement, error) {
	fields := make([]string, len(record))
	for i, f := range record {
		fields[i] = strings.TrimSpace(f)
	}

	if len(fields) < 3 {
		return Movement{}, &MalformedRowError{
			Row: row,
			Err: fmt.Errorf("expected at least 3 columns, got %d", len(fields)),
		}
	}

	date, err := time.Parse(DateLayout, fields[0])
	if err != nil {
		return Movement{}, &MalformedRowError{Row: row, Err: fmt.Errorf("date %q: %w", fields[0], err)}
	}

	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		return Movement{}, &MalformedRowError{Row: row, Err: fmt.Errorf("amount %q: %w", fields[2], err)}
	}

	switch fields[1] {
	case LabelIncome:
		// Amount kept as-is. The source data is non-negative by convention
		// for income rows, but a signed amount is honored.
	case LabelExpense:
		amount = amount.Neg()
	default:
		return Movement{}, &InvalidLabelError{Row: row, Label: fields[1]}
	}

	memo := ""
	if len(fields) > 3 {
		memo = fields[3]
	}

	return Movement{Date: date, Amount: amount, Memo: memo}, nil
}
