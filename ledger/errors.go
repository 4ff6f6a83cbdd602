/*
errors.go - Centralized error types for the ledger engine

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  Callers classify errors with errors.Is against the sentinels; the
  structured types carry row or operation context and unwrap to them.

ERROR CATEGORIES:
  1. Row-level errors - recovered locally by the decoder (logged, skipped)
  2. Request-shape errors - rejected before any transaction opens
  3. Storage errors - abort the enclosing transaction, no partial commit

SEE ALSO:
  - decoder.go: Produces the row-level errors
  - store.go: StorageError and ErrTxDone contract
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMalformedRow is returned for rows that fail structural parsing:
	// too few columns, an unparseable date, or a non-numeric amount.
	// The decoder logs and skips such rows; the batch continues.
	ErrMalformedRow = errors.New("malformed csv row")

	// ErrInvalidLabel is returned for rows whose label column is neither
	// "Income" nor "Expense" (case-sensitive). Logged and skipped.
	ErrInvalidLabel = errors.New("invalid income/expense label")

	// ErrMissingDataField is returned when an ingest request carries no
	// multipart field named "data". Raised before a transaction opens.
	ErrMissingDataField = errors.New(`missing multipart field "data"`)

	// ErrStorage is the root of all persistence-layer failures. A storage
	// fault aborts the enclosing transaction; nothing is partially committed.
	ErrStorage = errors.New("storage failure")

	// ErrTxDone is returned by any operation on a transaction handle that
	// has already been committed or rolled back.
	ErrTxDone = errors.New("ledger transaction already finished")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// MalformedRowError reports a structurally unparseable row.
type MalformedRowError struct {
	Row int // 1-based data row number (comment lines not counted)
	Err error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return ErrMalformedRow }

// InvalidLabelError reports a parseable row with an unrecognized label.
type InvalidLabelError struct {
	Row   int
	Label string
}

func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("row %d: label %q is neither %q nor %q", e.Row, e.Label, LabelIncome, LabelExpense)
}

func (e *InvalidLabelError) Unwrap() error { return ErrInvalidLabel }

// StorageError wraps a persistence-layer fault with the failed operation.
type StorageError struct {
	Op  string // e.g. "insert movements", "commit"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return ErrStorage }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input
// rather than a fault in the service or its store.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingDataField) ||
		errors.Is(err, ErrMalformedRow) ||
		errors.Is(err, ErrInvalidLabel)
}
