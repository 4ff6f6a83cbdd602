/*
Package ledger provides the core financial ledger engine.

PURPOSE:
  This package contains the domain types and algorithms for turning
  bank-statement CSV batches into signed monetary movements and folding
  those movements into a running financial report (gross revenue,
  expenses, net revenue).

KEY CONCEPTS IN THIS FILE (types.go):
  - Movement: One signed monetary event extracted from an input row
  - Report: Accumulated gross revenue, expenses, and net revenue

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal everywhere - never binary floats
  2. Immutability: Movements and Reports are value types; every
     aggregation step produces a new Report
  3. Invariant: NetRevenue == GrossRevenue - Expenses holds after
     every operation that produces a Report

USAGE:
  report := ledger.ZeroReport()
  report = report.AddMovement(ledger.Movement{
      Date:   date,
      Amount: decimal.RequireFromString("87.32"),
      Memo:   "consulting",
  })

SEE ALSO:
  - report.go: Aggregation operations
  - decoder.go: CSV to Movement conversion
  - store.go: Persistence boundary
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MOVEMENT - Signed monetary event
// =============================================================================

// Movement is one signed monetary event on the ledger.
// Amount is the net effect: positive is income, negative is expense.
// A zero amount is legal and neutral.
type Movement struct {
	Date   time.Time
	Amount decimal.Decimal
	Memo   string
}

// DateLayout is the calendar date encoding used on the wire and in storage.
const DateLayout = "2006-01-02"

// =============================================================================
// REPORT - Accumulated financial summary
// =============================================================================

// Report summarizes accumulated gross revenue, expenses, and net revenue.
//
// INVARIANT: NetRevenue equals GrossRevenue minus Expenses, exactly.
// Construct reports through ZeroReport, AddMovement, and Merge; never
// assemble the fields by hand.
type Report struct {
	GrossRevenue decimal.Decimal `json:"gross_revenue"`
	Expenses     decimal.Decimal `json:"expenses"`
	NetRevenue   decimal.Decimal `json:"net_revenue"`
}

// ZeroReport returns the identity element for report folds.
func ZeroReport() Report {
	return Report{
		GrossRevenue: decimal.Zero,
		Expenses:     decimal.Zero,
		NetRevenue:   decimal.Zero,
	}
}

// Equal reports exact decimal equality on all three components.
func (r Report) Equal(other Report) bool {
	return r.GrossRevenue.Equal(other.GrossRevenue) &&
		r.Expenses.Equal(other.Expenses) &&
		r.NetRevenue.Equal(other.NetRevenue)
}
