package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/finance-ledger/ledger"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mv(date time.Time, amount, memo string) ledger.Movement {
	return ledger.Movement{Date: date, Amount: dec(amount), Memo: memo}
}

func report(gross, expenses, net string) ledger.Report {
	return ledger.Report{
		GrossRevenue: dec(gross),
		Expenses:     dec(expenses),
		NetRevenue:   dec(net),
	}
}

// requireInvariant asserts net == gross - expenses with exact decimal equality.
func requireInvariant(t *testing.T, r ledger.Report) {
	t.Helper()
	require.True(t, r.NetRevenue.Equal(r.GrossRevenue.Sub(r.Expenses)),
		"invariant violated: net %s != gross %s - expenses %s",
		r.NetRevenue, r.GrossRevenue, r.Expenses)
}

// =============================================================================
// AGGREGATION TESTS
// =============================================================================

func TestReport_AddMovement_AggregatesBatch(t *testing.T) {
	// GIVEN: One income and one expense movement
	movements := []ledger.Movement{
		mv(day(2021, time.July, 12), "87.32", "first"),
		mv(day(2023, time.August, 20), "-12.13", "second"),
	}

	// WHEN: Folding them into a report
	got := ledger.ReportOf(movements)

	// THEN: Gross, expenses and net match the signed amounts
	assert.True(t, got.Equal(report("87.32", "12.13", "75.19")),
		"got %+v", got)
	requireInvariant(t, got)
}

func TestReport_AddMovement_ZeroAmountIsNeutral(t *testing.T) {
	base := ledger.ReportOf([]ledger.Movement{
		mv(day(2022, time.March, 1), "10.00", "income"),
	})

	got := base.AddMovement(mv(day(2022, time.March, 2), "0", "nothing"))

	assert.True(t, got.Equal(base), "zero movement must change nothing, got %+v", got)
}

func TestReport_AddMovement_NegativeIncomeHonored(t *testing.T) {
	// The decoder trusts the declared sign even on Income rows, so the
	// aggregator must route any negative amount to expenses.
	got := ledger.ZeroReport().AddMovement(mv(day(2022, time.March, 1), "-5.50", "refund"))

	assert.True(t, got.Equal(report("0", "5.50", "-5.50")), "got %+v", got)
	requireInvariant(t, got)
}

func TestReport_Merge_ConcreteTotals(t *testing.T) {
	a := report("87.32", "12.13", "75.19")
	b := report("10.01", "2.05", "7.96")

	got := a.Merge(b)

	assert.True(t, got.Equal(report("97.33", "14.18", "83.15")), "got %+v", got)
	requireInvariant(t, got)
}

func TestReport_Merge_AssociativeAndCommutative(t *testing.T) {
	a := report("87.32", "12.13", "75.19")
	b := report("10.01", "2.05", "7.96")
	c := report("0.03", "100.00", "-99.97")

	assert.True(t, a.Merge(b).Equal(b.Merge(a)), "merge must be commutative")
	assert.True(t, a.Merge(b).Merge(c).Equal(a.Merge(b.Merge(c))),
		"merge must be associative")
}

func TestReport_ZeroReportIsMergeIdentity(t *testing.T) {
	r := report("87.32", "12.13", "75.19")

	assert.True(t, r.Merge(ledger.ZeroReport()).Equal(r))
	assert.True(t, ledger.ZeroReport().Merge(r).Equal(r))
}

func TestReport_BatchSplittingInvariance(t *testing.T) {
	// GIVEN: A mixed batch of incomes, expenses, and zero movements
	movements := []ledger.Movement{
		mv(day(2021, time.January, 5), "100.10", "a"),
		mv(day(2021, time.February, 6), "-0.01", "b"),
		mv(day(2021, time.March, 7), "0", "c"),
		mv(day(2021, time.April, 8), "-99.99", "d"),
		mv(day(2021, time.May, 9), "3.33", "e"),
	}
	whole := ledger.ReportOf(movements)

	// WHEN/THEN: Splitting at every point and merging the partials
	// yields the same total as folding the batch whole
	for split := 0; split <= len(movements); split++ {
		left := ledger.ReportOf(movements[:split])
		right := ledger.ReportOf(movements[split:])
		merged := left.Merge(right)

		assert.True(t, merged.Equal(whole),
			"split at %d: merged %+v != whole %+v", split, merged, whole)
		requireInvariant(t, merged)
	}
}

func TestReport_TotalOf_EmptyIsZero(t *testing.T) {
	assert.True(t, ledger.TotalOf(nil).Equal(ledger.ZeroReport()))
}
