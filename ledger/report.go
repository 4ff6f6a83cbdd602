/*
report.go - Pure aggregation over signed movements

PURPOSE:
  Folds movements into a Report and folds multiple Reports into one.
  These are the only operations that produce Report values, so the
  net == gross - expenses invariant is preserved by construction.

PROPERTIES:
  - Merge is associative and commutative
  - Folding a batch whole or in parts and merging the partials yields
    the same total (batch-splitting invariance)
  - A zero-amount movement changes nothing
*/
package ledger

// AddMovement folds one movement into the report, returning a new Report.
// Positive amounts accrue to gross revenue, negative amounts to expenses
// (as their absolute value); net revenue moves by the signed amount either
// way, keeping the invariant intact.
func (r Report) AddMovement(m Movement) Report {
	out := r
	if m.Amount.IsPositive() {
		out.GrossRevenue = out.GrossRevenue.Add(m.Amount)
	} else {
		out.Expenses = out.Expenses.Sub(m.Amount)
	}
	out.NetRevenue = out.NetRevenue.Add(m.Amount)
	return out
}

// Merge adds two reports component-wise.
func (r Report) Merge(other Report) Report {
	return Report{
		GrossRevenue: r.GrossRevenue.Add(other.GrossRevenue),
		Expenses:     r.Expenses.Add(other.Expenses),
		NetRevenue:   r.NetRevenue.Add(other.NetRevenue),
	}
}

// ReportOf folds a batch of movements into a report, in input order,
// starting from the zero report.
func ReportOf(movements []Movement) Report {
	report := ZeroReport()
	for _, m := range movements {
		report = report.AddMovement(m)
	}
	return report
}

// TotalOf folds committed report fragments into the all-time total.
func TotalOf(reports []Report) Report {
	total := ZeroReport()
	for _, r := range reports {
		total = total.Merge(r)
	}
	return total
}
