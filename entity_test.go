package hearth

import "testing"

func TestEntityTotals(t *testing.T) {
	feed := testFeed(t, []Record{
		rec(t, "2024-03-15", 5000, "Paycheck", "checking"),
		rec(t, "2024-06-15", -1000, "Rent", "checking"),
		rec(t, "2023-06-15", -1000, "Rent", "checking"),
	}, nil)

	e := NewFinancialEntity("alice")
	e.AddIncome(NewStream("Paychecks", feed, ByCSPLabel(LabelIncome), 2025, 1.0, false))
	e.AddExpense(NewStream("Rent", feed, ByCSPLabel(LabelFixed), 2025, 1.0, false))

	// Income has no 2023 entry; the outer join counts it as zero.
	checkSeries(t, e.NetCashflow(), map[int]float64{
		2023: -1000,
		2024: 4000,
		2025: 4000,
	})
}

func TestEntityStreamReplacement(t *testing.T) {
	feed := testFeed(t, []Record{
		rec(t, "2024-06-15", -1000, "Rent", "checking"),
		rec(t, "2024-07-15", -2000, "Utilities", "checking"),
	}, nil)

	e := NewFinancialEntity("alice")
	e.AddExpense(NewStream("Housing", feed, ByCategory("Rent"), 2024, 1.0, false))
	// Re-adding the same name replaces the stream in place.
	e.AddExpense(NewStream("Housing", feed, ByCategory("Utilities"), 2024, 1.0, false))

	checkSeries(t, e.TotalExpenses(), map[int]float64{2024: -2000})
	if got := e.Expense("Housing"); got == nil {
		t.Fatal("replaced stream not found by name")
	}
}
