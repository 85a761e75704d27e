package hearth

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPastSeriesSmoothing(t *testing.T) {
	// The latest transaction is 2024-06-30, so the 2024 total is replaced by
	// the trailing twelve months: 2023-09-15 and 2024-06-30.
	feed := testFeed(t, []Record{
		rec(t, "2023-03-15", 1000, "Paycheck", "checking"),
		rec(t, "2023-09-15", 1000, "Paycheck", "checking"),
		rec(t, "2024-06-30", 1000, "Paycheck", "checking"),
	}, nil)

	got := feed.PastSeries(ByCSPLabel(LabelIncome))
	checkSeries(t, got, map[int]float64{
		2023: 2000,
		2024: 2000,
	})
}

func TestPastSeriesNoMatch(t *testing.T) {
	feed := testFeed(t, []Record{
		rec(t, "2024-01-15", 1000, "Paycheck", "checking"),
	}, nil)

	got := feed.PastSeries(ByCSPLabel(LabelSavings))
	if got.Len() != 0 {
		t.Errorf("expected empty series for unmatched filter, got:\n%s", got)
	}
}

func TestCSPResolution(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		category string
		want     string
	}{
		{"Paycheck", "income"},        // via category group
		{"Rent", "fixed"},             // via category group
		{"Brokerage", "investments"},  // via per-category override
		{"Mystery", "guilt_free"},     // unmapped default
		{"Restaurants", "guilt_free"}, // group without a CSP mapping
	}
	for _, tt := range tests {
		if got := cfg.csp(tt.category); got != tt.want {
			t.Errorf("csp(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestFeedDropsRecords(t *testing.T) {
	hidden := rec(t, "2024-02-01", -50, "Rent", "checking")
	hidden.Hidden = true
	feed := testFeed(t, []Record{
		rec(t, "2024-01-15", -100, "Rent", "checking"),
		rec(t, "2024-01-20", -200, "Transfer", "checking"), // dropped category
		rec(t, "2024-01-25", -300, "Rent", "biz"),          // other owner
		hidden,
	}, nil)

	got := feed.PastSeries(ByCSPLabel(LabelFixed))
	checkSeries(t, got, map[int]float64{2024: -100})
}

func TestBudgetSeriesSignConvention(t *testing.T) {
	// Budget amounts are entered positive; non-income rows are negated on load.
	budget := Budget{
		2024: {
			1: {"income": decimal.NewFromInt(5000), "fixed": decimal.NewFromInt(2000)},
			2: {"fixed": decimal.NewFromInt(2000)},
		},
	}
	feed := testFeed(t, nil, budget)

	checkSeries(t, feed.BudgetSeries(ByCSPLabel(LabelIncome)), map[int]float64{2024: 5000})
	checkSeries(t, feed.BudgetSeries(ByCSPLabel(LabelFixed)), map[int]float64{2024: -4000})
}

func TestFilterMatchBudget(t *testing.T) {
	// Budget rows carry no category or account, so those filters never match.
	row := budgetRow{year: 2024, month: 1, csp: "fixed", label: LabelFixed}
	if ByCategory("Rent").matchBudget(row) {
		t.Error("category filter must not match budget rows")
	}
	if ByAccount("checking").matchBudget(row) {
		t.Error("account filter must not match budget rows")
	}
	if !ByCSP("fixed").matchBudget(row) {
		t.Error("csp filter should match budget rows")
	}
}
