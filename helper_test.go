package hearth

import (
	"testing"
	"time"

	"github.com/hearthlab/hearth/annual"
	"github.com/shopspring/decimal"
)

// testConfig returns a feed configuration covering the usual categories.
func testConfig() *Config {
	return &Config{
		CategoryGroups: map[string]string{
			"Paycheck":    "Income",
			"Rent":        "Housing",
			"Utilities":   "Housing",
			"Restaurants": "Food",
		},
		CSPFromGroup: map[string]string{
			"Income":  "income",
			"Housing": "fixed",
		},
		CSPFromCategory: map[string]string{
			"Brokerage": "investments",
		},
		CSPLabels: map[string]string{
			"income":      LabelIncome,
			"fixed":       LabelFixed,
			"guilt_free":  LabelGuiltFree,
			"savings":     LabelSavings,
			"investments": LabelInvestments,
		},
		AccountOwners: map[string]string{
			"checking": "alice",
			"biz":      "sidegig",
		},
		DropCategories: []string{"Transfer"},
	}
}

// rec builds a transaction record for tests.
func rec(t *testing.T, date string, amount float64, category, account string) Record {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return Record{Date: d, Amount: decimal.NewFromFloat(amount), Category: category, Account: account}
}

// testFeed processes records for alice with the test configuration.
func testFeed(t *testing.T, records []Record, budget Budget) *Feed {
	t.Helper()
	return NewFeed("alice", testConfig(), records, budget)
}

// checkSeries fails unless got matches the expected year->amount map exactly.
func checkSeries(t *testing.T, got *annual.Series, want map[int]float64) {
	t.Helper()
	if got.Len() != len(want) {
		t.Fatalf("got %d years, want %d:\n%s", got.Len(), len(want), got)
	}
	for y, v := range want {
		g, ok := got.Get(y)
		if !ok {
			t.Errorf("missing year %d", y)
			continue
		}
		if diff := g - v; diff > 0.01 || diff < -0.01 {
			t.Errorf("year %d: got %.2f, want %.2f", y, g, v)
		}
	}
}
