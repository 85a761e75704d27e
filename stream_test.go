package hearth

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestStreamSeries(t *testing.T) {
	// One rent payment per year, latest in 2024. The stream projects from the
	// smoothed 2024 total at 10% a year through 2026.
	feed := testFeed(t, []Record{
		rec(t, "2023-06-15", -1000, "Rent", "checking"),
		rec(t, "2024-06-15", -1000, "Rent", "checking"),
	}, nil)

	s := NewStream("Rent", feed, ByCSPLabel(LabelFixed), 2026, 1.1, false)
	checkSeries(t, s.StreamSeries(), map[int]float64{
		2023: -1000,
		2024: -1000,
		2025: -1100,
		2026: -1210,
	})
}

func TestStreamManualEntryRebasesProjection(t *testing.T) {
	feed := testFeed(t, []Record{
		rec(t, "2024-06-15", -1000, "Rent", "checking"),
	}, nil)

	s := NewStream("Rent", feed, ByCSPLabel(LabelFixed), 2027, 1.1, false)
	// Prime the cache, then invalidate it with a manual entry.
	s.StreamSeries()
	s.AddManualEntry(2026, -500)

	checkSeries(t, s.StreamSeries(), map[int]float64{
		2024: -1000,
		2025: -1100,
		2026: -500,
		2027: -550,
	})
}

func TestStreamBudgetFallback(t *testing.T) {
	// A budget-backed stream with no budget rows falls back to transactions.
	feed := testFeed(t, []Record{
		rec(t, "2024-06-15", -1000, "Rent", "checking"),
	}, nil)

	s := NewStream("Rent", feed, ByCSPLabel(LabelFixed), 2025, 1.0, true)
	checkSeries(t, s.ProjectedSeries(), map[int]float64{2025: -1000})
}

func TestStreamBudgetBacked(t *testing.T) {
	budget := Budget{
		2024: {1: {"fixed": decimal.NewFromInt(1000)}},
	}
	feed := testFeed(t, []Record{
		rec(t, "2024-06-15", -9999, "Rent", "checking"),
	}, budget)

	s := NewStream("Rent", feed, ByCSPLabel(LabelFixed), 2025, 1.0, true)
	// The budget figure wins over the transaction history.
	checkSeries(t, s.StreamSeries(), map[int]float64{
		2024: -1000,
		2025: -1000,
	})
}
