package hearth

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

// testQuoteServer serves a minimal JSON quote service: a quote document per
// symbol and yearly [year, close] rows.
func testQuoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/quote/VTI", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"last": 123.45, "kind": 2}}`)
	})
	mux.HandleFunc("/quote/CASH", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"last": 1.0, "kind": 4}}`)
	})
	mux.HandleFunc("/closes/VTI", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rows": [[2020, 100], [2021, 110], [2022, 121]]}`)
	})
	mux.HandleFunc("/closes/BAD", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"rows": [["not", "numeric"]]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testWebQuotes(t *testing.T) *WebQuotes {
	t.Helper()
	server := testQuoteServer(t)
	return &WebQuotes{
		QuoteURL:  server.URL + "/quote/%s",
		PricePath: "$.data.last",
		HintPath:  "$.data.kind",
		ClosesURL: server.URL + "/closes/%s",
		RowsPath:  "$.rows",
	}
}

func TestWebQuotesQuote(t *testing.T) {
	w := testWebQuotes(t)

	q, err := w.Quote("VTI")
	if err != nil {
		t.Fatal(err)
	}
	if q.Price != 123.45 || q.Hint != HintEquity {
		t.Errorf("quote = %+v", q)
	}

	cash, err := w.Quote("CASH")
	if err != nil {
		t.Fatal(err)
	}
	if cash.Hint != HintMoneyMarket {
		t.Errorf("cash hint = %d, want %d", cash.Hint, HintMoneyMarket)
	}

	if _, err := w.Quote("NOPE"); err == nil {
		t.Error("expected an error for an unknown symbol")
	}
}

func TestWebQuotesYearlyCloses(t *testing.T) {
	w := testWebQuotes(t)

	closes, err := w.YearlyCloses("VTI")
	if err != nil {
		t.Fatal(err)
	}
	checkSeries(t, closes, map[int]float64{2020: 100, 2021: 110, 2022: 121})

	if _, err := w.YearlyCloses("BAD"); err == nil {
		t.Error("expected an error for non-numeric rows")
	}
}

func TestWebQuotesAsPriceSource(t *testing.T) {
	// The web source plugs into a holding like any other price source.
	w := testWebQuotes(t)
	vti := NewHolding("VTI", 10, 800, w)

	if got := vti.CurrentValue(); math.Abs(got-1234.50) > 0.01 {
		t.Errorf("current value = %.2f, want 1234.50", got)
	}
	returns, err := vti.HistoricalReturns()
	if err != nil {
		t.Fatal(err)
	}
	checkSeries(t, returns, map[int]float64{2021: 0.1, 2022: 0.1})
}
