package hearth

import (
	"math"
	"testing"

	"github.com/hearthlab/hearth/annual"
)

func testQuotes() *StaticQuotes {
	q := NewStaticQuotes()
	q.SetQuote("VTI", Quote{Price: 100, Hint: HintEquity})
	q.SetQuote("CASH", Quote{Price: 1, Hint: HintMoneyMarket})
	q.SetYearlyCloses("VTI", annual.New(map[int]float64{
		2020: 100, 2021: 110, 2022: 121,
	}))
	return q
}

func TestHoldingCurrentPrice(t *testing.T) {
	q := testQuotes()

	vti := NewHolding("VTI", 10, 800, q)
	if got := vti.CurrentPrice(); got != 100 {
		t.Errorf("equity price = %.2f, want 100", got)
	}
	if got := vti.CurrentValue(); got != 1000 {
		t.Errorf("equity value = %.2f, want 1000", got)
	}

	cash := NewHolding("CASH", 500, math.NaN(), q)
	if got := cash.CurrentPrice(); got != 1 {
		t.Errorf("cash price = %.2f, want 1", got)
	}
	// Unknown cost basis on a cash equivalent falls back to face value.
	if got := cash.CostBasis(); got != 500 {
		t.Errorf("cash cost basis = %.2f, want 500", got)
	}

	unknown := NewHolding("NOPE", 10, 0, q)
	if got := unknown.CurrentPrice(); got != 0 {
		t.Errorf("unquoted price = %.2f, want 0", got)
	}
}

func TestHoldingReturns(t *testing.T) {
	q := testQuotes()
	vti := NewHolding("VTI", 10, 800, q)

	returns, err := vti.HistoricalReturns()
	if err != nil {
		t.Fatal(err)
	}
	checkSeries(t, returns, map[int]float64{2021: 0.1, 2022: 0.1})

	inflation := annual.New(map[int]float64{2021: 0.03, 2022: 0.07})
	real, err := vti.RealReturns(inflation)
	if err != nil {
		t.Fatal(err)
	}
	checkSeries(t, real, map[int]float64{2021: 0.07, 2022: 0.03})

	// The cached average is the real mean, not the nominal one.
	if err := vti.CalcAvgReturn(inflation); err != nil {
		t.Fatal(err)
	}
	if got := vti.AvgReturn(); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("avg return = %.4f, want 0.05", got)
	}
}

func TestCalcAvgReturnDeflatesByInflation(t *testing.T) {
	q := testQuotes()
	vti := NewHolding("VTI", 10, 800, q)

	// A flat 5% inflation over 10% nominal returns leaves a 5% real return.
	if err := vti.CalcAvgReturn(annual.Constant(0.05, 2021, 2022)); err != nil {
		t.Fatal(err)
	}
	if got := vti.AvgReturn(); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("avg return = %.4f, want 0.05", got)
	}

	// No overlap between returns and inflation years is an error.
	if err := vti.CalcAvgReturn(annual.Constant(0.05, 1990, 1995)); err == nil {
		t.Error("expected an error without overlapping inflation years")
	}

	cash := NewHolding("CASH", 500, math.NaN(), q)
	if err := cash.CalcAvgReturn(&annual.Series{}); err != nil {
		t.Fatal(err)
	}
	if got := cash.AvgReturn(); got != 0 {
		t.Errorf("cash avg return = %.4f, want 0", got)
	}
}

func TestInitializeForecastMatrix(t *testing.T) {
	q := testQuotes()
	vti := NewHolding("VTI", 10, 800, q)
	vti.SetAvgReturn(0.1)

	years := []int{2025, 2026, 2027}
	contributions := annual.New(map[int]float64{2026: 1000})
	value, cost := vti.InitializeForecastMatrix(years, contributions)

	// Column 0 carries the initial value (1000) growing at 10%, and the
	// initial cost basis unchanged.
	if got := value.At(2, 0); math.Abs(got-1210) > 0.01 {
		t.Errorf("value(2,0) = %.2f, want 1210", got)
	}
	if got := cost.At(2, 0); got != 800 {
		t.Errorf("cost(2,0) = %.2f, want 800", got)
	}

	// The 2026 contribution lands in column 1 and grows from there.
	if got := value.At(1, 1); got != 1000 {
		t.Errorf("value(1,1) = %.2f, want 1000", got)
	}
	if got := value.At(2, 1); math.Abs(got-1100) > 0.01 {
		t.Errorf("value(2,1) = %.2f, want 1100", got)
	}
	if got := cost.At(2, 1); got != 1000 {
		t.Errorf("cost(2,1) = %.2f, want 1000", got)
	}

	// Upper triangle stays zero: money cannot exist before it is contributed.
	if got := value.At(0, 1); got != 0 {
		t.Errorf("value(0,1) = %.2f, want 0", got)
	}

	if got := value.RowSum(2); math.Abs(got-2310) > 0.01 {
		t.Errorf("RowSum(2) = %.2f, want 2310", got)
	}
}

func TestParseAccountType(t *testing.T) {
	for _, kind := range []AccountType{Taxable, TaxDeferred, TaxFree} {
		got, err := ParseAccountType(kind.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != kind {
			t.Errorf("round trip %v = %v", kind, got)
		}
	}
	if _, err := ParseAccountType("401k"); err == nil {
		t.Error("invalid account type accepted")
	}
}

func TestPortfolioCurrentValue(t *testing.T) {
	q := testQuotes()
	brokerage := NewAccount("brokerage", Taxable)
	brokerage.AddHolding(NewHolding("VTI", 10, 800, q))
	brokerage.AddHolding(NewHolding("CASH", 500, math.NaN(), q))

	p := NewPortfolio()
	p.AddAccount(brokerage)
	if got := p.CurrentValue(); got != 1500 {
		t.Errorf("portfolio value = %.2f, want 1500", got)
	}
}
