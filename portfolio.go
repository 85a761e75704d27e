package hearth

import (
	"fmt"
	"log"
	"math"

	"github.com/hearthlab/hearth/annual"
)

// Quote hint values, matching the upstream quote feed's instrument classes.
const (
	HintEquity      = 2
	HintMoneyMarket = 4
)

// Quote is a current price with the feed's instrument-class hint.
type Quote struct {
	Price float64
	Hint  int
}

// A PriceSource resolves symbols to current quotes and yearly close series.
type PriceSource interface {
	Quote(symbol string) (Quote, error)
	// YearlyCloses returns the last closing price of each year.
	YearlyCloses(symbol string) (*annual.Series, error)
}

// Holding is a position in a single symbol within an account: a share count,
// an optional cost basis, and an expected average yearly return used for
// forecasting.
type Holding struct {
	symbol    string
	shares    float64
	costBasis float64 // NaN when unknown
	avgReturn float64

	source PriceSource
}

// NewHolding creates a holding. Pass math.NaN() for costBasis when the basis
// is unknown.
func NewHolding(symbol string, shares, costBasis float64, source PriceSource) *Holding {
	return &Holding{symbol: symbol, shares: shares, costBasis: costBasis, source: source}
}

// Symbol returns the ticker symbol.
func (h *Holding) Symbol() string { return h.symbol }

// Shares returns the share count.
func (h *Holding) Shares() float64 { return h.shares }

// cashEquivalent reports whether the symbol is a money-market instrument,
// treated as cash at a fixed $1 price.
func (h *Holding) cashEquivalent() bool {
	q, err := h.source.Quote(h.symbol)
	if err != nil {
		log.Printf("quote %s: %v, not treating as cash", h.symbol, err)
		return false
	}
	return q.Hint == HintMoneyMarket
}

// CurrentPrice returns the current price per share. Cash equivalents price
// at one; symbols without a valid equity quote price at zero with a warning.
func (h *Holding) CurrentPrice() float64 {
	if h.cashEquivalent() {
		return 1.0
	}
	q, err := h.source.Quote(h.symbol)
	if err != nil || q.Hint != HintEquity {
		log.Printf("no valid price for %s, using zero", h.symbol)
		return 0
	}
	return q.Price
}

// CurrentValue is shares times the current price.
func (h *Holding) CurrentValue() float64 { return h.shares * h.CurrentPrice() }

// CostBasis returns the known cost basis. When unknown, cash equivalents
// fall back to their face value and anything else to zero.
func (h *Holding) CostBasis() float64 {
	if !math.IsNaN(h.costBasis) {
		return h.costBasis
	}
	if h.cashEquivalent() {
		return 1.0 * h.shares
	}
	return 0
}

// HistoricalReturns computes year-over-year returns from yearly closes.
func (h *Holding) HistoricalReturns() (*annual.Series, error) {
	closes, err := h.source.YearlyCloses(h.symbol)
	if err != nil {
		return nil, fmt.Errorf("yearly closes %s: %w", h.symbol, err)
	}
	returns := &annual.Series{}
	for year, close := range closes.Values() {
		prev, ok := closes.Get(year - 1)
		if !ok || prev == 0 {
			continue
		}
		returns.Append(year, close/prev-1)
	}
	return returns, nil
}

// RealReturns deflates the historical returns by the given yearly inflation
// rates, over the years both series cover.
func (h *Holding) RealReturns(inflation *annual.Series) (*annual.Series, error) {
	nominal, err := h.HistoricalReturns()
	if err != nil {
		return nil, err
	}
	real := &annual.Series{}
	for year, r := range nominal.Values() {
		infl, ok := inflation.Get(year)
		if !ok {
			continue
		}
		real.Append(year, r-infl)
	}
	return real, nil
}

// CalcAvgReturn sets the holding's expected return to the mean of its
// inflation-adjusted historical returns. Cash equivalents keep a zero
// return.
func (h *Holding) CalcAvgReturn(inflation *annual.Series) error {
	if h.cashEquivalent() {
		h.avgReturn = 0
		return nil
	}
	returns, err := h.RealReturns(inflation)
	if err != nil {
		return err
	}
	if returns.Len() == 0 {
		return fmt.Errorf("no overlapping return and inflation years for %s", h.symbol)
	}
	h.avgReturn = returns.Total() / float64(returns.Len())
	return nil
}

// SetAvgReturn overrides the expected average yearly return.
func (h *Holding) SetAvgReturn(r float64) { h.avgReturn = r }

// AvgReturn returns the expected average yearly return.
func (h *Holding) AvgReturn() float64 { return h.avgReturn }

// InitializeForecastMatrix builds the value and cost forecast matrices over
// the scenario years. Each contribution cohort j grows geometrically at the
// expected return down its column of the value matrix, while the cost matrix
// carries it unchanged. The current value and cost basis seed column zero.
func (h *Holding) InitializeForecastMatrix(years []int, contributions *annual.Series) (value, cost *ForecastMatrix) {
	n := len(years)
	value = NewForecastMatrix(n)
	cost = NewForecastMatrix(n)
	growth := 1 + h.avgReturn

	initialValue := h.CurrentValue()
	initialCost := h.CostBasis()
	for i := 0; i < n; i++ {
		value.Set(i, 0, initialValue*math.Pow(growth, float64(i)))
		cost.Set(i, 0, initialCost)
	}
	for j, year := range years {
		c, ok := contributions.Get(year)
		if !ok || c == 0 {
			continue
		}
		for i := j; i < n; i++ {
			value.Set(i, j, value.At(i, j)+c*math.Pow(growth, float64(i-j)))
			cost.Set(i, j, cost.At(i, j)+c)
		}
	}
	return value, cost
}

// AccountType classifies the tax treatment of an investment account.
type AccountType int

const (
	// Taxable accounts owe capital-gains tax on withdrawal gains.
	Taxable AccountType = iota
	// TaxDeferred accounts owe ordinary income tax on withdrawals.
	TaxDeferred
	// TaxFree accounts owe nothing on withdrawal.
	TaxFree
)

func (t AccountType) String() string {
	switch t {
	case Taxable:
		return "taxable"
	case TaxDeferred:
		return "tax-deferred"
	case TaxFree:
		return "tax-free"
	default:
		return "unknown"
	}
}

// ParseAccountType parses the string representation of an account type.
func ParseAccountType(s string) (AccountType, error) {
	switch s {
	case "taxable":
		return Taxable, nil
	case "tax-deferred":
		return TaxDeferred, nil
	case "tax-free":
		return TaxFree, nil
	default:
		return Taxable, fmt.Errorf("invalid account type %q", s)
	}
}

// Account is a named investment account holding positions, with a tax
// treatment that drives the withdrawal order in retirement.
type Account struct {
	name     string
	kind     AccountType
	holdings []*Holding
}

// NewAccount creates an empty account.
func NewAccount(name string, kind AccountType) *Account {
	return &Account{name: name, kind: kind}
}

// Name returns the account name.
func (a *Account) Name() string { return a.name }

// Type returns the account's tax treatment.
func (a *Account) Type() AccountType { return a.kind }

// Holdings returns the account's positions.
func (a *Account) Holdings() []*Holding { return a.holdings }

// AddHolding appends a position to the account.
func (a *Account) AddHolding(h *Holding) { a.holdings = append(a.holdings, h) }

// CurrentValue totals the market value of all positions.
func (a *Account) CurrentValue() float64 {
	var total float64
	for _, h := range a.holdings {
		total += h.CurrentValue()
	}
	return total
}

// Portfolio is the collection of a household's investment accounts.
type Portfolio struct {
	accounts []*Account
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio() *Portfolio { return &Portfolio{} }

// Accounts returns the accounts in insertion order.
func (p *Portfolio) Accounts() []*Account { return p.accounts }

// AddAccount appends an account to the portfolio.
func (p *Portfolio) AddAccount(a *Account) { p.accounts = append(p.accounts, a) }

// CurrentValue totals the market value across all accounts.
func (p *Portfolio) CurrentValue() float64 {
	var total float64
	for _, a := range p.accounts {
		total += a.CurrentValue()
	}
	return total
}
