package hearth

import (
	"fmt"
	"math"
	"strings"

	"github.com/hearthlab/hearth/annual"
)

// earlyWithdrawalAge gates tax-advantaged accounts: withdrawals from
// tax-deferred and tax-free accounts before this age are not simulated.
const earlyWithdrawalAge = 59.5

// withdrawalOrder is the account priority during retirement: spend taxable
// money first, then tax-deferred, and tax-free last.
var withdrawalOrder = []AccountType{Taxable, TaxDeferred, TaxFree}

// HoldingKey identifies a holding by account name and symbol.
type HoldingKey struct {
	Account string
	Symbol  string
}

// Withdrawal records one holding's share of a year's withdrawal.
type Withdrawal struct {
	Account string
	Symbol  string
	Type    AccountType
	Amount  float64
	Gains   float64
}

func (w Withdrawal) String() string {
	return fmt.Sprintf("%s/%s (%s): %s", w.Account, w.Symbol, w.Type, M(w.Amount, "USD"))
}

// YearRecord summarizes one simulated retirement year.
type YearRecord struct {
	Year           int
	Age            float64
	Withdrawals    []Withdrawal
	TotalWithdrawn float64
	TaxableIncome  float64 // tax-deferred withdrawals, taxed as ordinary income
	CapitalGains   float64 // gains realized from taxable accounts
	Remaining      float64 // unmet need after all accounts are exhausted
}

// holdingForecast pairs one holding with its value and cost matrices.
type holdingForecast struct {
	account *Account
	holding *Holding
	value   *ForecastMatrix
	cost    *ForecastMatrix
}

// RetirementScenario simulates yearly withdrawals from a portfolio during
// retirement. Each holding's future is a pair of forecast matrices (value and
// cost basis by contribution cohort); withdrawals reduce cohorts
// proportionally and propagate through the remaining years.
type RetirementScenario struct {
	portfolio     *Portfolio
	years         []int
	startAge      float64
	expenses      *annual.Series
	contributions map[HoldingKey]*annual.Series

	forecasts []*holdingForecast
}

// NewRetirementScenario creates a scenario covering firstYear through
// lastYear inclusive. startAge is the retiree's age in firstYear, expenses
// the yearly spending to cover, and contributions the planned yearly
// contribution per holding.
func NewRetirementScenario(p *Portfolio, firstYear, lastYear int, startAge float64, expenses *annual.Series, contributions map[HoldingKey]*annual.Series) *RetirementScenario {
	years := make([]int, 0, lastYear-firstYear+1)
	for y := firstYear; y <= lastYear; y++ {
		years = append(years, y)
	}
	return &RetirementScenario{
		portfolio:     p,
		years:         years,
		startAge:      startAge,
		expenses:      expenses,
		contributions: contributions,
	}
}

// initialize builds the forecast matrices for every holding. Every holding
// must have a contribution series, possibly all zeros.
func (s *RetirementScenario) initialize() error {
	s.forecasts = nil
	for _, account := range s.portfolio.Accounts() {
		for _, holding := range account.Holdings() {
			key := HoldingKey{Account: account.Name(), Symbol: holding.Symbol()}
			contrib, ok := s.contributions[key]
			if !ok {
				return fmt.Errorf("no contribution series for %s/%s", key.Account, key.Symbol)
			}
			value, cost := holding.InitializeForecastMatrix(s.years, contrib)
			s.forecasts = append(s.forecasts, &holdingForecast{
				account: account,
				holding: holding,
				value:   value,
				cost:    cost,
			})
		}
	}
	return nil
}

// withdrawFromHolding takes up to amount from the holding in year index i.
// Cohort columns shrink proportionally to their share of the row; the
// reduction compounds forward at the holding's expected return in the value
// matrix and carries unchanged in the cost matrix. Returns the amount
// actually withdrawn and the capital gain realized.
func (s *RetirementScenario) withdrawFromHolding(f *holdingForecast, i int, amount float64) (withdrawn, gains float64) {
	available := f.value.RowSum(i)
	if available <= 0 || amount <= 0 {
		return 0, 0
	}
	withdrawn = math.Min(amount, available)
	gainRatio := 1 - f.cost.RowSum(i)/available
	gains = withdrawn * gainRatio

	growth := 1 + f.holding.AvgReturn()
	fraction := withdrawn / available
	n := f.value.Size()
	for j := 0; j <= i; j++ {
		valueCut := f.value.At(i, j) * fraction
		costCut := f.cost.At(i, j) * fraction
		if valueCut == 0 && costCut == 0 {
			continue
		}
		for k := i; k < n; k++ {
			v := f.value.At(k, j) - valueCut*math.Pow(growth, float64(k-i))
			if v < 0 {
				v = 0
			}
			c := f.cost.At(k, j) - costCut
			if c < 0 {
				c = 0
			}
			if c > v {
				c = v
			}
			f.value.Set(k, j, v)
			f.cost.Set(k, j, c)
		}
	}
	return withdrawn, gains
}

// withdrawForYear covers the year's need from accounts in withdrawal-order
// priority. Tax-advantaged accounts are skipped before the early-withdrawal
// age. Returns the withdrawals made and the unmet remainder.
func (s *RetirementScenario) withdrawForYear(i int, need float64) ([]Withdrawal, float64) {
	age := s.startAge + float64(i)
	var withdrawals []Withdrawal
	remaining := need
	for _, kind := range withdrawalOrder {
		if remaining <= 0 {
			break
		}
		if kind != Taxable && age < earlyWithdrawalAge {
			continue
		}
		for _, f := range s.forecasts {
			if f.account.Type() != kind || remaining <= 0 {
				continue
			}
			amount, gains := s.withdrawFromHolding(f, i, remaining)
			if amount == 0 {
				continue
			}
			withdrawals = append(withdrawals, Withdrawal{
				Account: f.account.Name(),
				Symbol:  f.holding.Symbol(),
				Type:    kind,
				Amount:  amount,
				Gains:   gains,
			})
			remaining -= amount
		}
	}
	return withdrawals, remaining
}

// Simulate runs the scenario year by year and returns one record per year.
// Expenses are negative, like everywhere else in the engine; the year's need
// is their negation, so a positive expense value withdraws nothing.
func (s *RetirementScenario) Simulate() ([]YearRecord, error) {
	if err := s.initialize(); err != nil {
		return nil, err
	}
	records := make([]YearRecord, 0, len(s.years))
	for i, year := range s.years {
		need := -s.expenses.At(year)
		if need < 0 {
			need = 0
		}
		withdrawals, remaining := s.withdrawForYear(i, need)

		record := YearRecord{
			Year:        year,
			Age:         s.startAge + float64(i),
			Withdrawals: withdrawals,
			Remaining:   round2(remaining),
		}
		for _, w := range withdrawals {
			record.TotalWithdrawn += w.Amount
			switch w.Type {
			case TaxDeferred:
				record.TaxableIncome += w.Amount
			case Taxable:
				record.CapitalGains += w.Gains
			}
		}
		record.TotalWithdrawn = round2(record.TotalWithdrawn)
		record.TaxableIncome = round2(record.TaxableIncome)
		record.CapitalGains = round2(record.CapitalGains)
		records = append(records, record)
	}
	return records, nil
}

// ForecastTotalValue returns the portfolio's total forecast value per year,
// net of any withdrawals simulated so far. It initializes the forecasts if
// Simulate has not run.
func (s *RetirementScenario) ForecastTotalValue() (*annual.Series, error) {
	if s.forecasts == nil {
		if err := s.initialize(); err != nil {
			return nil, err
		}
	}
	total := &annual.Series{}
	for i, year := range s.years {
		var v float64
		for _, f := range s.forecasts {
			v += f.value.RowSum(i)
		}
		total.Append(year, round2(v))
	}
	return total, nil
}

// Summary renders the simulation results as a short text report.
func (s *RetirementScenario) Summary(records []YearRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Retirement plan %d-%d\n", s.years[0], s.years[len(s.years)-1])
	depleted := 0
	for _, r := range records {
		if r.Remaining > 0 && depleted == 0 {
			depleted = r.Year
		}
	}
	if depleted != 0 {
		fmt.Fprintf(&b, "Portfolio depleted in %d\n", depleted)
	} else {
		fmt.Fprintf(&b, "Portfolio covers all years\n")
	}
	if total, err := s.ForecastTotalValue(); err == nil {
		if _, last := total.Latest(); len(records) > 0 {
			fmt.Fprintf(&b, "Final value: %s\n", M(last, "USD"))
		}
	}
	return b.String()
}
