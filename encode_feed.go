package hearth

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/hearthlab/hearth/annual"
	"github.com/shopspring/decimal"
)

// This file contains code to decode the feed and plan files, all
// human-readable and git-friendly: transactions as JSONL (one record per
// line), config, budget and plan as plain JSON documents.

// DecodeRecords parses a JSONL transaction feed. filename is for error
// messages only.
func DecodeRecords(filename string, r io.Reader) ([]Record, error) {
	// to parse a json, we use a dedicated local struct with tag annotation.
	type jrecord struct {
		Date     string          `json:"date"` // YYYY-MM-DD
		Amount   decimal.Decimal `json:"amount"`
		Category string          `json:"category"`
		Account  string          `json:"account"`
		Hidden   bool            `json:"hidden,omitempty"`
	}

	var records []Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jr jrecord
		if err := json.Unmarshal(line, &jr); err != nil {
			return nil, fmt.Errorf("format error in %q on line %q: %w", filename, string(line), err)
		}
		date, err := time.Parse("2006-01-02", jr.Date)
		if err != nil {
			return nil, fmt.Errorf("format error in %q: invalid date %q: %w", filename, jr.Date, err)
		}
		records = append(records, Record{
			Date:     date,
			Amount:   jr.Amount,
			Category: jr.Category,
			Account:  jr.Account,
			Hidden:   jr.Hidden,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %q: %w", filename, err)
	}
	return records, nil
}

// DecodeConfig parses the feed configuration.
func DecodeConfig(filename string, r io.Reader) (*Config, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}
	return &cfg, nil
}

// DecodeBudget parses the budget grid: year -> month -> CSP code -> amount.
func DecodeBudget(filename string, r io.Reader) (Budget, error) {
	var budget Budget
	if err := json.NewDecoder(r).Decode(&budget); err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}
	return budget, nil
}

// PlanHolding is one position in a retirement plan file. Prices are pinned in
// the file so a simulation never needs the network.
type PlanHolding struct {
	Symbol        string          `json:"symbol"`
	Shares        float64         `json:"shares"`
	CostBasis     *float64        `json:"cost_basis,omitempty"` // omitted means unknown
	AvgReturn     float64         `json:"avg_return"`
	Price         float64         `json:"price"`
	Cash          bool            `json:"cash,omitempty"`
	Contributions map[int]float64 `json:"contributions,omitempty"` // year -> amount
}

// PlanAccount is one account in a retirement plan file.
type PlanAccount struct {
	Name     string        `json:"name"`
	Type     string        `json:"type"` // taxable, tax-deferred, tax-free
	Holdings []PlanHolding `json:"holdings"`
}

// Plan is a self-contained retirement plan file.
type Plan struct {
	FirstYear int             `json:"first_year"`
	LastYear  int             `json:"last_year"`
	StartAge  float64         `json:"start_age"`
	Expenses  map[int]float64 `json:"expenses"` // year -> yearly spending
	Accounts  []PlanAccount   `json:"accounts"`
}

// DecodePlan parses a retirement plan file.
func DecodePlan(filename string, r io.Reader) (*Plan, error) {
	var plan Plan
	if err := json.NewDecoder(r).Decode(&plan); err != nil {
		return nil, fmt.Errorf("format error in %q: %w", filename, err)
	}
	if plan.LastYear < plan.FirstYear {
		return nil, fmt.Errorf("format error in %q: last_year %d before first_year %d", filename, plan.LastYear, plan.FirstYear)
	}
	return &plan, nil
}

// Scenario builds the simulation from the plan: a static price source from
// the pinned prices, the portfolio, and the per-holding contributions.
func (p *Plan) Scenario() (*RetirementScenario, error) {
	quotes := NewStaticQuotes()
	portfolio := NewPortfolio()
	contributions := map[HoldingKey]*annual.Series{}

	for _, pa := range p.Accounts {
		kind, err := ParseAccountType(pa.Type)
		if err != nil {
			return nil, fmt.Errorf("account %q: %w", pa.Name, err)
		}
		account := NewAccount(pa.Name, kind)
		for _, ph := range pa.Holdings {
			hint := HintEquity
			if ph.Cash {
				hint = HintMoneyMarket
			}
			quotes.SetQuote(ph.Symbol, Quote{Price: ph.Price, Hint: hint})

			costBasis := math.NaN()
			if ph.CostBasis != nil {
				costBasis = *ph.CostBasis
			}
			holding := NewHolding(ph.Symbol, ph.Shares, costBasis, quotes)
			holding.SetAvgReturn(ph.AvgReturn)
			account.AddHolding(holding)

			key := HoldingKey{Account: pa.Name, Symbol: ph.Symbol}
			if len(ph.Contributions) > 0 {
				contributions[key] = annual.New(ph.Contributions)
			} else {
				contributions[key] = &annual.Series{}
			}
		}
		portfolio.AddAccount(account)
	}

	expenses := annual.New(p.Expenses)
	return NewRetirementScenario(portfolio, p.FirstYear, p.LastYear, p.StartAge, expenses, contributions), nil
}
