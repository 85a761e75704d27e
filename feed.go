package hearth

import (
	"fmt"
	"log"
	"time"

	"github.com/hearthlab/hearth/annual"
	"github.com/shopspring/decimal"
)

// Conscious spending plan labels. Every transaction category maps to exactly
// one of these through the per-user Config.
const (
	LabelIncome      = "income"
	LabelFixed       = "fixed"
	LabelGuiltFree   = "guilt-free"
	LabelSavings     = "savings"
	LabelInvestments = "investments"
)

// Record is a single raw cash movement from the transaction feed.
// Expenses are negative, incomes positive.
type Record struct {
	Date     time.Time
	Amount   decimal.Decimal
	Category string
	Account  string
	Hidden   bool // hidden from reports, dropped at processing
}

// Budget is the raw budget feed: year -> month -> CSP code -> planned amount.
type Budget map[int]map[int]map[string]decimal.Decimal

// Config maps the raw feed vocabulary onto the conscious spending plan:
// raw category -> group -> CSP code -> CSP label, and account -> owner.
type Config struct {
	CategoryGroups  map[string]string `json:"category_groups"`   // raw category -> group
	CSPFromGroup    map[string]string `json:"csp_from_group"`    // group -> CSP code
	CSPFromCategory map[string]string `json:"csp_from_category"` // raw category -> CSP code, fallback
	CSPLabels       map[string]string `json:"csp_labels"`        // CSP code -> label
	AccountOwners   map[string]string `json:"account_owners"`    // account -> owning entity
	DropCategories  []string          `json:"drop_categories"`
}

func (c *Config) dropped(category string) bool {
	for _, d := range c.DropCategories {
		if d == category {
			return true
		}
	}
	return false
}

// csp resolves the CSP code for a raw category: group mapping first, then the
// per-category override, then the guilt-free default.
func (c *Config) csp(category string) string {
	if code, ok := c.CSPFromGroup[c.CategoryGroups[category]]; ok {
		return code
	}
	if code, ok := c.CSPFromCategory[category]; ok {
		return code
	}
	return "guilt_free"
}

func (c *Config) owner(account string) string {
	if o, ok := c.AccountOwners[account]; ok {
		return o
	}
	return account
}

// record is a processed transaction with its CSP classification resolved.
type record struct {
	Record
	csp   string
	label string
}

// budgetRow is a processed month-level budget entry. Non-income rows are
// negative by convention.
type budgetRow struct {
	year, month int
	csp         string
	label       string
	amount      decimal.Decimal
}

// Feed gives the engine uniform access to one entity's transaction history
// and budget grid. Construction resolves the CSP mapping and drops hidden or
// excluded records; afterwards the feed is read-only.
type Feed struct {
	owner   string
	records []record
	budget  []budgetRow
}

// NewFeed processes raw transactions and budget for a single owning entity.
func NewFeed(owner string, cfg *Config, raw []Record, budget Budget) *Feed {
	f := &Feed{owner: owner}
	for _, r := range raw {
		if r.Hidden || cfg.dropped(r.Category) {
			continue
		}
		if cfg.owner(r.Account) != owner {
			continue
		}
		code := cfg.csp(r.Category)
		f.records = append(f.records, record{Record: r, csp: code, label: cfg.CSPLabels[code]})
	}
	for year, months := range budget {
		for month, categories := range months {
			for code, amount := range categories {
				label := cfg.CSPLabels[code]
				if label != LabelIncome {
					amount = amount.Neg()
				}
				f.budget = append(f.budget, budgetRow{year: year, month: month, csp: code, label: label, amount: amount})
			}
		}
	}
	return f
}

// Owner returns the entity this feed was processed for.
func (f *Feed) Owner() string { return f.owner }

// filterKind enumerates the closed set of feed filters. Streams are
// data-driven: they select records by tagged value, not arbitrary code.
type filterKind int

const (
	byCSP filterKind = iota
	byCSPLabel
	byCategory
	byAccount
)

// Filter selects feed records by one attribute.
type Filter struct {
	kind  filterKind
	value string
}

// ByCSP selects records classified under a CSP code.
func ByCSP(code string) Filter { return Filter{kind: byCSP, value: code} }

// ByCSPLabel selects records whose CSP code maps to a label
// (income, fixed, guilt-free, savings, investments).
func ByCSPLabel(label string) Filter { return Filter{kind: byCSPLabel, value: label} }

// ByCategory selects records with a raw feed category.
func ByCategory(name string) Filter { return Filter{kind: byCategory, value: name} }

// ByAccount selects records from one account.
func ByAccount(name string) Filter { return Filter{kind: byAccount, value: name} }

func (f Filter) String() string {
	switch f.kind {
	case byCSP:
		return fmt.Sprintf("csp=%q", f.value)
	case byCSPLabel:
		return fmt.Sprintf("label=%q", f.value)
	case byCategory:
		return fmt.Sprintf("category=%q", f.value)
	case byAccount:
		return fmt.Sprintf("account=%q", f.value)
	default:
		return "unknown"
	}
}

func (f Filter) matchRecord(r record) bool {
	switch f.kind {
	case byCSP:
		return r.csp == f.value
	case byCSPLabel:
		return r.label == f.value
	case byCategory:
		return r.Category == f.value
	case byAccount:
		return r.Account == f.value
	default:
		return false
	}
}

// matchBudget matches budget rows. The budget grid carries no categories or
// accounts, so those filters never match it.
func (f Filter) matchBudget(b budgetRow) bool {
	switch f.kind {
	case byCSP:
		return b.csp == f.value
	case byCSPLabel:
		return b.label == f.value
	default:
		return false
	}
}

// latestDate returns the most recent transaction date in the feed.
func (f *Feed) latestDate() time.Time {
	var latest time.Time
	for _, r := range f.records {
		if r.Date.After(latest) {
			latest = r.Date
		}
	}
	return latest
}

// PastSeries sums matching transactions into an annual series, with the
// in-progress year smoothed: the current (latest) year's total is replaced by
// the trailing-12-month total, to avoid under-counting a partial year.
//
// An empty filtered set is a data-quality warning, not an error; the result
// is then empty.
func (f *Feed) PastSeries(filter Filter) *annual.Series {
	sums := map[int]decimal.Decimal{}
	latest := f.latestDate()
	windowStart := latest.AddDate(-1, 0, 0)
	trailing := decimal.Zero

	matched := false
	for _, r := range f.records {
		if !filter.matchRecord(r) {
			continue
		}
		matched = true
		y := r.Date.Year()
		sums[y] = sums[y].Add(r.Amount)
		if r.Date.After(windowStart) {
			trailing = trailing.Add(r.Amount)
		}
	}
	if !matched {
		log.Printf("no transactions found for %v", filter)
		return &annual.Series{}
	}

	// Replace the partial current year with the trailing-12-month total.
	if _, ok := sums[latest.Year()]; ok {
		sums[latest.Year()] = trailing
	}

	s := &annual.Series{}
	for y, v := range sums {
		s.Append(y, v.InexactFloat64())
	}
	return s
}

// BudgetSeries sums matching budget rows into an annual series.
func (f *Feed) BudgetSeries(filter Filter) *annual.Series {
	sums := map[int]decimal.Decimal{}
	for _, b := range f.budget {
		if filter.matchBudget(b) {
			sums[b.year] = sums[b.year].Add(b.amount)
		}
	}
	s := &annual.Series{}
	for y, v := range sums {
		s.Append(y, v.InexactFloat64())
	}
	return s
}
