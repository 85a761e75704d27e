package hearth

import (
	"log"

	"github.com/hearthlab/hearth/annual"
)

// FinancialEntity is anything with named income and expense streams: an
// individual, a business, a household. Streams are keyed by name; re-adding
// a name overwrites the previous stream with a logged warning.
type FinancialEntity struct {
	name     string
	incomes  *streamRegistry
	expenses *streamRegistry
}

// NewFinancialEntity creates an entity with no streams.
func NewFinancialEntity(name string) FinancialEntity {
	return FinancialEntity{
		name:     name,
		incomes:  &streamRegistry{},
		expenses: &streamRegistry{},
	}
}

// Name returns the entity's name.
func (e *FinancialEntity) Name() string { return e.name }

// AddIncome registers an income stream under its name.
func (e *FinancialEntity) AddIncome(s *Stream) { e.incomes.add(s) }

// AddExpense registers an expense stream under its name.
func (e *FinancialEntity) AddExpense(s *Stream) { e.expenses.add(s) }

// Income returns the income stream with that name, or nil.
func (e *FinancialEntity) Income(name string) *Stream { return e.incomes.get(name) }

// Expense returns the expense stream with that name, or nil.
func (e *FinancialEntity) Expense(name string) *Stream { return e.expenses.get(name) }

// TotalIncome aggregates all income streams into a single series. Years
// missing from a stream count as zero.
func (e *FinancialEntity) TotalIncome() *annual.Series {
	return sumStreams(e.incomes)
}

// TotalExpenses aggregates all expense streams into a single series.
func (e *FinancialEntity) TotalExpenses() *annual.Series {
	return sumStreams(e.expenses)
}

// NetCashflow is total income plus total expenses (expenses are negative).
func (e *FinancialEntity) NetCashflow() *annual.Series {
	return annual.Sum(e.TotalIncome(), e.TotalExpenses())
}

func sumStreams(r *streamRegistry) *annual.Series {
	total := &annual.Series{}
	for _, s := range r.ordered {
		total = total.Add(s.StreamSeries())
	}
	return total
}

// streamRegistry is an ordered name->Stream mapping with insert-or-replace
// semantics. Order is insertion order; replacing keeps the original slot.
type streamRegistry struct {
	ordered []*Stream
	index   map[string]int
}

func (r *streamRegistry) add(s *Stream) {
	if r.index == nil {
		r.index = map[string]int{}
	}
	if i, ok := r.index[s.Name()]; ok {
		log.Printf("stream %q already exists and will be overwritten", s.Name())
		r.ordered[i] = s
		return
	}
	r.index[s.Name()] = len(r.ordered)
	r.ordered = append(r.ordered, s)
}

func (r *streamRegistry) get(name string) *Stream {
	if i, ok := r.index[name]; ok {
		return r.ordered[i]
	}
	return nil
}
