package hearth

import (
	"github.com/hearthlab/hearth/annual"
)

// Business represents a business that generates revenue and has expenses,
// distributed to its owners by ownership fraction. Federal taxes are
// assigned externally by the household.
type Business struct {
	FinancialEntity

	ownership map[string]float64 // owner name -> fraction
	exitYear  int
	writeOffs *streamRegistry

	assignedFederal *annual.Series
}

// NewBusiness creates a business. Ownership fractions conventionally sum to
// one but are used as given.
func NewBusiness(name string, ownership map[string]float64, exitYear int) *Business {
	return &Business{
		FinancialEntity: NewFinancialEntity(name),
		ownership:       ownership,
		exitYear:        exitYear,
		writeOffs:       &streamRegistry{},
	}
}

// ExitYear returns the planned exit year.
func (b *Business) ExitYear() int { return b.exitYear }

// Ownership returns the owner -> fraction mapping.
func (b *Business) Ownership() map[string]float64 { return b.ownership }

// AddWriteOff registers a write-off stream: a deductible amount kept out of
// the cash flow that reduces the taxable net revenue.
func (b *Business) AddWriteOff(s *Stream) { b.writeOffs.add(s) }

// NetRevenue is the net cash flow plus all write-off series, summed by year.
func (b *Business) NetRevenue() *annual.Series {
	revenue := b.NetCashflow()
	for _, w := range b.writeOffs.ordered {
		revenue = revenue.Add(w.StreamSeries())
	}
	return revenue
}

// IncomeDistribution splits net income across owners by their fractions,
// one series per owner.
func (b *Business) IncomeDistribution() map[string]*annual.Series {
	net := b.NetCashflow()
	dist := make(map[string]*annual.Series, len(b.ownership))
	for owner, fraction := range b.ownership {
		dist[owner] = net.Scale(fraction)
	}
	return dist
}

// SetFederalTaxes is called by the household to assign this business's share
// of the federal tax liability. Taxes are signed negative.
func (b *Business) SetFederalTaxes(s *annual.Series) { b.assignedFederal = s }

// AssignedTaxes returns the federal taxes assigned by the household, or nil.
func (b *Business) AssignedTaxes() *annual.Series { return b.assignedFederal }

// ExcessPay is the net cash flow plus assigned taxes.
func (b *Business) ExcessPay() *annual.Series {
	return annual.Sum(b.NetCashflow(), b.assignedFederal)
}
