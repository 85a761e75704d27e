package hearth

import "github.com/hearthlab/hearth/annual"

// Medicare eligibility and end-of-life care ages.
const (
	medicareAge  = 65
	endOfLifeAge = 85
)

// HealthCare models one individual's health-care costs across working,
// coast, and retirement years. Costs are emitted negative, like any other
// expense.
type HealthCare struct {
	individual *Individual

	EmployerPremium float64 // annual employer insurance cost, a pre-tax deduction
	OutOfPocket     float64 // annual out-of-pocket medical expenses
	ACAPremium      float64 // annual ACA premium when no employer insurance
	MedicarePremium float64 // annual Medicare premium
	EndOfLifeCost   float64 // annual expected cost for end-of-life care
}

// NewHealthCare creates a health-care cost model for an individual.
func NewHealthCare(ind *Individual) *HealthCare {
	return &HealthCare{individual: ind}
}

// HealthCosts returns the yearly health-care expenses over the scenario.
//
// Working years carry out-of-pocket costs only (the employer premium is a
// payroll deduction, not an expense). Coast years before Medicare
// eligibility add the ACA premium; from age 65 the Medicare premium applies.
// From age 85 the end-of-life cost is added on top.
func (h *HealthCare) HealthCosts() *annual.Series {
	costs := &annual.Series{}
	for year := range h.individual.ScenarioYears().Years() {
		age := year - h.individual.BirthYear()
		var cost float64
		switch {
		case age < h.individual.CoastAge():
			cost = h.OutOfPocket
		case age < medicareAge:
			cost = h.ACAPremium + h.OutOfPocket
		default:
			cost = h.MedicarePremium + h.OutOfPocket
		}
		if age >= endOfLifeAge {
			cost += h.EndOfLifeCost
		}
		costs.Append(year, -cost)
	}
	return costs
}

// PreTaxDeductions returns the employer insurance premium as a payroll
// deduction, applied during working years only.
func (h *HealthCare) PreTaxDeductions() *annual.Series {
	deductions := &annual.Series{}
	for year := range h.individual.ScenarioYears().Years() {
		if year < h.individual.CoastYear() {
			deductions.Append(year, h.EmployerPremium)
		} else {
			deductions.Append(year, 0)
		}
	}
	return deductions
}
