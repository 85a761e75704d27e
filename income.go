package hearth

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/hearthlab/hearth/annual"
)

// JointContributionName is the reserved expense stream name carrying an
// individual's share of the household's joint expenses.
const JointContributionName = "Joint Contribution"

// defaultIncomeInflation is the default yearly growth factor for projected
// wages.
const defaultIncomeInflation = 1.03

// errGrossIncomeUnset is returned by any wage computation requested before
// past gross income has been supplied.
var errGrossIncomeUnset = errors.New("past gross income must be set before wage computations")

// PersonalIncome represents the personal income of an individual: salaries,
// manual adjustments for future earnings, and inflation-based projections.
//
// Gross income for a year is sourced from exactly one of three regimes:
// user-supplied history, inflation projection through the coast year, or a
// balancing figure during coast years. During coast years income is defined
// to exactly cover personal expenses, health-care costs, and the assigned
// joint contribution; it is solved for, not forecast.
type PersonalIncome struct {
	*Stream // the feed-backed "Paychecks" stream

	individual *Individual

	pastGross       *annual.Series // user-supplied, immutable once validated
	manual          *annual.Series // manual future-income overrides
	contributions   []*PreTaxContribution
	jointRequired   *annual.Series // assigned by the household
	assignedFederal *annual.Series // assigned by the household

	grossToCoast   *annual.Series
	grossInCoast   *annual.Series
	socialSecurity *annual.Series
}

func newPersonalIncome(ind *Individual) *PersonalIncome {
	return &PersonalIncome{
		Stream:     NewStream("Paychecks", ind.feed, ByCSPLabel(LabelIncome), DefaultEndYear, defaultIncomeInflation, false),
		individual: ind,
		manual:     &annual.Series{},
	}
}

// SetPastGrossIncome supplies the user's historical gross income, keyed by
// year. It must be non-empty and end before the coast year, so history never
// overlaps the solved coast income; the series is copied.
func (p *PersonalIncome) SetPastGrossIncome(s *annual.Series) error {
	if s == nil || s.Len() == 0 {
		return errors.New("past gross income must be a non-empty year-indexed series")
	}
	if latest, _ := s.Latest(); latest >= p.individual.CoastYear() {
		return fmt.Errorf("past gross income reaches %d, inside the coast years starting %d", latest, p.individual.CoastYear())
	}
	p.pastGross = s.Clone()
	p.grossToCoast = nil
	p.socialSecurity = nil
	return nil
}

// AddManualIncomeEntry sets expected gross income for a specific future
// year, overriding the inflation projection.
func (p *PersonalIncome) AddManualIncomeEntry(year int, amount float64) {
	p.manual.Append(year, amount)
	p.grossToCoast = nil
}

// AddPreTaxContribution registers a payroll deduction (401k, HSA, ...).
func (p *PersonalIncome) AddPreTaxContribution(c *PreTaxContribution) {
	p.contributions = append(p.contributions, c)
}

// SetJointContributionRequired is called by the household to assign this
// member's share of the joint expenses.
func (p *PersonalIncome) SetJointContributionRequired(s *annual.Series) {
	p.jointRequired = s
	p.grossInCoast = nil
}

// SetFederalTaxes is called by the household to assign this member's share
// of the federal tax liability.
func (p *PersonalIncome) SetFederalTaxes(s *annual.Series) { p.assignedFederal = s }

// AssignedTaxes returns the federal taxes assigned by the household, or nil.
func (p *PersonalIncome) AssignedTaxes() *annual.Series { return p.assignedFederal }

// PersonalExpenses returns the individual's total expenses excluding the
// joint contribution (and health care, which is modelled separately).
func (p *PersonalIncome) PersonalExpenses() *annual.Series {
	total := p.individual.TotalExpenses()
	if joint := p.individual.Expense(JointContributionName); joint != nil {
		total = total.Add(joint.StreamSeries().Neg())
	}
	return total
}

// GrossIncomeToCoast projects income from the last historical year through
// the end of the working phase, honoring manual overrides.
func (p *PersonalIncome) GrossIncomeToCoast() (*annual.Series, error) {
	if p.pastGross == nil {
		return nil, errGrossIncomeUnset
	}
	if p.grossToCoast == nil {
		working := p.individual.WorkingYears()
		projected := annual.Project(p.pastGross, p.inflationFactor, p.individual.DeathYear(), p.manual)
		p.grossToCoast = projected.Slice(working.First, working.Last)
	}
	return p.grossToCoast, nil
}

// GrossIncomeInCoast defines coast-phase income as the amount that exactly
// covers personal expenses, health-care costs, and the assigned joint
// contribution. This is a balancing figure, not an earnings forecast.
func (p *PersonalIncome) GrossIncomeInCoast() *annual.Series {
	if p.grossInCoast == nil {
		joint := p.jointRequired
		if joint == nil {
			log.Printf("joint contribution not set for %q, coast income will equal personal expenses", p.individual.Name())
			joint = &annual.Series{}
		}
		required := annual.Sum(p.PersonalExpenses(), p.individual.healthCosts(), joint)
		coast := p.individual.CoastYears()
		p.grossInCoast = required.Slice(coast.First, coast.Last).Neg()
	}
	return p.grossInCoast
}

// GrossIncome concatenates the three income regimes: historical, projected
// to coast, and the coast-phase balancing figure. The regimes never overlap
// by year.
func (p *PersonalIncome) GrossIncome() (*annual.Series, error) {
	toCoast, err := p.GrossIncomeToCoast()
	if err != nil {
		return nil, err
	}
	// Keep the regimes disjoint even if the coast age moved after the
	// history was set.
	first, _ := p.pastGross.First()
	past := p.pastGross.Slice(first, p.individual.CoastYear()-1)
	return annual.Sum(past, toCoast, p.GrossIncomeInCoast()), nil
}

// PreTaxDeductions sums all pre-tax contributions plus the employer health
// premium, per gross-income year.
func (p *PersonalIncome) PreTaxDeductions() (*annual.Series, error) {
	gross, err := p.GrossIncome()
	if err != nil {
		return nil, err
	}
	total := &annual.Series{}
	for _, c := range p.contributions {
		total = total.Add(c.Contribution(gross))
	}
	var health *annual.Series
	if p.individual.healthCare != nil {
		health = p.individual.healthCare.PreTaxDeductions()
	}
	r := &annual.Series{}
	for y := range gross.Values() {
		d := total.At(y)
		if health != nil {
			d += health.At(y)
		}
		r.Append(y, d)
	}
	return r, nil
}

// HSADeductions sums HSA contributions only, per gross-income year. FICA
// wages deduct HSA contributions but not 401k-style deferrals.
func (p *PersonalIncome) HSADeductions() (*annual.Series, error) {
	gross, err := p.GrossIncome()
	if err != nil {
		return nil, err
	}
	total := &annual.Series{}
	for _, c := range p.contributions {
		if c.Name == "HSA" {
			total = total.Add(c.Contribution(gross))
		}
	}
	r := &annual.Series{}
	for y := range gross.Values() {
		r.Append(y, total.At(y))
	}
	return r, nil
}

// FederalWages returns wages subject to federal income tax: gross income
// less all pre-tax deductions.
func (p *PersonalIncome) FederalWages() (*annual.Series, error) {
	gross, err := p.GrossIncome()
	if err != nil {
		return nil, err
	}
	deductions, err := p.PreTaxDeductions()
	if err != nil {
		return nil, err
	}
	return gross.Add(deductions.Neg()), nil
}

// FICAWages returns wages subject to Social Security and Medicare taxes:
// gross income less HSA deductions only.
func (p *PersonalIncome) FICAWages() (*annual.Series, error) {
	gross, err := p.GrossIncome()
	if err != nil {
		return nil, err
	}
	hsa, err := p.HSADeductions()
	if err != nil {
		return nil, err
	}
	return gross.Add(hsa.Neg()), nil
}

// MedicareWages equals FICA wages.
func (p *PersonalIncome) MedicareWages() (*annual.Series, error) { return p.FICAWages() }

// StateWages returns wages subject to state income tax. The state is assumed
// to conform to the federal deduction set.
func (p *PersonalIncome) StateWages() (*annual.Series, error) { return p.FederalWages() }

// NetPay computes pay after assigned federal taxes, Social Security,
// Medicare (including the 0.9% surtax over the threshold), and state taxes.
func (p *PersonalIncome) NetPay() (*annual.Series, error) {
	federalWages, err := p.FederalWages()
	if err != nil {
		return nil, err
	}
	ficaWages, err := p.FICAWages()
	if err != nil {
		return nil, err
	}
	stateWages, err := p.StateWages()
	if err != nil {
		return nil, err
	}
	assigned := p.assignedFederal
	if assigned == nil {
		log.Printf("no federal taxes assigned to %q, net pay excludes federal tax", p.individual.Name())
		assigned = &annual.Series{}
	}

	net := &annual.Series{}
	for y, fw := range federalWages.Values() {
		fica := ficaWages.At(y)
		socialSecurity := math.Min(fica, SocialSecurityWageBase) * SocialSecurityRate
		medicare := fica*MedicareRate + math.Max(0, fica-MedicareSurtaxThreshold)*MedicareSurtaxRate
		state := stateWages.At(y) * StateTaxRate
		net.Append(y, fw-(assigned.At(y)+socialSecurity+medicare+state))
	}
	return net, nil
}

// ExcessPay returns the amount available for contributions: net pay less
// personal expenses, health-care costs, and the joint contribution (all
// negative series).
func (p *PersonalIncome) ExcessPay(jointContribution *annual.Series) (*annual.Series, error) {
	net, err := p.NetPay()
	if err != nil {
		return nil, err
	}
	return annual.Sum(net, p.PersonalExpenses(), p.individual.healthCosts(), jointContribution), nil
}

// SocialSecurityBenefits estimates the annual Social Security benefit from
// the claim year through the death year. Earnings feeding the estimate are
// gross income less HSA deductions.
func (p *PersonalIncome) SocialSecurityBenefits() (*annual.Series, error) {
	if p.socialSecurity == nil {
		earnings, err := p.FICAWages()
		if err != nil {
			return nil, err
		}
		monthly, err := SocialSecurityBenefit(earnings, p.individual.ClaimAge())
		if err != nil {
			return nil, err
		}
		p.socialSecurity = annual.Constant(monthly*12, p.individual.ClaimYear(), p.individual.DeathYear())
	}
	return p.socialSecurity, nil
}
