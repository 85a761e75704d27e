package hearth

import (
	"log"
	"math"

	"github.com/hearthlab/hearth/annual"
)

// Joint-contribution solver parameters. The initial estimate assumes taxes
// consume roughly 30% of gross income; the fixed-point iteration is damped
// by half the residual to avoid oscillation.
const (
	solverMaxIterations = 1000
	solverTolerance     = 1.0 // currency units
	solverInitialShare  = 0.70
	solverDamping       = 0.5
)

// Convergence reports the outcome of the joint-contribution solver.
type Convergence struct {
	Converged   bool
	Iterations  int     // highest iteration count used by any year
	MaxResidual float64 // largest absolute residual after the final iteration
}

// TaxBreakdown holds the household tax liability by component, per year.
type TaxBreakdown struct {
	Federal        *annual.Series
	SocialSecurity *annual.Series
	Medicare       *annual.Series
	State          *annual.Series
	Total          *annual.Series
}

// Household aggregates member individuals, shared businesses, and joint
// income/expense streams. It solves for the joint contribution each member
// owes and computes and allocates the combined tax liability.
//
// The derived series are lazily computed and cached; adding a business
// invalidates them.
type Household struct {
	FinancialEntity

	members       []*Individual
	businessOrder []string
	businesses    map[string]*Business

	jointRequired *annual.Series
	convergence   Convergence
	taxes         *TaxBreakdown
	allocated     map[string]*annual.Series
}

// NewHousehold creates a household from its members.
func NewHousehold(name string, members []*Individual) *Household {
	return &Household{
		FinancialEntity: NewFinancialEntity(name),
		members:         members,
		businesses:      map[string]*Business{},
	}
}

// Members returns the household members.
func (h *Household) Members() []*Individual { return h.members }

// Business returns the business with that name, or nil.
func (h *Household) Business(name string) *Business { return h.businesses[name] }

// AddBusiness registers a shared household business. Re-adding a name
// overwrites the previous business with a logged warning. Cached tax and
// contribution series are invalidated.
func (h *Household) AddBusiness(b *Business) {
	if _, ok := h.businesses[b.Name()]; ok {
		log.Printf("business %q already exists and will be overwritten", b.Name())
	} else {
		h.businessOrder = append(h.businessOrder, b.Name())
	}
	h.businesses[b.Name()] = b
	h.jointRequired = nil
	h.taxes = nil
	h.allocated = nil
}

// EndYear is the latest death year across members.
func (h *Household) EndYear() int {
	end := 0
	for _, m := range h.members {
		if y := m.DeathYear(); y > end {
			end = y
		}
	}
	return end
}

// CombinedExpenses sums every expense the household carries: members'
// personal expenses, health-care costs, the household's own joint streams,
// and business expenses.
func (h *Household) CombinedExpenses() *annual.Series {
	total := h.TotalExpenses()
	for _, m := range h.members {
		total = annual.Sum(total, m.PersonalIncome().PersonalExpenses(), m.healthCosts())
	}
	for _, name := range h.businessOrder {
		total = total.Add(h.businesses[name].TotalExpenses())
	}
	return total
}

// totalTaxEstimate approximates the total tax on a gross income: federal
// brackets plus flat FICA and state rates. Used only by the solver.
func totalTaxEstimate(income float64) float64 {
	return MarriedJointTax(income) + income*(SocialSecurityRate+MedicareRate) + income*StateTaxRate
}

// JointContributionRequired solves for the gross income needed to cover the
// combined expenses and the taxes on that income, then nets out business
// income and the personal and health-care expenses already counted
// elsewhere. The result is the contribution required specifically to cover
// the joint shortfall (signed negative).
//
// The solver is a damped fixed-point iteration with a bounded iteration
// count; the Convergence result reports whether tolerance was reached.
func (h *Household) JointContributionRequired() (*annual.Series, Convergence) {
	if h.jointRequired != nil {
		return h.jointRequired, h.convergence
	}

	expenses := h.CombinedExpenses()
	incomeRequired := &annual.Series{}
	conv := Convergence{Converged: true}
	for year, e := range expenses.Values() {
		target := -e // expenses are negative
		income := target / solverInitialShare
		var residual float64
		iterations := solverMaxIterations
		for i := 1; i <= solverMaxIterations; i++ {
			net := income - totalTaxEstimate(income)
			residual = target - net
			if math.Abs(residual) < solverTolerance {
				iterations = i
				break
			}
			income += residual * solverDamping
		}
		if math.Abs(residual) >= solverTolerance {
			conv.Converged = false
		}
		if iterations > conv.Iterations {
			conv.Iterations = iterations
		}
		if math.Abs(residual) > conv.MaxResidual {
			conv.MaxResidual = math.Abs(residual)
		}
		incomeRequired.Append(year, income)
	}
	if !conv.Converged {
		log.Printf("joint contribution solver did not converge within %d iterations (max residual %.2f)", solverMaxIterations, conv.MaxResidual)
	}

	// Net out income and expenses already accounted for per entity.
	businessIncome := &annual.Series{}
	for _, name := range h.businessOrder {
		businessIncome = businessIncome.Add(h.businesses[name].TotalIncome())
	}
	personal := &annual.Series{}
	health := &annual.Series{}
	for _, m := range h.members {
		personal = personal.Add(m.PersonalIncome().PersonalExpenses())
		health = health.Add(m.healthCosts())
	}

	// joint = -(incomeRequired - businessIncome + personal + health)
	h.jointRequired = annual.Sum(incomeRequired.Neg(), businessIncome, personal.Neg(), health.Neg())
	h.convergence = conv
	return h.jointRequired, h.convergence
}

// AssignJointContributions splits the required joint contribution evenly
// across members and assigns each share.
func (h *Household) AssignJointContributions() {
	joint, _ := h.JointContributionRequired()
	share := joint.Scale(1 / float64(len(h.members)))
	for _, m := range h.members {
		m.PersonalIncome().SetJointContributionRequired(share)
	}
}

// CombinedAdjustedGrossIncome returns combined household income: member
// federal wages plus business net revenue.
func (h *Household) CombinedAdjustedGrossIncome() (*annual.Series, error) {
	total := &annual.Series{}
	for _, m := range h.members {
		wages, err := m.PersonalIncome().FederalWages()
		if err != nil {
			return nil, err
		}
		total = total.Add(wages)
	}
	for _, name := range h.businessOrder {
		total = total.Add(h.businesses[name].NetRevenue())
	}
	return total, nil
}

// ComputeTaxes computes the household tax liability per year: federal
// brackets on pooled taxable income (member wages plus business revenue),
// Social Security per individual capped at the wage base, Medicare on pooled
// wages with the surtax above the threshold, and a flat state rate.
func (h *Household) ComputeTaxes() (*TaxBreakdown, error) {
	if h.taxes != nil {
		return h.taxes, nil
	}

	pooledFederal := &annual.Series{}
	pooledFICA := &annual.Series{}
	pooledState := &annual.Series{}
	socialSecurity := &annual.Series{}
	for _, m := range h.members {
		p := m.PersonalIncome()
		federal, err := p.FederalWages()
		if err != nil {
			return nil, err
		}
		fica, err := p.FICAWages()
		if err != nil {
			return nil, err
		}
		state, err := p.StateWages()
		if err != nil {
			return nil, err
		}
		pooledFederal = pooledFederal.Add(federal)
		pooledFICA = pooledFICA.Add(fica)
		pooledState = pooledState.Add(state)
		// Social Security is capped per individual, not pooled.
		socialSecurity = socialSecurity.Add(fica.Map(func(_ int, wage float64) float64 {
			return math.Min(wage, SocialSecurityWageBase) * SocialSecurityRate
		}))
	}

	businessIncome := &annual.Series{}
	for _, name := range h.businessOrder {
		businessIncome = businessIncome.Add(h.businesses[name].NetRevenue())
	}

	taxableIncome := pooledFederal.Add(businessIncome)
	federal := taxableIncome.Map(func(_ int, income float64) float64 {
		return MarriedJointTax(income)
	})
	medicare := pooledFICA.Map(func(_ int, wage float64) float64 {
		return wage*MedicareRate + math.Max(0, wage-MedicareSurtaxThreshold)*MedicareSurtaxRate
	})
	state := pooledState.Scale(StateTaxRate)

	h.taxes = &TaxBreakdown{
		Federal:        federal,
		SocialSecurity: socialSecurity,
		Medicare:       medicare,
		State:          state,
		Total:          annual.Sum(federal, socialSecurity, medicare, state),
	}
	return h.taxes, nil
}

// AllocateTaxes splits the federal tax liability proportionally by each
// entity's share of total household income. Years with zero total income
// allocate zero to every entity.
func (h *Household) AllocateTaxes() (map[string]*annual.Series, error) {
	if h.allocated != nil {
		return h.allocated, nil
	}
	taxes, err := h.ComputeTaxes()
	if err != nil {
		return nil, err
	}

	incomes := map[string]*annual.Series{}
	for _, m := range h.members {
		wages, err := m.PersonalIncome().FederalWages()
		if err != nil {
			return nil, err
		}
		incomes[m.Name()] = wages
	}
	for _, name := range h.businessOrder {
		incomes[name] = h.businesses[name].NetRevenue()
	}

	totals := &annual.Series{}
	for _, income := range incomes {
		totals = totals.Add(income)
	}

	allocated := make(map[string]*annual.Series, len(incomes))
	for entity, income := range incomes {
		share := &annual.Series{}
		for year, total := range totals.Values() {
			if total == 0 {
				share.Append(year, 0)
				continue
			}
			share.Append(year, income.At(year)/total*taxes.Federal.At(year))
		}
		allocated[entity] = share
	}
	h.allocated = allocated
	return allocated, nil
}

// AssignAllocatedTaxes pushes each entity's federal tax share onto it.
// Members receive their share as a positive liability subtracted from net
// pay; businesses store theirs signed negative.
func (h *Household) AssignAllocatedTaxes() error {
	allocated, err := h.AllocateTaxes()
	if err != nil {
		return err
	}
	for _, m := range h.members {
		m.PersonalIncome().SetFederalTaxes(allocated[m.Name()])
	}
	for _, name := range h.businessOrder {
		h.businesses[name].SetFederalTaxes(allocated[name].Neg())
	}
	return nil
}

// CombinedNetCashflow is household income less taxes plus expenses
// (expenses are negative), available for contributions and withdrawals.
func (h *Household) CombinedNetCashflow() (*annual.Series, error) {
	income, err := h.CombinedAdjustedGrossIncome()
	if err != nil {
		return nil, err
	}
	taxes, err := h.ComputeTaxes()
	if err != nil {
		return nil, err
	}
	return annual.Sum(income, taxes.Total.Neg(), h.CombinedExpenses()), nil
}
