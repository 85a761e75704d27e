package hearth

import (
	"fmt"
	"iter"

	"github.com/hearthlab/hearth/annual"
)

// Default life-stage ages for a new individual.
const (
	defaultCoastAge      = 50
	defaultRetirementAge = 67
	defaultDeathAge      = 90
	defaultClaimAge      = 70
)

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	First, Last int
}

// Years iterates the range in ascending order.
func (r YearRange) Years() iter.Seq[int] {
	return func(yield func(int) bool) {
		for y := r.First; y <= r.Last; y++ {
			if !yield(y) {
				return
			}
		}
	}
}

// Contains reports whether the range includes 'year'.
func (r YearRange) Contains(year int) bool { return year >= r.First && year <= r.Last }

// Len returns the number of years in the range.
func (r YearRange) Len() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Individual represents one household member with incomes, expenses, and
// life-stage planning attributes. The plan is split in three phases: working
// (until the coast year), coasting (until the retirement year), and
// retirement (until the death year).
type Individual struct {
	FinancialEntity

	birthYear int
	startYear int // first projected plan year
	feed      *Feed

	coastAge      int
	retirementAge int
	deathAge      int
	claimAge      int

	personalIncome *PersonalIncome
	healthCare     *HealthCare
	businesses     []*Business

	// cached derived ranges, invalidated by the age setters
	workingYears    *YearRange
	coastYears      *YearRange
	retirementYears *YearRange
	scenarioYears   *YearRange
}

// NewIndividual creates an individual with default life-stage ages
// (coast 50, retirement 67, death 90, claim 70). 'startYear' is the first
// projected plan year; history before it comes from the feed.
func NewIndividual(name string, birthYear, startYear int, feed *Feed) *Individual {
	ind := &Individual{
		FinancialEntity: NewFinancialEntity(name),
		birthYear:       birthYear,
		startYear:       startYear,
		feed:            feed,
		coastAge:        defaultCoastAge,
		retirementAge:   defaultRetirementAge,
		deathAge:        defaultDeathAge,
		claimAge:        defaultClaimAge,
	}
	ind.personalIncome = newPersonalIncome(ind)
	ind.AddIncome(ind.personalIncome.Stream)
	return ind
}

func (ind *Individual) BirthYear() int { return ind.birthYear }
func (ind *Individual) StartYear() int { return ind.startYear }

func (ind *Individual) CoastAge() int      { return ind.coastAge }
func (ind *Individual) RetirementAge() int { return ind.retirementAge }
func (ind *Individual) DeathAge() int      { return ind.deathAge }
func (ind *Individual) ClaimAge() int      { return ind.claimAge }

// SetCoastAge updates the coast age. It must not exceed the retirement age.
func (ind *Individual) SetCoastAge(age int) error {
	if age > ind.retirementAge {
		return fmt.Errorf("coast age %d must be less than or equal to retirement age %d", age, ind.retirementAge)
	}
	ind.coastAge = age
	ind.workingYears = nil
	ind.coastYears = nil
	ind.scenarioYears = nil
	return nil
}

// SetRetirementAge updates the retirement age. It must not be below the
// coast age.
func (ind *Individual) SetRetirementAge(age int) error {
	if age < ind.coastAge {
		return fmt.Errorf("retirement age %d must be greater than or equal to coast age %d", age, ind.coastAge)
	}
	ind.retirementAge = age
	ind.coastYears = nil
	ind.retirementYears = nil
	return nil
}

// SetDeathAge updates the expected age at death.
func (ind *Individual) SetDeathAge(age int) {
	ind.deathAge = age
	ind.retirementYears = nil
	ind.scenarioYears = nil
}

// SetClaimAge updates the Social Security claiming age, in [62, 70].
func (ind *Individual) SetClaimAge(age int) error {
	if age < 62 || age > 70 {
		return fmt.Errorf("claim age must be between 62 and 70, got %d", age)
	}
	ind.claimAge = age
	return nil
}

func (ind *Individual) CoastYear() int      { return ind.birthYear + ind.coastAge }
func (ind *Individual) RetirementYear() int { return ind.birthYear + ind.retirementAge }
func (ind *Individual) ClaimYear() int      { return ind.birthYear + ind.claimAge }
func (ind *Individual) DeathYear() int      { return ind.birthYear + ind.deathAge }

// WorkingYears covers the plan start until the year before coasting begins.
func (ind *Individual) WorkingYears() YearRange {
	if ind.workingYears == nil {
		ind.workingYears = &YearRange{First: ind.startYear, Last: ind.CoastYear() - 1}
	}
	return *ind.workingYears
}

// CoastYears covers the coast year until the year before retirement.
func (ind *Individual) CoastYears() YearRange {
	if ind.coastYears == nil {
		ind.coastYears = &YearRange{First: ind.CoastYear(), Last: ind.RetirementYear() - 1}
	}
	return *ind.coastYears
}

// RetirementYears covers the retirement year through the death year.
func (ind *Individual) RetirementYears() YearRange {
	if ind.retirementYears == nil {
		ind.retirementYears = &YearRange{First: ind.RetirementYear(), Last: ind.DeathYear()}
	}
	return *ind.retirementYears
}

// ScenarioYears covers the full plan, start through death.
func (ind *Individual) ScenarioYears() YearRange {
	if ind.scenarioYears == nil {
		ind.scenarioYears = &YearRange{First: ind.startYear, Last: ind.DeathYear()}
	}
	return *ind.scenarioYears
}

// PersonalIncome returns the individual's personal income entity.
func (ind *Individual) PersonalIncome() *PersonalIncome { return ind.personalIncome }

// HealthCare returns the assigned health-care entity, or nil.
func (ind *Individual) HealthCare() *HealthCare { return ind.healthCare }

// AssignHealthCare attaches a health-care cost model to the individual.
func (ind *Individual) AssignHealthCare(h *HealthCare) { ind.healthCare = h }

// healthCosts returns the health-care expense series, or an empty series
// when no health-care entity is assigned.
func (ind *Individual) healthCosts() *annual.Series {
	if ind.healthCare == nil {
		return &annual.Series{}
	}
	return ind.healthCare.HealthCosts()
}

// AddBusiness registers an additional business income source.
func (ind *Individual) AddBusiness(b *Business) {
	ind.businesses = append(ind.businesses, b)
}

// BusinessIncome sums this individual's share of each registered business's
// income distribution.
func (ind *Individual) BusinessIncome() *annual.Series {
	total := &annual.Series{}
	for _, b := range ind.businesses {
		total = total.Add(b.IncomeDistribution()[ind.Name()])
	}
	return total
}
