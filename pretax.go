package hearth

import (
	"math"

	"github.com/hearthlab/hearth/annual"
)

// PreTaxContribution is a rate-based payroll deduction such as a 401(k) or
// HSA, with year-specific maximum contribution limits and optional start and
// end years. It is a stateless transformer over a gross-income series.
type PreTaxContribution struct {
	Name            string
	Rate            float64
	MaxContribution *annual.Series // year -> contribution cap
	StartYear       int            // zero means unbounded
	EndYear         int            // zero means unbounded
	Matched         bool           // employer matched
}

// Contribution computes the yearly pre-tax contribution from gross income.
//
// Each year's contribution is income times rate, clipped to that year's cap.
// Years before the cap series starts are excluded; years beyond it reuse the
// last known cap rather than zero.
func (c *PreTaxContribution) Contribution(grossIncome *annual.Series) *annual.Series {
	r := &annual.Series{}
	firstCapYear, _ := c.MaxContribution.First()
	lastCapYear, lastCap := c.MaxContribution.Latest()
	if c.MaxContribution.Len() == 0 {
		return r
	}
	for year, income := range grossIncome.Values() {
		if year < firstCapYear {
			continue
		}
		if c.StartYear != 0 && year < c.StartYear {
			continue
		}
		if c.EndYear != 0 && year > c.EndYear {
			continue
		}
		cap := lastCap
		if year <= lastCapYear {
			v, ok := c.MaxContribution.Get(year)
			if !ok {
				continue
			}
			cap = v
		}
		r.Append(year, math.Min(income*c.Rate, cap))
	}
	return r
}
