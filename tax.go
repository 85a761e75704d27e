package hearth

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/hearthlab/hearth/annual"
)

// Payroll tax parameters (2024).
const (
	SocialSecurityWageBase  = 168600.0 // annual cap on wages subject to Social Security tax
	SocialSecurityRate      = 0.062
	MedicareRate            = 0.0145
	MedicareSurtaxRate      = 0.009
	MedicareSurtaxThreshold = 250000.0
)

// Flat combined state and local income tax rate.
const (
	stateIncomeTaxRate = 0.0425
	localIncomeTaxRate = 0.0045
	StateTaxRate       = stateIncomeTaxRate + localIncomeTaxRate
)

// bracket is one marginal federal tax bracket.
type bracket struct {
	lower, upper, rate float64
}

// 2024 federal brackets, married filing jointly.
var marriedJointBrackets = []bracket{
	{0, 23000, 0.10},
	{23000, 94300, 0.12},
	{94300, 201050, 0.22},
	{201050, 383900, 0.24},
	{383900, 487450, 0.32},
	{487450, 731200, 0.35},
	{731200, math.Inf(1), 0.37},
}

// MarriedJointTax computes the federal income tax owed on taxable income
// for a married couple filing jointly, rounded to cents.
func MarriedJointTax(income float64) float64 {
	var owed float64
	for _, b := range marriedJointBrackets {
		if income <= b.lower {
			break
		}
		owed += (math.Min(income, b.upper) - b.lower) * b.rate
	}
	return round2(owed)
}

// Social Security bend points (2024, monthly AIME thresholds).
const (
	bendPoint1 = 1174.0 // 90% replacement below
	bendPoint2 = 7078.0 // 32% replacement up to, 15% above
)

// claimFactors scales the primary insurance amount by claiming age.
var claimFactors = map[int]float64{
	62: 0.70,
	63: 0.75,
	64: 0.80,
	65: 0.866,
	66: 0.933,
	67: 1.0, // full PIA at full retirement age
	68: 1.08,
	69: 1.16,
	70: 1.24,
}

// SocialSecurityBenefit estimates the monthly Social Security benefit from
// an earnings series and the claiming age.
//
// The 35 highest annual earnings feed the Average Indexed Monthly Earnings;
// with fewer than 35 years available a warning is logged and all years are
// used. The bend-point formula yields the Primary Insurance Amount, scaled
// by the claim-age factor. A claim age outside [62, 70] is an error.
func SocialSecurityBenefit(earnings *annual.Series, claimAge int) (float64, error) {
	factor, ok := claimFactors[claimAge]
	if !ok {
		return 0, fmt.Errorf("claim age must be between 62 and 70, got %d", claimAge)
	}

	amounts := make([]float64, 0, earnings.Len())
	for _, v := range earnings.Values() {
		amounts = append(amounts, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(amounts)))
	if len(amounts) < 35 {
		log.Printf("social security estimate: only %d years of earnings supplied, want 35", len(amounts))
	} else {
		amounts = amounts[:35]
	}

	var sum float64
	for _, v := range amounts {
		sum += v
	}
	aime := sum / (35 * 12)

	var pia float64
	switch {
	case aime <= bendPoint1:
		pia = 0.9 * aime
	case aime <= bendPoint2:
		pia = 0.9*bendPoint1 + 0.32*(aime-bendPoint1)
	default:
		pia = 0.9*bendPoint1 + 0.32*(bendPoint2-bendPoint1) + 0.15*(aime-bendPoint2)
	}

	return round2(pia * factor), nil
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
