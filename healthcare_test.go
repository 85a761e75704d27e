package hearth

import "testing"

func TestHealthCosts(t *testing.T) {
	ind := testIndividual(t) // born 1985, plan starts 2024
	h := NewHealthCare(ind)
	h.EmployerPremium = 5000
	h.OutOfPocket = 1000
	h.ACAPremium = 12000
	h.MedicarePremium = 3000
	h.EndOfLifeCost = 50000
	ind.AssignHealthCare(h)

	costs := h.HealthCosts()
	tests := []struct {
		year int
		want float64
	}{
		{2024, -1000},  // working: out of pocket only
		{2034, -1000},  // last working year
		{2035, -13000}, // coasting before 65: ACA premium
		{2049, -13000}, // last pre-Medicare year
		{2050, -4000},  // Medicare from age 65
		{2069, -4000},
		{2070, -54000}, // end-of-life care from age 85
		{2075, -54000}, // death year
	}
	for _, tt := range tests {
		if got := costs.At(tt.year); got != tt.want {
			t.Errorf("cost in %d = %.0f, want %.0f", tt.year, got, tt.want)
		}
	}
}

func TestHealthPreTaxDeductions(t *testing.T) {
	ind := testIndividual(t)
	h := NewHealthCare(ind)
	h.EmployerPremium = 5000

	deductions := h.PreTaxDeductions()
	if got := deductions.At(2030); got != 5000 {
		t.Errorf("working-year deduction = %.0f, want 5000", got)
	}
	if got := deductions.At(2040); got != 0 {
		t.Errorf("coast-year deduction = %.0f, want 0", got)
	}
}
