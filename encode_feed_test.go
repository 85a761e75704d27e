package hearth

import (
	"strings"
	"testing"
)

func TestDecodeRecords(t *testing.T) {
	jsonl := `
{"date":"2024-03-15","amount":5000,"category":"Paycheck","account":"checking"}

{"date":"2024-06-15","amount":-1000.50,"category":"Rent","account":"checking","hidden":true}
`
	records, err := DecodeRecords("test.jsonl", strings.NewReader(jsonl))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Date.Year() != 2024 || records[0].Category != "Paycheck" {
		t.Errorf("first record = %+v", records[0])
	}
	if !records[1].Hidden {
		t.Error("hidden flag lost")
	}
	if records[1].Amount.InexactFloat64() != -1000.50 {
		t.Errorf("amount = %s", records[1].Amount)
	}
}

func TestDecodeRecordsBadDate(t *testing.T) {
	jsonl := `{"date":"15/03/2024","amount":1,"category":"x","account":"y"}`
	if _, err := DecodeRecords("test.jsonl", strings.NewReader(jsonl)); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}

func TestDecodePlanScenario(t *testing.T) {
	plan := `{
		"first_year": 2025,
		"last_year": 2027,
		"start_age": 65,
		"expenses": {"2025": -2000, "2026": -2000, "2027": -2000},
		"accounts": [
			{
				"name": "brokerage",
				"type": "taxable",
				"holdings": [
					{"symbol": "FUND", "shares": 10000, "cost_basis": 6000, "avg_return": 0, "price": 1}
				]
			}
		]
	}`
	p, err := DecodePlan("plan.json", strings.NewReader(plan))
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.Scenario()
	if err != nil {
		t.Fatal(err)
	}
	records, err := s.Simulate()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d years, want 3", len(records))
	}
	if records[0].TotalWithdrawn != 2000 || records[0].CapitalGains != 800 {
		t.Errorf("first year = %+v", records[0])
	}
}

func TestDecodePlanBadYears(t *testing.T) {
	plan := `{"first_year": 2027, "last_year": 2025, "accounts": []}`
	if _, err := DecodePlan("plan.json", strings.NewReader(plan)); err == nil {
		t.Fatal("expected an error for a reversed year range")
	}
}
