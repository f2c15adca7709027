package report

import (
	"encoding/json"
	"strings"
	"testing"

	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
)

func TestYearlyCSVPreservesColumnOrder(t *testing.T) {
	t.Parallel()

	records := []json.RawMessage{
		json.RawMessage(`{"year":2026,"total_taxes":8123.45,"rrsp_balance":240000,"province":"ON"}`),
		json.RawMessage(`{"year":2027,"total_taxes":7950.1,"rrsp_balance":226500,"province":"ON"}`),
	}

	out, err := YearlyCSV(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "year,total_taxes,rrsp_balance,province" {
		t.Fatalf("header order not preserved: %q", lines[0])
	}
	if lines[1] != "2026,8123.45,240000,ON" {
		t.Fatalf("row 1 = %q", lines[1])
	}
	if lines[2] != "2027,7950.1,226500,ON" {
		t.Fatalf("row 2 = %q", lines[2])
	}
}

func TestYearlyCSVEmptyInput(t *testing.T) {
	t.Parallel()

	out, err := YearlyCSV(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("empty input must yield empty string, got %q", out)
	}
}

func TestYearlyCSVQuotesDelimiters(t *testing.T) {
	t.Parallel()

	records := []json.RawMessage{
		json.RawMessage(`{"year":2026,"note":"pension, bridged"}`),
	}
	out, err := YearlyCSV(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"pension, bridged"`) {
		t.Fatalf("embedded delimiter not quoted: %q", out)
	}
}

func TestNarrativeIndividual(t *testing.T) {
	t.Parallel()

	h := contractx.Household{
		Person1: contractx.PersonProfile{Name: "User", RRSP: 500000, DeathAge: 92},
		Person2: contractx.PersonProfile{Name: "Spouse"},
	}

	got := Narrative(h, 4321.5, 92)
	for _, want := range []string{
		"$500,000.00",
		"(Individual: User)",
		"**$4,321.50 per month**",
		"until age 92.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("narrative missing %q: %s", want, got)
		}
	}
	if strings.Contains(got, "Includes:") {
		t.Fatalf("no features used, but narrative says otherwise: %s", got)
	}
}

func TestNarrativeCoupleWithFeatures(t *testing.T) {
	t.Parallel()

	h := contractx.Household{
		Person1: contractx.PersonProfile{
			Name:               "Alex",
			RRSP:               400000,
			LIRA:               100000,
			EnableRRSPMeltdown: true,
			Pension:            contractx.DefinedBenefitPension{Enabled: true, Income: 25000},
		},
		Person2: contractx.PersonProfile{Name: "Sam", TFSA: 300000},
		Couple:  true,
	}

	got := Narrative(h, 6500, 95)
	for _, want := range []string{
		"$800,000.00",
		"(Couple: Alex & Sam)",
		"DB Pension ($25,000/yr)",
		"LIRA",
		"RRSP Meltdown",
		"until age 95.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("narrative missing %q: %s", want, got)
		}
	}
}
