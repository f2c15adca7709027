package payload

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
)

func boolPtr(v bool) *bool { return &v }

func testHousehold(couple bool) contractx.Household {
	return contractx.Household{
		Person1: contractx.PersonProfile{
			Name: "User", CurrentAge: 60, RetirementAge: 65, DeathAge: 92,
			RRSP: 250000, TFSA: 100000, NonRegistered: 150000, CostBasis: 135000,
		},
		Person2: contractx.PersonProfile{
			Name: "Spouse", CurrentAge: 58, RetirementAge: 65, DeathAge: 92,
		},
		Couple: couple,
	}
}

func testScenario() contractx.Scenario {
	return contractx.Scenario{
		ExpectedReturns:        5.0,
		CPI:                    2.0,
		Province:               "ON",
		Allocation:             50,
		BaseTFSAAmount:         7000,
		SurvivorExpensePercent: 100,
	}
}

func TestOptionalSectionsAbsentWhenNotSupplied(t *testing.T) {
	t.Parallel()

	doc := Build(testHousehold(false), testScenario())
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	body := string(raw)
	if strings.Contains(body, "expense_phases") {
		t.Fatal("expense_phases must be absent when not supplied")
	}
	if strings.Contains(body, "additional_events") {
		t.Fatal("additional_events must be absent when not supplied")
	}
}

func TestOptionalSectionsPreserveOrder(t *testing.T) {
	t.Parallel()

	events := []contractx.Event{
		{Year: 2030, Type: "income", Amount: 20000, TaxTreatment: "employment"},
		{Year: 2028, Type: "expense", Amount: 50000, IsCPIIndexed: true, TaxTreatment: "non_taxable"},
	}
	phases := []contractx.ExpensePhase{
		{DurationYears: 10, ExpenseChangePct: -2},
		{DurationYears: 5, ExpenseChangePct: 1},
	}

	h := testHousehold(false)
	h.Person1.AdditionalEvents = &events
	s := testScenario()
	s.ExpensePhases = &phases

	raw, err := json.Marshal(Build(h, s))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Person1 struct {
			AdditionalEvents []contractx.Event `json:"additional_events"`
		} `json:"person1_ui"`
		Inputs struct {
			ExpensePhases []contractx.ExpensePhase `json:"expense_phases"`
		} `json:"inputs"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(decoded.Person1.AdditionalEvents) != 2 || decoded.Person1.AdditionalEvents[0].Year != 2030 {
		t.Fatalf("event order not preserved: %+v", decoded.Person1.AdditionalEvents)
	}
	if len(decoded.Inputs.ExpensePhases) != 2 || decoded.Inputs.ExpensePhases[0].DurationYears != 10 {
		t.Fatalf("phase order not preserved: %+v", decoded.Inputs.ExpensePhases)
	}
}

func TestIncomeSplitDefaults(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		explicit *bool
		couple   bool
		want     bool
	}{
		{name: "couple default on", couple: true, want: true},
		{name: "individual default off", couple: false, want: false},
		{name: "explicit off wins for couple", explicit: boolPtr(false), couple: true, want: false},
		{name: "explicit on wins for individual", explicit: boolPtr(true), couple: false, want: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := testScenario()
			s.IncomeSplit = tc.explicit
			doc := Build(testHousehold(tc.couple), s)
			if doc.Inputs.IncomeSplit != tc.want {
				t.Fatalf("income_split = %v, want %v", doc.Inputs.IncomeSplit, tc.want)
			}
			if doc.Inputs.Individual == tc.couple {
				t.Fatalf("individual = %v for couple = %v", doc.Inputs.Individual, tc.couple)
			}
		})
	}
}

func TestWithdrawalStrategyIsFixed(t *testing.T) {
	t.Parallel()

	doc := Build(testHousehold(true), testScenario())
	for _, s := range []StrategyWeights{doc.WithdrawalStrategy.Person1, doc.WithdrawalStrategy.Person2} {
		if len(s.Weights) != 1 || s.Weights[0].Type != "fallback" {
			t.Fatalf("unexpected strategy: %+v", s)
		}
		want := []string{"rrsp", "non_registered", "tfsa"}
		for i, acct := range want {
			if s.Weights[0].Order[i] != acct {
				t.Fatalf("withdrawal order = %v, want %v", s.Weights[0].Order, want)
			}
		}
	}
}

func TestProvinceOnPersonOneOnly(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Build(testHousehold(true), testScenario()))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["person1_ui"]["province"] != "ON" {
		t.Fatalf("person1 province missing: %v", decoded["person1_ui"]["province"])
	}
	if _, ok := decoded["person2_ui"]["province"]; ok {
		t.Fatal("person2 block must not carry province")
	}
}

// The monte-carlo endpoint expects fractional return and inflation while
// every other endpoint takes percentages. This pins the wire quirk; if the
// backend contract ever changes, this test is the tripwire.
func TestMonteCarloConvertsRatesToFractions(t *testing.T) {
	t.Parallel()

	doc := BuildMonteCarlo(testHousehold(false), testScenario(), contractx.MonteCarloParams{
		TargetMonthlySpend: 5000,
		NumTrials:          1000,
		ReturnVolatility:   11.0,
	})

	if math.Abs(doc.Inputs.ExpectedReturns-0.05) > 1e-12 {
		t.Fatalf("expected_returns = %f, want 0.05", doc.Inputs.ExpectedReturns)
	}
	if math.Abs(doc.Inputs.CPI-0.02) > 1e-12 {
		t.Fatalf("cpi = %f, want 0.02", doc.Inputs.CPI)
	}
	// Volatility stays in the units supplied.
	if doc.ReturnVolatility != 11.0 {
		t.Fatalf("return volatility converted: %f", doc.ReturnVolatility)
	}

	// The synchronous document keeps percentages.
	sync := Build(testHousehold(false), testScenario())
	if sync.Inputs.ExpectedReturns != 5.0 || sync.Inputs.CPI != 2.0 {
		t.Fatalf("sync document units changed: returns=%f cpi=%f",
			sync.Inputs.ExpectedReturns, sync.Inputs.CPI)
	}
}
