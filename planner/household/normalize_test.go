package household

import (
	"math"
	"testing"

	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestLumpSumSplit(t *testing.T) {
	t.Parallel()

	h := Normalize(Input{
		Primary: contractx.PersonInput{
			CurrentAge:    60,
			RetirementAge: 65,
			TotalSavings:  500000,
		},
	})

	p1 := h.Person1
	if !almostEqual(p1.RRSP, 250000) || !almostEqual(p1.TFSA, 100000) || !almostEqual(p1.NonRegistered, 150000) {
		t.Fatalf("unexpected split: rrsp=%f tfsa=%f nonreg=%f", p1.RRSP, p1.TFSA, p1.NonRegistered)
	}
	if !almostEqual(p1.RRSP+p1.TFSA+p1.NonRegistered, 500000) {
		t.Fatalf("split does not sum to total: %f", p1.RRSP+p1.TFSA+p1.NonRegistered)
	}
}

func TestItemizedPassThroughIgnoresTotal(t *testing.T) {
	t.Parallel()

	h := Normalize(Input{
		Primary: contractx.PersonInput{
			CurrentAge:    60,
			RetirementAge: 65,
			TotalSavings:  999999,
			RRSP:          500000,
		},
	})

	p1 := h.Person1
	if !almostEqual(p1.RRSP, 500000) {
		t.Fatalf("rrsp changed: %f", p1.RRSP)
	}
	if p1.TFSA != 0 || p1.NonRegistered != 0 {
		t.Fatalf("itemized zeros must pass through: tfsa=%f nonreg=%f", p1.TFSA, p1.NonRegistered)
	}
	if p1.CostBasis != 0 {
		t.Fatalf("cost basis must be 0 with no non-registered balance, got %f", p1.CostBasis)
	}
}

func TestCoupleModeRequiresSpouseAge(t *testing.T) {
	t.Parallel()

	// Spouse savings alone must not trigger couple mode.
	h := Normalize(Input{
		Primary: contractx.PersonInput{CurrentAge: 60, RetirementAge: 65},
		Spouse: contractx.PersonInput{
			TotalSavings:  300000,
			BaseCPPAmount: 17196,
			BaseOASAmount: 8876,
		},
	})
	if h.Couple {
		t.Fatal("couple mode without spouse age")
	}
	if h.Person2.BaseCPPAmount != 0 || h.Person2.BaseOASAmount != 0 {
		t.Fatalf("spouse benefits must be zeroed in individual mode: cpp=%f oas=%f",
			h.Person2.BaseCPPAmount, h.Person2.BaseOASAmount)
	}
	if h.Person2.CurrentAge != 60 {
		t.Fatalf("person 2 age must mirror primary in individual mode, got %d", h.Person2.CurrentAge)
	}

	h = Normalize(Input{
		Primary:   contractx.PersonInput{CurrentAge: 60, RetirementAge: 65},
		Spouse:    contractx.PersonInput{BaseCPPAmount: 12000, BaseOASAmount: 8876},
		SpouseAge: intPtr(58),
	})
	if !h.Couple {
		t.Fatal("spouse age supplied but not couple mode")
	}
	if h.Person2.CurrentAge != 58 {
		t.Fatalf("unexpected spouse age: %d", h.Person2.CurrentAge)
	}
	if h.Person2.BaseCPPAmount != 12000 || h.Person2.BaseOASAmount != 8876 {
		t.Fatal("spouse benefits must survive in couple mode")
	}
}

func TestSpouseRetirementDefaultsToPrimary(t *testing.T) {
	t.Parallel()

	h := Normalize(Input{
		Primary:   contractx.PersonInput{CurrentAge: 60, RetirementAge: 65},
		SpouseAge: intPtr(58),
	})
	if h.Person2.RetirementAge != 65 {
		t.Fatalf("expected default retirement age 65, got %d", h.Person2.RetirementAge)
	}

	h = Normalize(Input{
		Primary:             contractx.PersonInput{CurrentAge: 60, RetirementAge: 65},
		SpouseAge:           intPtr(58),
		SpouseRetirementAge: intPtr(63),
	})
	if h.Person2.RetirementAge != 63 {
		t.Fatalf("explicit spouse retirement age lost, got %d", h.Person2.RetirementAge)
	}
}

func TestCostBasisResolution(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		acb    *float64
		nonReg float64
		want   float64
	}{
		{name: "default 90 percent", nonReg: 200000, want: 180000},
		{name: "zero balance", nonReg: 0, want: 0},
		{name: "explicit", acb: floatPtr(120000), nonReg: 200000, want: 120000},
		{name: "explicit zero", acb: floatPtr(0), nonReg: 200000, want: 0},
		{name: "explicit negative", acb: floatPtr(-5000), nonReg: 200000, want: -5000},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := Normalize(Input{
				Primary: contractx.PersonInput{
					CurrentAge:       60,
					RetirementAge:    65,
					NonRegistered:    tc.nonReg,
					NonRegisteredACB: tc.acb,
				},
			})
			if !almostEqual(h.Person1.CostBasis, tc.want) {
				t.Fatalf("cost basis = %f, want %f", h.Person1.CostBasis, tc.want)
			}
		})
	}
}

func TestSpouseLumpSumSplit(t *testing.T) {
	t.Parallel()

	h := Normalize(Input{
		Primary:   contractx.PersonInput{CurrentAge: 60, RetirementAge: 65, TotalSavings: 500000},
		Spouse:    contractx.PersonInput{TotalSavings: 300000},
		SpouseAge: intPtr(58),
	})

	p2 := h.Person2
	if !almostEqual(p2.RRSP, 150000) || !almostEqual(p2.TFSA, 60000) || !almostEqual(p2.NonRegistered, 90000) {
		t.Fatalf("unexpected spouse split: rrsp=%f tfsa=%f nonreg=%f", p2.RRSP, p2.TFSA, p2.NonRegistered)
	}
	// Derived cost basis applies to the distributed balance, not the lump sum.
	if !almostEqual(p2.CostBasis, 81000) {
		t.Fatalf("spouse cost basis = %f, want 81000", p2.CostBasis)
	}
}
