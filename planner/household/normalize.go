// Package household resolves raw, possibly partial person inputs into the
// canonical two-person record every backend request is built from.
package household

import (
	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
)

// Default lump-sum allocation when no itemized balances are given.
const (
	lumpSumRRSPShare   = 0.50
	lumpSumTFSAShare   = 0.20
	lumpSumNonRegShare = 0.30
)

// Assumed cost-basis fraction for pre-existing non-registered holdings when
// no explicit ACB is supplied.
const defaultCostBasisFraction = 0.9

// Input is the pre-normalization household. SpouseAge is the couple switch:
// a request is in couple mode if and only if it is non-nil. Every other
// spouse field is inert without it.
type Input struct {
	Primary             contractx.PersonInput
	Spouse              contractx.PersonInput
	SpouseAge           *int
	SpouseRetirementAge *int
}

// Normalize is a pure transform from raw inputs to the canonical household.
// Person 2 is always synthesized; outside couple mode its government benefit
// amounts are forced to zero so a non-existent spouse never draws CPP/OAS.
func Normalize(in Input) contractx.Household {
	couple := in.SpouseAge != nil

	p1 := normalizePerson(in.Primary)

	spouse := in.Spouse
	if couple {
		spouse.CurrentAge = *in.SpouseAge
	} else {
		spouse.CurrentAge = in.Primary.CurrentAge
	}
	if in.SpouseRetirementAge != nil {
		spouse.RetirementAge = *in.SpouseRetirementAge
	} else {
		spouse.RetirementAge = in.Primary.RetirementAge
	}

	p2 := normalizePerson(spouse)
	if !couple {
		p2.BaseCPPAmount = 0
		p2.BaseOASAmount = 0
	}

	return contractx.Household{
		Person1: p1,
		Person2: p2,
		Couple:  couple,
	}
}

func normalizePerson(in contractx.PersonInput) contractx.PersonProfile {
	rrsp, tfsa, nonReg := distributeSavings(in.TotalSavings, in.RRSP, in.TFSA, in.NonRegistered)

	return contractx.PersonProfile{
		Name:          in.Name,
		CurrentAge:    in.CurrentAge,
		RetirementAge: in.RetirementAge,
		DeathAge:      in.DeathAge,

		RRSP:          rrsp,
		TFSA:          tfsa,
		NonRegistered: nonReg,
		LIRA:          in.LIRA,
		CostBasis:     resolveCostBasis(in.NonRegisteredACB, nonReg),

		RRSPContributionRoom: in.RRSPContributionRoom,
		TFSAContributionRoom: in.TFSAContributionRoom,

		CPPStartAge:   in.CPPStartAge,
		OASStartAge:   in.OASStartAge,
		BaseCPPAmount: in.BaseCPPAmount,
		BaseOASAmount: in.BaseOASAmount,

		Pension: in.Pension,

		EnableRRSPMeltdown: in.EnableRRSPMeltdown,
		LIFConversionAge:   in.LIFConversionAge,
		RRIFConversionAge:  in.RRIFConversionAge,
		LIFType:            in.LIFType,

		RRSPContribution:          in.RRSPContribution,
		TFSAContribution:          in.TFSAContribution,
		NonRegisteredContribution: in.NonRegisteredContribution,

		Growth: in.Growth,

		AdditionalEvents: in.AdditionalEvents,
	}
}

// distributeSavings applies the 50/20/30 lump-sum heuristic only when no
// itemized balance was given at all. Otherwise the itemized amounts pass
// through unchanged and the total is ignored, never added on top.
func distributeSavings(total, rrsp, tfsa, nonReg float64) (float64, float64, float64) {
	if rrsp == 0 && tfsa == 0 && nonReg == 0 && total > 0 {
		return total * lumpSumRRSPShare, total * lumpSumTFSAShare, total * lumpSumNonRegShare
	}
	return rrsp, tfsa, nonReg
}

// resolveCostBasis prefers an explicit ACB, including zero and negative
// values. Without one it assumes modest unrealized gains on a positive
// non-registered balance.
func resolveCostBasis(acb *float64, nonReg float64) float64 {
	if acb != nil {
		return *acb
	}
	if nonReg > 0 {
		return nonReg * defaultCostBasisFraction
	}
	return 0
}
