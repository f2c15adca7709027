package tool

import (
	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
	"github.com/nowcapital/retirement-mcp/planner/household"
)

// HouseholdArgs mirrors the flat parameter surface every calculation tool
// shares. The wire contract with the agent stays flat; the accessors below
// fold it into the composed household/scenario records.
//
// Pointer fields distinguish "omitted" from zero where the distinction
// changes behavior: spouse_age is the couple switch, non_reg_acb zero is a
// legal explicit cost basis, income_split defaults off couple mode, and the
// event/phase lists must not appear in the payload unless supplied.
type HouseholdArgs struct {
	CurrentAge    int    `json:"current_age"`
	RetirementAge int    `json:"retirement_age"`
	Province      string `json:"province"`

	TotalSavings  float64 `json:"total_savings"`
	SavingsRRSP   float64 `json:"savings_rrsp"`
	SavingsTFSA   float64 `json:"savings_tfsa"`
	SavingsNonReg float64 `json:"savings_non_reg"`

	Name      string   `json:"name"`
	DeathAge  int      `json:"death_age"`
	NonRegACB *float64 `json:"non_reg_acb"`
	LIRA      float64  `json:"lira"`

	TFSAContributionRoom float64 `json:"tfsa_contribution_room"`
	RRSPContributionRoom float64 `json:"rrsp_contribution_room"`

	CPPStartAge   int     `json:"cpp_start_age"`
	OASStartAge   int     `json:"oas_start_age"`
	BaseCPPAmount float64 `json:"base_cpp_amount"`
	BaseOASAmount float64 `json:"base_oas_amount"`

	DBEnabled                    bool    `json:"db_enabled"`
	DBPensionIncome              float64 `json:"db_pension_income"`
	DBStartAge                   int     `json:"db_start_age"`
	DBIndexBeforeRetirement      bool    `json:"db_index_before_retirement"`
	DBIndexAfterRetirement       float64 `json:"db_index_after_retirement"`
	DBIndexAfterRetirementToCPI  bool    `json:"db_index_after_retirement_to_cpi"`
	DBCPPClawbackFraction        float64 `json:"db_cpp_clawback_fraction"`
	DBSurvivorBenefitPercentage  float64 `json:"db_survivor_benefit_percentage"`
	PensionPlanType              string  `json:"pension_plan_type"`
	Has10YearGuarantee           bool    `json:"has_10_year_guarantee"`
	HasSupplementaryDeathBenefit bool    `json:"has_supplementary_death_benefit"`
	DBShareToSpouse              float64 `json:"db_share_to_spouse"`
	DBIsSurvivorPension          bool    `json:"db_is_survivor_pension"`

	EnableRRSPMeltdown bool `json:"enable_rrsp_meltdown"`
	LIFConversionAge   int  `json:"lif_conversion_age"`
	RRIFConversionAge  int  `json:"rrif_conversion_age"`
	LIFType            int  `json:"lif_type"`

	RRSPContribution          float64 `json:"rrsp_contribution"`
	TFSAContribution          float64 `json:"tfsa_contribution"`
	NonRegisteredContribution float64 `json:"non_registered_contribution"`

	GrowthCapitalGainsPct   float64 `json:"non_registered_growth_capital_gains_pct"`
	DividendYieldPct        float64 `json:"non_registered_dividend_yield_pct"`
	EligibleDividendPropPct float64 `json:"non_registered_eligible_dividend_proportion_pct"`

	AdditionalEvents *[]contractx.Event `json:"additional_events"`

	SpouseName          string   `json:"spouse_name"`
	SpouseAge           *int     `json:"spouse_age"`
	SpouseRetirementAge *int     `json:"spouse_retirement_age"`
	SpouseDeathAge      int      `json:"spouse_death_age"`
	SpouseTotalSavings  float64  `json:"spouse_total_savings"`
	SpouseSavingsRRSP   float64  `json:"spouse_savings_rrsp"`
	SpouseSavingsTFSA   float64  `json:"spouse_savings_tfsa"`
	SpouseSavingsNonReg float64  `json:"spouse_savings_non_reg"`
	SpouseNonRegACB     *float64 `json:"spouse_non_reg_acb"`
	SpouseLIRA          float64  `json:"spouse_lira"`

	SpouseTFSAContributionRoom float64 `json:"spouse_tfsa_contribution_room"`
	SpouseRRSPContributionRoom float64 `json:"spouse_rrsp_contribution_room"`

	SpouseCPPStartAge   int     `json:"spouse_cpp_start_age"`
	SpouseOASStartAge   int     `json:"spouse_oas_start_age"`
	SpouseBaseCPPAmount float64 `json:"spouse_base_cpp_amount"`
	SpouseBaseOASAmount float64 `json:"spouse_base_oas_amount"`

	SpouseDBEnabled                    bool    `json:"spouse_db_enabled"`
	SpouseDBPensionIncome              float64 `json:"spouse_db_pension_income"`
	SpouseDBStartAge                   int     `json:"spouse_db_start_age"`
	SpouseDBIndexBeforeRetirement      bool    `json:"spouse_db_index_before_retirement"`
	SpouseDBIndexAfterRetirement       float64 `json:"spouse_db_index_after_retirement"`
	SpouseDBIndexAfterRetirementToCPI  bool    `json:"spouse_db_index_after_retirement_to_cpi"`
	SpouseDBCPPClawbackFraction        float64 `json:"spouse_db_cpp_clawback_fraction"`
	SpouseDBSurvivorBenefitPercentage  float64 `json:"spouse_db_survivor_benefit_percentage"`
	SpousePensionPlanType              string  `json:"spouse_pension_plan_type"`
	SpouseHas10YearGuarantee           bool    `json:"spouse_has_10_year_guarantee"`
	SpouseHasSupplementaryDeathBenefit bool    `json:"spouse_has_supplementary_death_benefit"`
	SpouseDBShareToSpouse              float64 `json:"spouse_db_share_to_spouse"`
	SpouseDBIsSurvivorPension          bool    `json:"spouse_db_is_survivor_pension"`

	SpouseEnableRRSPMeltdown bool `json:"spouse_enable_rrsp_meltdown"`
	SpouseLIFConversionAge   int  `json:"spouse_lif_conversion_age"`
	SpouseRRIFConversionAge  int  `json:"spouse_rrif_conversion_age"`
	SpouseLIFType            int  `json:"spouse_lif_type"`

	SpouseRRSPContribution          float64 `json:"spouse_rrsp_contribution"`
	SpouseTFSAContribution          float64 `json:"spouse_tfsa_contribution"`
	SpouseNonRegisteredContribution float64 `json:"spouse_non_registered_contribution"`

	SpouseGrowthCapitalGainsPct   float64 `json:"spouse_non_registered_growth_capital_gains_pct"`
	SpouseDividendYieldPct        float64 `json:"spouse_non_registered_dividend_yield_pct"`
	SpouseEligibleDividendPropPct float64 `json:"spouse_non_registered_eligible_dividend_proportion_pct"`

	SpouseAdditionalEvents *[]contractx.Event `json:"spouse_additional_events"`

	IncomeSplit            *bool                     `json:"income_split"`
	ExpectedReturns        float64                   `json:"expected_returns"`
	CPI                    float64                   `json:"cpi"`
	Allocation             float64                   `json:"allocation"`
	BaseTFSAAmount         float64                   `json:"base_tfsa_amount"`
	SurvivorExpensePercent float64                   `json:"survivor_expense_percent"`
	ExpensePhases          *[]contractx.ExpensePhase `json:"expense_phases"`

	APIKey string `json:"api_key"`
}

// MonteCarloArgs layers the risk-simulation knobs on the shared surface.
type MonteCarloArgs struct {
	HouseholdArgs
	TargetMonthlySpend  float64 `json:"target_monthly_spend"`
	NumTrials           int     `json:"num_trials"`
	ReturnVolatility    float64 `json:"return_volatility"`
	InflationVolatility float64 `json:"inflation_volatility"`
	Correlation         float64 `json:"correlation"`
}

// PollArgs resumes a previously started simulation.
type PollArgs struct {
	JobID  string `json:"job_id"`
	APIKey string `json:"api_key"`
}

// Defaults match the original tool contract; binding overwrites only the
// fields the caller supplied.
func defaultHouseholdArgs() HouseholdArgs {
	return HouseholdArgs{
		Province: "ON",
		Name:     "User",
		DeathAge: 92,

		CPPStartAge:   65,
		OASStartAge:   65,
		BaseCPPAmount: 17196, // max CPP for 2025
		BaseOASAmount: 8876,  // OAS for 2025

		DBStartAge:              65,
		DBIndexBeforeRetirement: true,
		PensionPlanType:         "Generic",

		LIFConversionAge:  71,
		RRIFConversionAge: 71,
		LIFType:           1,

		GrowthCapitalGainsPct:   90,
		DividendYieldPct:        2,
		EligibleDividendPropPct: 70,

		SpouseName:     "Spouse",
		SpouseDeathAge: 92,

		SpouseCPPStartAge:   65,
		SpouseOASStartAge:   65,
		SpouseBaseOASAmount: 8876,

		SpouseDBStartAge:              65,
		SpouseDBIndexBeforeRetirement: true,
		SpousePensionPlanType:         "Generic",

		SpouseLIFConversionAge:  71,
		SpouseRRIFConversionAge: 71,
		SpouseLIFType:           1,

		SpouseGrowthCapitalGainsPct:   90,
		SpouseDividendYieldPct:        2,
		SpouseEligibleDividendPropPct: 70,

		ExpectedReturns:        5.0,
		CPI:                    2.0,
		Allocation:             50,
		BaseTFSAAmount:         7000,
		SurvivorExpensePercent: 100,
	}
}

func defaultMonteCarloArgs() MonteCarloArgs {
	return MonteCarloArgs{
		HouseholdArgs:       defaultHouseholdArgs(),
		NumTrials:           1000,
		ReturnVolatility:    11.0,
		InflationVolatility: 1.5,
	}
}

func (a HouseholdArgs) householdInput() household.Input {
	return household.Input{
		Primary: contractx.PersonInput{
			Name:          a.Name,
			CurrentAge:    a.CurrentAge,
			RetirementAge: a.RetirementAge,
			DeathAge:      a.DeathAge,

			TotalSavings:     a.TotalSavings,
			RRSP:             a.SavingsRRSP,
			TFSA:             a.SavingsTFSA,
			NonRegistered:    a.SavingsNonReg,
			NonRegisteredACB: a.NonRegACB,
			LIRA:             a.LIRA,

			RRSPContributionRoom: a.RRSPContributionRoom,
			TFSAContributionRoom: a.TFSAContributionRoom,

			CPPStartAge:   a.CPPStartAge,
			OASStartAge:   a.OASStartAge,
			BaseCPPAmount: a.BaseCPPAmount,
			BaseOASAmount: a.BaseOASAmount,

			Pension: contractx.DefinedBenefitPension{
				Enabled:                 a.DBEnabled,
				Income:                  a.DBPensionIncome,
				StartAge:                a.DBStartAge,
				IndexBeforeRetirement:   a.DBIndexBeforeRetirement,
				IndexAfterRetirement:    a.DBIndexAfterRetirement,
				IndexAfterRetirementCPI: a.DBIndexAfterRetirementToCPI,
				CPPClawbackFraction:     a.DBCPPClawbackFraction,
				SurvivorBenefitPct:      a.DBSurvivorBenefitPercentage,
				PlanType:                a.PensionPlanType,
				Has10YearGuarantee:      a.Has10YearGuarantee,
				HasSupplementaryDeath:   a.HasSupplementaryDeathBenefit,
				ShareToSpouse:           a.DBShareToSpouse,
				IsSurvivorPension:       a.DBIsSurvivorPension,
			},

			EnableRRSPMeltdown: a.EnableRRSPMeltdown,
			LIFConversionAge:   a.LIFConversionAge,
			RRIFConversionAge:  a.RRIFConversionAge,
			LIFType:            a.LIFType,

			RRSPContribution:          a.RRSPContribution,
			TFSAContribution:          a.TFSAContribution,
			NonRegisteredContribution: a.NonRegisteredContribution,

			Growth: contractx.ReturnComposition{
				CapitalGainsPct:      a.GrowthCapitalGainsPct,
				DividendYieldPct:     a.DividendYieldPct,
				EligibleDividendsPct: a.EligibleDividendPropPct,
			},

			AdditionalEvents: a.AdditionalEvents,
		},
		Spouse: contractx.PersonInput{
			Name:     a.SpouseName,
			DeathAge: a.SpouseDeathAge,

			TotalSavings:     a.SpouseTotalSavings,
			RRSP:             a.SpouseSavingsRRSP,
			TFSA:             a.SpouseSavingsTFSA,
			NonRegistered:    a.SpouseSavingsNonReg,
			NonRegisteredACB: a.SpouseNonRegACB,
			LIRA:             a.SpouseLIRA,

			RRSPContributionRoom: a.SpouseRRSPContributionRoom,
			TFSAContributionRoom: a.SpouseTFSAContributionRoom,

			CPPStartAge:   a.SpouseCPPStartAge,
			OASStartAge:   a.SpouseOASStartAge,
			BaseCPPAmount: a.SpouseBaseCPPAmount,
			BaseOASAmount: a.SpouseBaseOASAmount,

			Pension: contractx.DefinedBenefitPension{
				Enabled:                 a.SpouseDBEnabled,
				Income:                  a.SpouseDBPensionIncome,
				StartAge:                a.SpouseDBStartAge,
				IndexBeforeRetirement:   a.SpouseDBIndexBeforeRetirement,
				IndexAfterRetirement:    a.SpouseDBIndexAfterRetirement,
				IndexAfterRetirementCPI: a.SpouseDBIndexAfterRetirementToCPI,
				CPPClawbackFraction:     a.SpouseDBCPPClawbackFraction,
				SurvivorBenefitPct:      a.SpouseDBSurvivorBenefitPercentage,
				PlanType:                a.SpousePensionPlanType,
				Has10YearGuarantee:      a.SpouseHas10YearGuarantee,
				HasSupplementaryDeath:   a.SpouseHasSupplementaryDeathBenefit,
				ShareToSpouse:           a.SpouseDBShareToSpouse,
				IsSurvivorPension:       a.SpouseDBIsSurvivorPension,
			},

			EnableRRSPMeltdown: a.SpouseEnableRRSPMeltdown,
			LIFConversionAge:   a.SpouseLIFConversionAge,
			RRIFConversionAge:  a.SpouseRRIFConversionAge,
			LIFType:            a.SpouseLIFType,

			RRSPContribution:          a.SpouseRRSPContribution,
			TFSAContribution:          a.SpouseTFSAContribution,
			NonRegisteredContribution: a.SpouseNonRegisteredContribution,

			Growth: contractx.ReturnComposition{
				CapitalGainsPct:      a.SpouseGrowthCapitalGainsPct,
				DividendYieldPct:     a.SpouseDividendYieldPct,
				EligibleDividendsPct: a.SpouseEligibleDividendPropPct,
			},

			AdditionalEvents: a.SpouseAdditionalEvents,
		},
		SpouseAge:           a.SpouseAge,
		SpouseRetirementAge: a.SpouseRetirementAge,
	}
}

func (a HouseholdArgs) scenario() contractx.Scenario {
	return contractx.Scenario{
		ExpectedReturns:        a.ExpectedReturns,
		CPI:                    a.CPI,
		Province:               a.Province,
		IncomeSplit:            a.IncomeSplit,
		Allocation:             a.Allocation,
		BaseTFSAAmount:         a.BaseTFSAAmount,
		SurvivorExpensePercent: a.SurvivorExpensePercent,
		ExpensePhases:          a.ExpensePhases,
	}
}

func (a MonteCarloArgs) params() contractx.MonteCarloParams {
	return contractx.MonteCarloParams{
		TargetMonthlySpend:  a.TargetMonthlySpend,
		NumTrials:           a.NumTrials,
		ReturnVolatility:    a.ReturnVolatility,
		InflationVolatility: a.InflationVolatility,
		Correlation:         a.Correlation,
	}
}
