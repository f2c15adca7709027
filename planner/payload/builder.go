// Package payload assembles the canonical calculation-service request
// document. The field names and shapes here are the backend wire contract
// and must not be reorganized for aesthetics.
package payload

import (
	contractx "github.com/nowcapital/retirement-mcp/planner/contract"
)

// Withdrawal priority is fixed and non-configurable: tax-deferred first,
// then non-registered, then tax-free.
var fallbackWithdrawalOrder = []string{"rrsp", "non_registered", "tfsa"}

// Document is the request body for the synchronous calculation endpoints.
type Document struct {
	Person1            PersonUI           `json:"person1_ui"`
	Person2            PersonUI           `json:"person2_ui"`
	Inputs             Inputs             `json:"inputs"`
	WithdrawalStrategy WithdrawalStrategy `json:"withdrawal_strategy"`
}

// MonteCarloDocument layers the risk-simulation knobs on top of the
// household document. Its Inputs carry fractional (not percentage) return
// and inflation figures; that unit split is how the backend expects this
// endpoint and only this endpoint.
type MonteCarloDocument struct {
	Document
	TargetMonthlySpend  float64 `json:"target_monthly_spend"`
	NumTrials           int     `json:"num_trials"`
	ReturnVolatility    float64 `json:"return_volatility"`
	InflationVolatility float64 `json:"inflation_volatility"`
	Correlation         float64 `json:"correlation"`
}

// PersonUI is one person block. Province appears on person 1 only,
// mirroring the backend contract.
type PersonUI struct {
	Name          string  `json:"name"`
	CurrentAge    int     `json:"current_age"`
	RetirementAge int     `json:"retirement_age"`
	DeathAge      int     `json:"death_age"`
	Province      string  `json:"province,omitempty"`
	RRSP          float64 `json:"rrsp"`
	TFSA          float64 `json:"tfsa"`
	NonRegistered float64 `json:"non_registered"`
	LIRA          float64 `json:"lira"`
	CostBasis     float64 `json:"cost_basis"`

	RRSPContributionRoom float64 `json:"rrsp_contribution_room"`
	TFSAContributionRoom float64 `json:"tfsa_contribution_room"`

	CPPStartAge   int     `json:"cpp_start_age"`
	OASStartAge   int     `json:"oas_start_age"`
	BaseCPPAmount float64 `json:"base_cpp_amount"`
	BaseOASAmount float64 `json:"base_oas_amount"`

	DBEnabled               bool    `json:"db_enabled"`
	DBPensionIncome         float64 `json:"db_pension_income"`
	DBStartAge              int     `json:"db_start_age"`
	DBIndexBeforeRetirement bool    `json:"db_index_before_retirement"`
	DBIndexAfterRetirement  float64 `json:"db_index_after_retirement"`
	DBIndexAfterToCPI       bool    `json:"db_index_after_retirement_to_cpi"`
	DBCPPClawbackFraction   float64 `json:"db_cpp_clawback_fraction"`
	DBSurvivorBenefitPct    float64 `json:"db_survivor_benefit_percentage"`
	PensionPlanType         string  `json:"pension_plan_type"`
	Has10YearGuarantee      bool    `json:"has_10_year_guarantee"`
	HasSupplementaryDeath   bool    `json:"has_supplementary_death_benefit"`
	DBShareToSpouse         float64 `json:"db_share_to_spouse"`
	DBIsSurvivorPension     bool    `json:"db_is_survivor_pension"`

	EnableRRSPMeltdown bool `json:"enable_rrsp_meltdown"`
	LIFConversionAge   int  `json:"lif_conversion_age"`
	RRIFConversionAge  int  `json:"rrif_conversion_age"`
	LIFType            int  `json:"lif_type"`

	GrowthCapitalGainsPct   float64 `json:"non_registered_growth_capital_gains_pct"`
	DividendYieldPct        float64 `json:"non_registered_dividend_yield_pct"`
	EligibleDividendPropPct float64 `json:"non_registered_eligible_dividend_proportion_pct"`

	RRSPContribution          float64 `json:"rrsp_contribution"`
	TFSAContribution          float64 `json:"tfsa_contribution"`
	NonRegisteredContribution float64 `json:"non_registered_contribution"`

	AdditionalEvents *[]contractx.Event `json:"additional_events,omitempty"`
}

// Inputs carries the scenario-wide assumptions.
type Inputs struct {
	ExpectedReturns        float64                   `json:"expected_returns"`
	CPI                    float64                   `json:"cpi"`
	Province               string                    `json:"province"`
	Individual             bool                      `json:"individual"`
	IncomeSplit            bool                      `json:"income_split"`
	RRIFMinWithdrawal      bool                      `json:"rrif_min_withdrawal"`
	Allocation             float64                   `json:"allocation"`
	BaseTFSAAmount         float64                   `json:"base_tfsa_amount"`
	SurvivorExpensePercent float64                   `json:"survivor_expense_percent"`
	ExpensePhases          *[]contractx.ExpensePhase `json:"expense_phases,omitempty"`
}

type WithdrawalStrategy struct {
	Person1 StrategyWeights `json:"person1"`
	Person2 StrategyWeights `json:"person2"`
}

type StrategyWeights struct {
	Weights []Weight `json:"weights"`
}

type Weight struct {
	Type  string   `json:"type"`
	Order []string `json:"order"`
}

// Build assembles the synchronous request document. It is deterministic and
// pure: both person blocks are always emitted, optional sections only when
// the caller supplied them.
func Build(h contractx.Household, s contractx.Scenario) *Document {
	p1 := personUI(h.Person1)
	p1.Province = s.Province
	p2 := personUI(h.Person2)

	return &Document{
		Person1: p1,
		Person2: p2,
		Inputs: Inputs{
			ExpectedReturns:        s.ExpectedReturns,
			CPI:                    s.CPI,
			Province:               s.Province,
			Individual:             !h.Couple,
			IncomeSplit:            resolveIncomeSplit(s.IncomeSplit, h.Couple),
			RRIFMinWithdrawal:      false,
			Allocation:             s.Allocation,
			BaseTFSAAmount:         s.BaseTFSAAmount,
			SurvivorExpensePercent: s.SurvivorExpensePercent,
			ExpensePhases:          s.ExpensePhases,
		},
		WithdrawalStrategy: WithdrawalStrategy{
			Person1: fallbackStrategy(),
			Person2: fallbackStrategy(),
		},
	}
}

// BuildMonteCarlo assembles the risk-simulation request. Return and
// inflation move from percentage to fractional units here; everything else
// keeps the units of the synchronous document.
func BuildMonteCarlo(h contractx.Household, s contractx.Scenario, mc contractx.MonteCarloParams) *MonteCarloDocument {
	doc := Build(h, s)
	doc.Inputs.ExpectedReturns = s.ExpectedReturns / 100
	doc.Inputs.CPI = s.CPI / 100

	return &MonteCarloDocument{
		Document:            *doc,
		TargetMonthlySpend:  mc.TargetMonthlySpend,
		NumTrials:           mc.NumTrials,
		ReturnVolatility:    mc.ReturnVolatility,
		InflationVolatility: mc.InflationVolatility,
		Correlation:         mc.Correlation,
	}
}

// resolveIncomeSplit applies the caller's explicit choice, defaulting to
// enabled exactly when couple mode is active.
func resolveIncomeSplit(explicit *bool, couple bool) bool {
	if explicit != nil {
		return *explicit
	}
	return couple
}

func fallbackStrategy() StrategyWeights {
	return StrategyWeights{
		Weights: []Weight{{Type: "fallback", Order: fallbackWithdrawalOrder}},
	}
}

func personUI(p contractx.PersonProfile) PersonUI {
	return PersonUI{
		Name:          p.Name,
		CurrentAge:    p.CurrentAge,
		RetirementAge: p.RetirementAge,
		DeathAge:      p.DeathAge,
		RRSP:          p.RRSP,
		TFSA:          p.TFSA,
		NonRegistered: p.NonRegistered,
		LIRA:          p.LIRA,
		CostBasis:     p.CostBasis,

		RRSPContributionRoom: p.RRSPContributionRoom,
		TFSAContributionRoom: p.TFSAContributionRoom,

		CPPStartAge:   p.CPPStartAge,
		OASStartAge:   p.OASStartAge,
		BaseCPPAmount: p.BaseCPPAmount,
		BaseOASAmount: p.BaseOASAmount,

		DBEnabled:               p.Pension.Enabled,
		DBPensionIncome:         p.Pension.Income,
		DBStartAge:              p.Pension.StartAge,
		DBIndexBeforeRetirement: p.Pension.IndexBeforeRetirement,
		DBIndexAfterRetirement:  p.Pension.IndexAfterRetirement,
		DBIndexAfterToCPI:       p.Pension.IndexAfterRetirementCPI,
		DBCPPClawbackFraction:   p.Pension.CPPClawbackFraction,
		DBSurvivorBenefitPct:    p.Pension.SurvivorBenefitPct,
		PensionPlanType:         p.Pension.PlanType,
		Has10YearGuarantee:      p.Pension.Has10YearGuarantee,
		HasSupplementaryDeath:   p.Pension.HasSupplementaryDeath,
		DBShareToSpouse:         p.Pension.ShareToSpouse,
		DBIsSurvivorPension:     p.Pension.IsSurvivorPension,

		EnableRRSPMeltdown: p.EnableRRSPMeltdown,
		LIFConversionAge:   p.LIFConversionAge,
		RRIFConversionAge:  p.RRIFConversionAge,
		LIFType:            p.LIFType,

		GrowthCapitalGainsPct:   p.Growth.CapitalGainsPct,
		DividendYieldPct:        p.Growth.DividendYieldPct,
		EligibleDividendPropPct: p.Growth.EligibleDividendsPct,

		RRSPContribution:          p.RRSPContribution,
		TFSAContribution:          p.TFSAContribution,
		NonRegisteredContribution: p.NonRegisteredContribution,

		AdditionalEvents: p.AdditionalEvents,
	}
}
