package contract

import "encoding/json"

// Simulation status values used across the async job lifecycle. The backend
// reports anything outside this set while a job is still running.
const (
	StatusPending             = "PENDING"
	StatusProcessing          = "PROCESSING"
	StatusSuccess             = "SUCCESS"
	StatusFailure             = "FAILURE"
	StatusOrchestratorStarted = "Orchestrator started"
)

// PersonInput carries one household member's raw, possibly partial inputs as
// received from the tool call. Balances are trusted as-is; normalization
// resolves lump sums and cost basis in planner/household.
type PersonInput struct {
	Name          string
	CurrentAge    int
	RetirementAge int
	DeathAge      int

	TotalSavings     float64
	RRSP             float64
	TFSA             float64
	NonRegistered    float64
	NonRegisteredACB *float64 // nil = derive from balance
	LIRA             float64

	RRSPContributionRoom float64
	TFSAContributionRoom float64

	CPPStartAge   int
	OASStartAge   int
	BaseCPPAmount float64
	BaseOASAmount float64

	Pension DefinedBenefitPension

	EnableRRSPMeltdown bool
	LIFConversionAge   int
	RRIFConversionAge  int
	LIFType            int

	RRSPContribution          float64
	TFSAContribution          float64
	NonRegisteredContribution float64

	Growth ReturnComposition

	AdditionalEvents *[]Event // nil = section not supplied
}

// PersonProfile is the canonical normalized form of one household member.
type PersonProfile struct {
	Name          string
	CurrentAge    int
	RetirementAge int
	DeathAge      int

	RRSP          float64
	TFSA          float64
	NonRegistered float64
	LIRA          float64
	CostBasis     float64

	RRSPContributionRoom float64
	TFSAContributionRoom float64

	CPPStartAge   int
	OASStartAge   int
	BaseCPPAmount float64
	BaseOASAmount float64

	Pension DefinedBenefitPension

	EnableRRSPMeltdown bool
	LIFConversionAge   int
	RRIFConversionAge  int
	LIFType            int

	RRSPContribution          float64
	TFSAContribution          float64
	NonRegisteredContribution float64

	Growth ReturnComposition

	AdditionalEvents *[]Event
}

// Total is the sum of all account balances, used for narrative framing only.
func (p PersonProfile) Total() float64 {
	return p.RRSP + p.TFSA + p.NonRegistered + p.LIRA
}

// DefinedBenefitPension is a descriptive pension block consumed opaquely by
// the backend.
type DefinedBenefitPension struct {
	Enabled                 bool
	Income                  float64
	StartAge                int
	IndexBeforeRetirement   bool
	IndexAfterRetirement    float64
	IndexAfterRetirementCPI bool
	CPPClawbackFraction     float64
	SurvivorBenefitPct      float64
	PlanType                string
	Has10YearGuarantee      bool
	HasSupplementaryDeath   bool
	ShareToSpouse           float64
	IsSurvivorPension       bool
}

// ReturnComposition splits non-registered growth into capital gains, dividend
// yield, and the eligible share of dividends, all in percent.
type ReturnComposition struct {
	CapitalGainsPct      float64
	DividendYieldPct     float64
	EligibleDividendsPct float64
}

// Event is an ad-hoc income or expense cash flow in a specific year.
type Event struct {
	Year         int     `json:"year"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	IsCPIIndexed bool    `json:"is_cpi_indexed"`
	TaxTreatment string  `json:"tax_treatment"`
}

// ExpensePhase compounds spending by a fixed annual percentage, relative to
// the prior year's level, for a bounded number of years.
type ExpensePhase struct {
	DurationYears    int     `json:"duration_years"`
	ExpenseChangePct float64 `json:"expense_change_pct"`
}

// Scenario carries the household-wide assumptions. ExpectedReturns and CPI
// are percentages here; the Monte Carlo payload converts them to fractions.
type Scenario struct {
	ExpectedReturns        float64
	CPI                    float64
	Province               string
	IncomeSplit            *bool // nil = default to couple mode
	Allocation             float64
	BaseTFSAAmount         float64
	SurvivorExpensePercent float64
	ExpensePhases          *[]ExpensePhase // nil = section not supplied
}

// Household is the normalized two-person unit every backend request is built
// from. Person2 is synthesized with zeroed benefits when Couple is false.
type Household struct {
	Person1 PersonProfile
	Person2 PersonProfile
	Couple  bool
}

// MonteCarloParams are the risk-simulation specific knobs layered on top of
// the household document.
type MonteCarloParams struct {
	TargetMonthlySpend  float64
	NumTrials           int
	ReturnVolatility    float64
	InflationVolatility float64
	Correlation         float64
}

// SimulationStatus is the body of a status check. Raw is kept so a terminal
// failure's backend-supplied detail passes through unmodified.
type SimulationStatus struct {
	Status string
	Raw    json.RawMessage
}

// SimulationResult is the body of a result fetch. Status and ResultID are
// populated when the backend signals an orchestrator redirect; Raw always
// holds the full response body.
type SimulationResult struct {
	Status   string
	ResultID string
	Raw      json.RawMessage
}

// Redirected reports whether this result is an intermediate orchestration
// marker rather than final data.
func (r SimulationResult) Redirected() bool {
	return r.Status == StatusOrchestratorStarted && r.ResultID != ""
}
