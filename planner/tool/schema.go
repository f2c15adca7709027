package tool

import (
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	ToolSustainableSpend  = "calculate_sustainable_spend"
	ToolDetailedSpendPlan = "calculate_detailed_spend_plan"
	ToolStartMonteCarlo   = "start_monte_carlo_simulation"
	ToolMonteCarloResults = "get_monte_carlo_results"
)

func sustainableSpendTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Calculates the maximum sustainable monthly after-tax spend " +
			"in retirement for a person or couple, in today's dollars."),
	}
	opts = append(opts, householdOptions()...)
	return mcp.NewTool(ToolSustainableSpend, opts...)
}

func detailedSpendPlanTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Like calculate_sustainable_spend, but also returns a " +
			"year-by-year plan per person as CSV text (balances, withdrawals, taxes)."),
	}
	opts = append(opts, householdOptions()...)
	return mcp.NewTool(ToolDetailedSpendPlan, opts...)
}

func startMonteCarloTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Starts a Monte Carlo risk simulation for a target monthly " +
			"spend. Returns a job_id to poll with get_monte_carlo_results."),
		mcp.WithNumber("target_monthly_spend", mcp.Required(),
			mcp.Description("Monthly after-tax spend to stress-test, in today's dollars.")),
		mcp.WithNumber("num_trials", mcp.DefaultNumber(1000),
			mcp.Description("Number of Monte Carlo trials.")),
		mcp.WithNumber("return_volatility", mcp.DefaultNumber(11.0),
			mcp.Description("Annual portfolio return volatility (standard deviation, %).")),
		mcp.WithNumber("inflation_volatility", mcp.DefaultNumber(1.5),
			mcp.Description("Annual inflation volatility (standard deviation, %).")),
		mcp.WithNumber("correlation", mcp.DefaultNumber(0),
			mcp.Description("Correlation between return and inflation shocks (-1 to 1).")),
	}
	opts = append(opts, householdOptions()...)
	return mcp.NewTool(ToolStartMonteCarlo, opts...)
}

func monteCarloResultsTool() mcp.Tool {
	return mcp.NewTool(ToolMonteCarloResults,
		mcp.WithDescription("Fetches the result of a Monte Carlo simulation. Waits up to "+
			"roughly 30 seconds; if the simulation is still running, returns status "+
			"PROCESSING and a job_id to poll again. Always pass the job_id from the most "+
			"recent response, it can change while the backend pipeline progresses."),
		mcp.WithString("job_id", mcp.Required(),
			mcp.Description("Job identifier returned by start_monte_carlo_simulation or a previous poll.")),
		mcp.WithString("api_key",
			mcp.Description("Optional API key overriding the server credentials.")),
	)
}

// householdOptions is the flat two-person parameter surface shared by every
// calculation tool. The shape mirrors the backend contract one to one.
func householdOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("current_age", mcp.Required(), mcp.Description("Age today.")),
		mcp.WithNumber("retirement_age", mcp.Required(), mcp.Description("Desired retirement age.")),
		mcp.WithString("province", mcp.DefaultString("ON"),
			mcp.Description("Canadian province or territory code, e.g. 'ON', 'BC'.")),

		mcp.WithNumber("total_savings",
			mcp.Description("Lump-sum savings. Used only when no itemized account value is provided; split 50% RRSP / 20% TFSA / 30% non-registered.")),
		mcp.WithNumber("savings_rrsp", mcp.Description("Amount in RRSP.")),
		mcp.WithNumber("savings_tfsa", mcp.Description("Amount in TFSA.")),
		mcp.WithNumber("savings_non_reg", mcp.Description("Amount in non-registered accounts.")),

		mcp.WithString("name", mcp.DefaultString("User"), mcp.Description("Name of the primary person.")),
		mcp.WithNumber("death_age", mcp.DefaultNumber(92), mcp.Description("Age of death for planning.")),
		mcp.WithNumber("non_reg_acb",
			mcp.Description("Adjusted cost base of non-registered assets, used for capital-gains tax. Defaults to 90% of the non-registered balance.")),
		mcp.WithNumber("lira", mcp.Description("Locked-in Retirement Account balance.")),
		mcp.WithNumber("tfsa_contribution_room", mcp.Description("Available TFSA contribution room.")),
		mcp.WithNumber("rrsp_contribution_room", mcp.Description("Available RRSP contribution room.")),

		mcp.WithNumber("cpp_start_age", mcp.DefaultNumber(65), mcp.Description("Age to start CPP (60-70).")),
		mcp.WithNumber("oas_start_age", mcp.DefaultNumber(65), mcp.Description("Age to start OAS (65-70).")),
		mcp.WithNumber("base_cpp_amount", mcp.DefaultNumber(17196),
			mcp.Description("Expected annual CPP at 65 (max $17,196 for 2025).")),
		mcp.WithNumber("base_oas_amount", mcp.DefaultNumber(8876),
			mcp.Description("Expected annual OAS at 65 ($8,876 for 2025).")),

		mcp.WithBoolean("db_enabled", mcp.Description("Person has a defined-benefit pension.")),
		mcp.WithNumber("db_pension_income", mcp.Description("Annual DB pension income at start age, future dollars.")),
		mcp.WithNumber("db_start_age", mcp.DefaultNumber(65), mcp.Description("Age the DB pension starts.")),
		mcp.WithBoolean("db_index_before_retirement", mcp.DefaultBool(true),
			mcp.Description("DB pension indexes to inflation before retirement.")),
		mcp.WithNumber("db_index_after_retirement",
			mcp.Description("Annual indexing % after retirement, 0 for none.")),
		mcp.WithBoolean("db_index_after_retirement_to_cpi",
			mcp.Description("Index the DB pension to CPI after retirement instead of a fixed %.")),
		mcp.WithNumber("db_cpp_clawback_fraction",
			mcp.Description("Bridge-benefit clawback fraction when CPP starts (0.0-1.0).")),
		mcp.WithNumber("db_survivor_benefit_percentage",
			mcp.Description("Fraction of the pension continuing to a survivor, e.g. 0.60.")),
		mcp.WithString("pension_plan_type", mcp.DefaultString("Generic"), mcp.Description("Pension plan type.")),
		mcp.WithBoolean("has_10_year_guarantee", mcp.Description("Pension has a 10-year guarantee.")),
		mcp.WithBoolean("has_supplementary_death_benefit", mcp.Description("Pension has a supplementary death benefit.")),
		mcp.WithNumber("db_share_to_spouse", mcp.Description("Pension share allocated to the spouse.")),
		mcp.WithBoolean("db_is_survivor_pension", mcp.Description("This pension is a survivor pension.")),

		mcp.WithBoolean("enable_rrsp_meltdown",
			mcp.Description("Withdraw RRSP funds earlier than required to reduce future RRIF minimums and OAS clawback risk.")),
		mcp.WithNumber("lif_conversion_age", mcp.DefaultNumber(71), mcp.Description("Age to convert LIRA to LIF (max 71).")),
		mcp.WithNumber("rrif_conversion_age", mcp.DefaultNumber(71), mcp.Description("Age to convert RRSP to RRIF (max 71).")),
		mcp.WithNumber("lif_type", mcp.DefaultNumber(1), mcp.Description("LIF type.")),

		mcp.WithNumber("rrsp_contribution", mcp.Description("Annual RRSP contributions before retirement.")),
		mcp.WithNumber("tfsa_contribution", mcp.Description("Annual TFSA contributions before retirement.")),
		mcp.WithNumber("non_registered_contribution", mcp.Description("Annual non-registered contributions before retirement.")),

		mcp.WithNumber("non_registered_growth_capital_gains_pct", mcp.DefaultNumber(90),
			mcp.Description("% of non-registered growth treated as capital gains vs interest.")),
		mcp.WithNumber("non_registered_dividend_yield_pct", mcp.DefaultNumber(2),
			mcp.Description("% of the non-registered balance paid as dividends.")),
		mcp.WithNumber("non_registered_eligible_dividend_proportion_pct", mcp.DefaultNumber(70),
			mcp.Description("% of dividends that are eligible dividends.")),

		mcp.WithArray("additional_events", mcp.Description("Ad-hoc income/expense events for the primary person. "+
			"Each: {year, type: 'income'|'expense', amount, is_cpi_indexed, tax_treatment: 'non_taxable'|'employment'|'self_employment'}."),
			mcp.Items(map[string]any{"type": "object"})),

		mcp.WithString("spouse_name", mcp.DefaultString("Spouse"), mcp.Description("Name of the spouse.")),
		mcp.WithNumber("spouse_age", mcp.Description("Provide this to trigger a COUPLE simulation.")),
		mcp.WithNumber("spouse_retirement_age", mcp.Description("Defaults to the primary retirement age if missing.")),
		mcp.WithNumber("spouse_death_age", mcp.DefaultNumber(92), mcp.Description("Spouse's life expectancy for planning.")),
		mcp.WithNumber("spouse_total_savings", mcp.Description("Lump-sum savings for the spouse.")),
		mcp.WithNumber("spouse_savings_rrsp", mcp.Description("Spouse RRSP.")),
		mcp.WithNumber("spouse_savings_tfsa", mcp.Description("Spouse TFSA.")),
		mcp.WithNumber("spouse_savings_non_reg", mcp.Description("Spouse non-registered amount.")),
		mcp.WithNumber("spouse_non_reg_acb", mcp.Description("Spouse non-registered adjusted cost base.")),
		mcp.WithNumber("spouse_lira", mcp.Description("Spouse LIRA balance.")),
		mcp.WithNumber("spouse_tfsa_contribution_room", mcp.Description("Spouse TFSA contribution room.")),
		mcp.WithNumber("spouse_rrsp_contribution_room", mcp.Description("Spouse RRSP contribution room.")),

		mcp.WithNumber("spouse_cpp_start_age", mcp.DefaultNumber(65), mcp.Description("Spouse CPP start age.")),
		mcp.WithNumber("spouse_oas_start_age", mcp.DefaultNumber(65), mcp.Description("Spouse OAS start age.")),
		mcp.WithNumber("spouse_base_cpp_amount", mcp.Description("Spouse expected annual CPP at 65.")),
		mcp.WithNumber("spouse_base_oas_amount", mcp.DefaultNumber(8876), mcp.Description("Spouse expected annual OAS at 65.")),

		mcp.WithBoolean("spouse_db_enabled", mcp.Description("Spouse has a defined-benefit pension.")),
		mcp.WithNumber("spouse_db_pension_income", mcp.Description("Spouse annual DB pension income at start age.")),
		mcp.WithNumber("spouse_db_start_age", mcp.DefaultNumber(65), mcp.Description("Spouse DB pension start age.")),
		mcp.WithBoolean("spouse_db_index_before_retirement", mcp.DefaultBool(true),
			mcp.Description("Spouse DB pension indexes before retirement.")),
		mcp.WithNumber("spouse_db_index_after_retirement", mcp.Description("Spouse DB indexing % after retirement.")),
		mcp.WithBoolean("spouse_db_index_after_retirement_to_cpi", mcp.Description("Spouse DB indexes to CPI after retirement.")),
		mcp.WithNumber("spouse_db_cpp_clawback_fraction", mcp.Description("Spouse bridge-benefit clawback fraction (0.0-1.0).")),
		mcp.WithNumber("spouse_db_survivor_benefit_percentage", mcp.Description("Spouse DB survivor benefit fraction.")),
		mcp.WithString("spouse_pension_plan_type", mcp.DefaultString("Generic"), mcp.Description("Spouse pension plan type.")),
		mcp.WithBoolean("spouse_has_10_year_guarantee", mcp.Description("Spouse pension has a 10-year guarantee.")),
		mcp.WithBoolean("spouse_has_supplementary_death_benefit", mcp.Description("Spouse pension has a death benefit.")),
		mcp.WithNumber("spouse_db_share_to_spouse", mcp.Description("Spouse pension share allocation.")),
		mcp.WithBoolean("spouse_db_is_survivor_pension", mcp.Description("Spouse receives a survivor pension.")),

		mcp.WithBoolean("spouse_enable_rrsp_meltdown", mcp.Description("Spouse RRSP meltdown strategy.")),
		mcp.WithNumber("spouse_lif_conversion_age", mcp.DefaultNumber(71), mcp.Description("Spouse LIRA to LIF conversion age.")),
		mcp.WithNumber("spouse_rrif_conversion_age", mcp.DefaultNumber(71), mcp.Description("Spouse RRSP to RRIF conversion age.")),
		mcp.WithNumber("spouse_lif_type", mcp.DefaultNumber(1), mcp.Description("Spouse LIF type.")),

		mcp.WithNumber("spouse_rrsp_contribution", mcp.Description("Spouse annual RRSP contributions before retirement.")),
		mcp.WithNumber("spouse_tfsa_contribution", mcp.Description("Spouse annual TFSA contributions before retirement.")),
		mcp.WithNumber("spouse_non_registered_contribution", mcp.Description("Spouse annual non-registered contributions before retirement.")),

		mcp.WithNumber("spouse_non_registered_growth_capital_gains_pct", mcp.DefaultNumber(90),
			mcp.Description("Spouse % of growth as capital gains.")),
		mcp.WithNumber("spouse_non_registered_dividend_yield_pct", mcp.DefaultNumber(2),
			mcp.Description("Spouse dividend yield %.")),
		mcp.WithNumber("spouse_non_registered_eligible_dividend_proportion_pct", mcp.DefaultNumber(70),
			mcp.Description("Spouse % of dividends that are eligible.")),

		mcp.WithArray("spouse_additional_events",
			mcp.Description("Ad-hoc income/expense events for the spouse. Same shape as additional_events."),
			mcp.Items(map[string]any{"type": "object"})),

		mcp.WithBoolean("income_split",
			mcp.Description("Enable pension income splitting. Defaults to true for couples.")),
		mcp.WithNumber("expected_returns", mcp.DefaultNumber(5.0), mcp.Description("Nominal expected portfolio return %.")),
		mcp.WithNumber("cpi", mcp.DefaultNumber(2.0), mcp.Description("Inflation rate %.")),
		mcp.WithNumber("allocation", mcp.DefaultNumber(50),
			mcp.Description("For couples: % of household expenses covered by person 1.")),
		mcp.WithNumber("base_tfsa_amount", mcp.DefaultNumber(7000), mcp.Description("Annual new TFSA room.")),
		mcp.WithNumber("survivor_expense_percent", mcp.DefaultNumber(100),
			mcp.Description("% of expenses remaining when one spouse passes.")),
		mcp.WithArray("expense_phases",
			mcp.Description("Spending phases, e.g. [{'duration_years': 10, 'expense_change_pct': -2}]. "+
				"Each phase compounds annually relative to the prior year's spending level."),
			mcp.Items(map[string]any{"type": "object"})),

		mcp.WithString("api_key", mcp.Description("Optional API key overriding the server credentials.")),
	}
}
