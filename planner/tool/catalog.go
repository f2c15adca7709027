package tool

import (
	"github.com/mark3labs/mcp-go/server"
)

const serverName = "nowcapital-retirement-planner"

// Version is set at build time via ldflags.
var Version = "dev"

// NewServer builds the MCP server with every planner tool registered.
func NewServer(svc *Service) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	s.AddTool(sustainableSpendTool(), svc.handleSustainableSpend)
	s.AddTool(detailedSpendPlanTool(), svc.handleDetailedPlan)
	s.AddTool(startMonteCarloTool(), svc.handleStartMonteCarlo)
	s.AddTool(monteCarloResultsTool(), svc.handlePollResults)

	return s
}

func serverInstructions() string {
	return `You have access to a Canadian retirement planning server backed by the
NowCapital calculation engine.

## Tools

- calculate_sustainable_spend: the quick answer. Returns the maximum sustainable
  monthly after-tax spend for a person or couple, in today's dollars.
- calculate_detailed_spend_plan: the same calculation plus a year-by-year CSV
  table per person (balances, withdrawals, taxes). Use it when the user asks
  "show me the plan" rather than "how much".
- start_monte_carlo_simulation: stress-tests a target monthly spend across many
  randomized market paths. Returns a job_id immediately.
- get_monte_carlo_results: fetches a simulation outcome. It waits up to roughly
  30 seconds; if the run is still going it returns status PROCESSING and a
  job_id. ALWAYS poll again with the job_id from the most recent response (it
  can change as the backend pipeline progresses), never the original one.

## Usage notes

- Provide spouse_age to run a COUPLE simulation; omit it for an individual.
- Savings can be a single total_savings (the server splits it 50% RRSP,
  20% TFSA, 30% non-registered) or itemized savings_rrsp / savings_tfsa /
  savings_non_reg amounts. Itemized values win; do not send both expecting
  them to add up.
- All dollar inputs and outputs are CAD, today's dollars, after tax.
- Every tool returns JSON. A failure comes back as {"error": "..."}: relay the
  message to the user; do not retry blindly, the message says what to fix.`
}
